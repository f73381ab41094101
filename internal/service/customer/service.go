package customer

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"customer-service/internal/domain"
	"customer-service/internal/logger"
	custrepo "customer-service/internal/repository/customer"
	"go.uber.org/zap"
)

// Service implements the customer resource operations on top of a repository.
// It holds no per-request state.
type Service struct {
	repo   custrepo.Repository
	logger *zap.Logger
}

// New creates a Service. A nil logger discards output.
func New(repo custrepo.Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, logger: log.Named("customer")}
}

// List returns every stored customer ordered by ID.
func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		s.log(ctx).Error("list customers", zap.Error(err))
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// Get looks a customer up by its textual ID. IDs that are not integers can
// never match a row and yield domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, rawID string) (*domain.Customer, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get customer", id, err)
	}
	return c, nil
}

// Create stores c and its address. Identifiers sent by the client are dropped.
func (s *Service) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	c.ID = 0
	c.Address.ID = 0
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		s.log(ctx).Error("create customer", zap.Error(err))
		return nil, fmt.Errorf("create customer: %w", err)
	}
	s.log(ctx).Info("created customer", zap.Int64("customer_id", created.ID))
	return created, nil
}

// Update merges patch into the stored customer. Only fields present in the
// patch change; the nested address is merged field by field.
func (s *Service) Update(ctx context.Context, rawID string, patch domain.CustomerPatch) (*domain.Customer, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, func(c *domain.Customer) error {
		c.Apply(patch)
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "update customer", id, err)
	}
	s.log(ctx).Info("updated customer", zap.Int64("customer_id", id))
	return updated, nil
}

// Delete removes the customer together with its address.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete customer", id, err)
	}
	s.log(ctx).Info("removed customer", zap.Int64("customer_id", id))
	return nil
}

// Ready reports whether the repository can serve requests.
func (s *Service) Ready(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *Service) fail(ctx context.Context, op string, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	s.log(ctx).Error(op, zap.Int64("customer_id", id), zap.Error(err))
	return fmt.Errorf("%s %d: %w", op, id, err)
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.FromContext(ctx, s.logger)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
