package customer

import (
	"context"

	"customer-service/internal/domain"
)

// MutateFunc changes a loaded customer in place before it is written back.
type MutateFunc func(c *domain.Customer) error

// Repository persists and fetches customers together with their address.
// Every write runs in a single transaction that is rolled back on error.
type Repository interface {
	// List returns all customers ordered by ID.
	List(ctx context.Context) ([]domain.Customer, error)
	// Get returns domain.ErrNotFound when no customer has the given ID.
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	// Create stores the address, then the customer, and returns both with assigned IDs.
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	// Update loads the customer, applies fn and writes the result back in one transaction.
	Update(ctx context.Context, id int64, fn MutateFunc) (*domain.Customer, error)
	// Delete removes the customer and its address.
	Delete(ctx context.Context, id int64) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
