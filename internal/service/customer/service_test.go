package customer

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"customer-service/internal/domain"
	custrepo "customer-service/internal/repository/customer"
)

// memoryRepo is a lightweight in-memory customer repository for tests.
type memoryRepo struct {
	mu        sync.Mutex
	customers map[int64]domain.Customer
	nextID    int64
	nextAddr  int64
	failWith  error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{customers: make(map[int64]domain.Customer)}
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepo) Get(_ context.Context, id int64) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := c
	return &clone, nil
}

func (r *memoryRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.nextID++
	r.nextAddr++
	c.ID = r.nextID
	c.Address.ID = r.nextAddr
	r.customers[c.ID] = c
	clone := c
	return &clone, nil
}

func (r *memoryRepo) Update(_ context.Context, id int64, fn custrepo.MutateFunc) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	existing, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := existing
	if err := fn(&c); err != nil {
		return nil, err
	}
	c.ID, c.Address.ID = existing.ID, existing.Address.ID
	r.customers[id] = c
	clone := c
	return &clone, nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *memoryRepo) Ping(_ context.Context) error { return r.failWith }

func strPtr(s string) *string { return &s }

func TestCreateAssignsFreshIDs(t *testing.T) {
	svc := New(newMemoryRepo(), nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.Customer{Firstname: "Alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, domain.Customer{ID: first.ID, Firstname: "Bob"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, both %d", first.ID)
	}

	got, err := svc.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Firstname != "Alice" {
		t.Fatalf("client supplied id overwrote customer 1: %+v", got)
	}
}

func TestGetUnknownOrMalformedID(t *testing.T) {
	svc := New(newMemoryRepo(), nil)
	ctx := context.Background()

	for _, id := range []string{"99", "abc", "", "1.5", "99999999999999999999"} {
		if _, err := svc.Get(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Get(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestUpdateChangesOnlyPresentFields(t *testing.T) {
	svc := New(newMemoryRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Customer{
		Firstname: "Alice",
		Lastname:  "Liddell",
		Email:     "alice@example.com",
		Address:   domain.Address{Number: 7, Street: "Evergreen", City: "Springfield"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, "1", domain.CustomerPatch{
		Lastname: strPtr("Hargreaves"),
		Address:  &domain.AddressPatch{Street: strPtr("Terrace")},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID || updated.Address.ID != created.Address.ID {
		t.Fatalf("ids changed: %+v", updated)
	}
	if updated.Firstname != "Alice" || updated.Email != "alice@example.com" {
		t.Fatalf("absent fields were overwritten: %+v", updated)
	}
	if updated.Lastname != "Hargreaves" || updated.Address.Street != "Terrace" {
		t.Fatalf("present fields not applied: %+v", updated)
	}
	if updated.Address.Number != 7 || updated.Address.City != "Springfield" {
		t.Fatalf("address fields lost: %+v", updated.Address)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	svc := New(newMemoryRepo(), nil)

	_, err := svc.Update(context.Background(), "42", domain.CustomerPatch{Firstname: strPtr("x")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err = svc.Update(context.Background(), "forty-two", domain.CustomerPatch{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := New(newMemoryRepo(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.Customer{Firstname: "Alice"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, "1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, "1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeated delete, got %v", err)
	}
}

func TestStorageErrorsAreWrapped(t *testing.T) {
	repo := newMemoryRepo()
	repo.failWith = errors.New("disk on fire")
	svc := New(repo, nil)
	ctx := context.Background()

	if _, err := svc.List(ctx); err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected internal error from List, got %v", err)
	}
	if _, err := svc.Create(ctx, domain.Customer{}); !errors.Is(err, repo.failWith) {
		t.Fatalf("expected wrapped storage error from Create, got %v", err)
	}
	if err := svc.Delete(ctx, "1"); !errors.Is(err, repo.failWith) {
		t.Fatalf("expected wrapped storage error from Delete, got %v", err)
	}
	if err := svc.Ready(ctx); err == nil {
		t.Fatalf("expected Ready to fail")
	}
}

func TestScenarioAlice(t *testing.T) {
	svc := New(newMemoryRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Customer{
		Firstname: "Alice",
		Address:   domain.Address{City: "Springfield"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}

	got, err := svc.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Firstname != "Alice" || got.Address.City != "Springfield" {
		t.Fatalf("unexpected customer %+v", got)
	}

	if _, err := svc.Update(ctx, "1", domain.CustomerPatch{Firstname: strPtr("Alicia")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = svc.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Firstname != "Alicia" || got.Address.City != "Springfield" {
		t.Fatalf("unexpected customer after update %+v", got)
	}

	if err := svc.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, "1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
