package customer

import (
	"context"
	"errors"
	"fmt"

	"customer-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres through pgx.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("customer.pgx")}
}

const selectCustomer = `
SELECT c.id, c.firstname, c.lastname, c.email, c.phone,
       a.id, a.number, a.street, a.city, a.province, a.zip, a.country
FROM customers c
JOIN addresses a ON a.id = c.address_id
`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, selectCustomer+`ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *postgresRepo) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return r.scanCustomer(r.pool.QueryRow(ctx, selectCustomer+`WHERE c.id = $1`, id))
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const addrQ = `
INSERT INTO addresses (number, street, city, province, zip, country)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	a := c.Address
	if err := tx.QueryRow(ctx, addrQ, a.Number, a.Street, a.City, a.Province, a.Zip, a.Country).Scan(&c.Address.ID); err != nil {
		return nil, fmt.Errorf("insert address: %w", err)
	}

	const custQ = `
INSERT INTO customers (firstname, lastname, email, phone, address_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	if err := tx.QueryRow(ctx, custQ, c.Firstname, c.Lastname, c.Email, c.Phone, c.Address.ID).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, fn MutateFunc) (*domain.Customer, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	c, err := r.scanCustomer(tx.QueryRow(ctx, selectCustomer+`WHERE c.id = $1 FOR UPDATE OF c, a`, id))
	if err != nil {
		return nil, err
	}
	customerID, addressID := c.ID, c.Address.ID
	if err := fn(c); err != nil {
		return nil, err
	}
	c.ID, c.Address.ID = customerID, addressID

	a := c.Address
	if _, err := tx.Exec(ctx, `
UPDATE addresses
SET number = $2, street = $3, city = $4, province = $5, zip = $6, country = $7
WHERE id = $1
`, a.ID, a.Number, a.Street, a.City, a.Province, a.Zip, a.Country); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}
	if _, err := tx.Exec(ctx, `
UPDATE customers
SET firstname = $2, lastname = $3, email = $4, phone = $5
WHERE id = $1
`, c.ID, c.Firstname, c.Lastname, c.Email, c.Phone); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var addressID int64
	if err := tx.QueryRow(ctx, `DELETE FROM customers WHERE id = $1 RETURNING address_id`, id).Scan(&addressID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, addressID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.Firstname,
		&c.Lastname,
		&c.Email,
		&c.Phone,
		&c.Address.ID,
		&c.Address.Number,
		&c.Address.Street,
		&c.Address.City,
		&c.Address.Province,
		&c.Address.Zip,
		&c.Address.Country,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("scan customer", zap.Error(err))
		return nil, err
	}
	return &c, nil
}
