package seed

import (
	"context"
	"fmt"

	"customer-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Customers are the demo records inserted by Apply.
var Customers = []domain.Customer{
	{
		Firstname: "Alice",
		Lastname:  "Liddell",
		Email:     "alice@example.com",
		Phone:     "555-0100",
		Address:   domain.Address{Number: 742, Street: "Evergreen Terrace", City: "Springfield", Province: "IL", Zip: "62701", Country: "US"},
	},
	{
		Firstname: "Bob",
		Lastname:  "Builder",
		Email:     "bob@example.com",
		Phone:     "555-0101",
		Address:   domain.Address{Number: 12, Street: "Main Street", City: "Ogdenville", Province: "IL", Zip: "62702", Country: "US"},
	},
	{
		Firstname: "Carol",
		Lastname:  "Danvers",
		Email:     "carol@example.com",
		Address:   domain.Address{Number: 1, Street: "Harbour Road", City: "Toronto", Province: "ON", Zip: "M5V 2T6", Country: "CA"},
	},
}

// customers.email is not unique, so existence is checked in the same statement.
const insertCustomer = `
WITH existing AS (
	SELECT 1 FROM customers WHERE email = $1
), addr AS (
	INSERT INTO addresses (number, street, city, province, zip, country)
	SELECT $2, $3, $4, $5, $6, $7
	WHERE NOT EXISTS (SELECT 1 FROM existing)
	RETURNING id
)
INSERT INTO customers (firstname, lastname, email, phone, address_id)
SELECT $8, $9, $1, $10, id FROM addr
`

// Apply inserts the demo customers for manual testing. Customers whose email
// already exists are skipped, so running it twice is harmless. It returns how
// many rows were inserted.
func Apply(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, c := range Customers {
		a := c.Address
		tag, err := tx.Exec(ctx, insertCustomer,
			c.Email, a.Number, a.Street, a.City, a.Province, a.Zip, a.Country,
			c.Firstname, c.Lastname, c.Phone)
		if err != nil {
			return 0, fmt.Errorf("seed customer %s: %w", c.Email, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}
