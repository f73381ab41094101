package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"customer-service/internal/domain"
)

// CustomerCreator stores one customer with its address.
type CustomerCreator interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
}

// CSVImporter reads customer CSV exports and creates one customer per row.
// Columns are located by header name, so their order is free and unknown
// columns are ignored. Address columns use an "address." prefix.
type CSVImporter struct {
	reader    *csv.Reader
	customers CustomerCreator
}

func NewCSVImporter(r io.Reader, customers CustomerCreator) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:    csvr,
		customers: customers,
	}
}

// Run parses every row and creates the customers in file order. It stops at
// the first invalid row or storage error and reports how many were created.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["firstname"]; !ok {
		return 0, fmt.Errorf("%w: missing firstname column", domain.ErrInvalidInput)
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		c, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if c == nil {
			continue
		}
		if _, err := i.customers.Create(ctx, *c); err != nil {
			return imported, fmt.Errorf("line %d: create customer: %w", line, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

// parseRow returns nil for rows with no values at all.
func parseRow(record []string, index map[string]int) (*domain.Customer, error) {
	if isBlank(record) {
		return nil, nil
	}

	c := &domain.Customer{
		Firstname: pick(record, index, "firstname"),
		Lastname:  pick(record, index, "lastname"),
		Email:     pick(record, index, "email"),
		Phone:     pick(record, index, "phone"),
		Address: domain.Address{
			Street:   pick(record, index, "address.street"),
			City:     pick(record, index, "address.city"),
			Province: pick(record, index, "address.province"),
			Zip:      pick(record, index, "address.zip"),
			Country:  pick(record, index, "address.country"),
		},
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return nil, fmt.Errorf("%w: email %q", domain.ErrInvalidInput, c.Email)
	}
	if raw := pick(record, index, "address.number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: address.number %q", domain.ErrInvalidInput, raw)
		}
		c.Address.Number = n
	}
	return c, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
