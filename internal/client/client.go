// Package client is a typed HTTP client for the customer API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"time"

	"customer-service/internal/domain"
	"github.com/go-resty/resty/v2"
)

// APIError is returned for any non-2xx/3xx answer that has no domain meaning.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("customer api: %d %s", e.StatusCode, e.Message)
}

// Client talks JSON to a running customer service.
type Client struct {
	rc *resty.Client
}

// New returns a Client for the service at baseURL, e.g. http://localhost:8080.
func New(baseURL string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("Accept", "application/json").
		SetError(&APIError{})
	return &Client{rc: rc}
}

// List fetches every customer.
func (c *Client) List(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	resp, err := c.rc.R().SetContext(ctx).SetResult(&out).Get("/Customer/all")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one customer. Unknown IDs yield domain.ErrNotFound.
func (c *Client) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	var out domain.Customer
	resp, err := c.rc.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&out).
		Get("/Customer/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create stores cust and returns the ID taken from the Location header.
func (c *Client) Create(ctx context.Context, cust domain.Customer) (int64, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(cust).
		Post("/Customer")
	if err := check(resp, err); err != nil {
		return 0, err
	}
	if resp.StatusCode() != http.StatusCreated {
		return 0, fmt.Errorf("create customer: unexpected status %d", resp.StatusCode())
	}
	return idFromLocation(resp.Header().Get("Location"))
}

// Update sends a partial update. The 303 answer is followed, so the returned
// customer is the stored state after the merge.
func (c *Client) Update(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	var out domain.Customer
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(patch).
		SetResult(&out).
		Put("/Customer/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a customer. Unknown IDs yield domain.ErrNotFound.
func (c *Client) Delete(ctx context.Context, id int64) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/Customer/{id}")
	return check(resp, err)
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}
	apiErr, _ := resp.Error().(*APIError)
	if apiErr == nil || apiErr.StatusCode == 0 {
		apiErr = &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
	}
	switch resp.StatusCode() {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnsupportedMediaType:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, apiErr.Message)
	}
	return apiErr
}

func idFromLocation(loc string) (int64, error) {
	if loc == "" {
		return 0, fmt.Errorf("create customer: missing Location header")
	}
	id, err := strconv.ParseInt(path.Base(loc), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("create customer: bad Location %q: %w", loc, err)
	}
	return id, nil
}
