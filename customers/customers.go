package customers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/OleksUA-dev/magento-go/core/logger"
	"github.com/OleksUA-dev/magento-go/core/transport"
	"github.com/OleksUA-dev/magento-go/search"
)

const basePath = "rest/V1/customers"

var (
	// ErrInvalidCustomerID is returned for non-positive customer IDs.
	ErrInvalidCustomerID = errors.New("customers: customer id must be positive")

	// ErrEmptyEmail is returned when an email is required.
	ErrEmptyEmail = errors.New("customers: email must not be empty")

	// ErrNilCustomer is returned when a create or update is called
	// without a customer.
	ErrNilCustomer = errors.New("customers: customer must not be nil")

	// ErrCustomerNotFound is returned when an email lookup matches
	// nothing.
	ErrCustomerNotFound = errors.New("customers: customer not found")
)

// Doer executes authenticated API calls. Satisfied by
// executor.Executor.
type Doer interface {
	Do(ctx context.Context, req *transport.Request) (*transport.Response, error)
	DoJSON(ctx context.Context, req *transport.Request, out any) error
}

// Customers wraps the customer endpoints.
type Customers struct {
	exec Doer
	log  *slog.Logger
}

// CustomersOption configures the Customers endpoint.
type CustomersOption func(*Customers)

// WithLogger sets the logger for operation tracing.
func WithLogger(log *slog.Logger) CustomersOption {
	return func(c *Customers) {
		c.log = log
	}
}

// NewCustomers builds the customers endpoint over exec.
func NewCustomers(exec Doer, opts ...CustomersOption) *Customers {
	c := &Customers{exec: exec}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns a page of customers matching the criteria.
func (c *Customers) List(ctx context.Context, criteria *search.Criteria) (*search.Result[Customer], error) {
	if criteria == nil {
		criteria = search.New()
	}

	var result search.Result[Customer]
	err := c.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodGet,
		Path:   basePath + "/search",
		Query:  criteria.Encode(),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByID fetches one customer.
func (c *Customers) GetByID(ctx context.Context, customerID int) (*Customer, error) {
	if customerID <= 0 {
		return nil, ErrInvalidCustomerID
	}

	var customer Customer
	err := c.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodGet,
		Path:   basePath + "/" + strconv.Itoa(customerID),
	}, &customer)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByEmail finds the customer registered under the email address.
func (c *Customers) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	if email == "" {
		return nil, ErrEmptyEmail
	}

	result, err := c.List(ctx, search.New().Equal("email", email).PageSize(1))
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("%w: email %q", ErrCustomerNotFound, email)
	}
	return &result.Items[0], nil
}

// Create registers a customer. The payload is wrapped in the
// {"customer": ...} envelope; an initial password may be passed along.
func (c *Customers) Create(ctx context.Context, customer *Customer, password string) (*Customer, error) {
	if customer == nil {
		return nil, ErrNilCustomer
	}
	if customer.Email == "" {
		return nil, ErrEmptyEmail
	}

	body := map[string]any{"customer": customer}
	if password != "" {
		body["password"] = password
	}

	var created Customer
	err := c.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   basePath,
		Body:   body,
	}, &created)
	if err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.InfoContext(ctx, "customer created", logger.Key("customer_id", created.ID))
	}
	return &created, nil
}

// Update replaces the customer record identified by customerID.
func (c *Customers) Update(ctx context.Context, customerID int, customer *Customer) (*Customer, error) {
	if customerID <= 0 {
		return nil, ErrInvalidCustomerID
	}
	if customer == nil {
		return nil, ErrNilCustomer
	}

	var updated Customer
	err := c.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodPut,
		Path:   basePath + "/" + strconv.Itoa(customerID),
		Body:   map[string]any{"customer": customer},
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the customer. The API answers a bare boolean body.
func (c *Customers) Delete(ctx context.Context, customerID int) error {
	if customerID <= 0 {
		return ErrInvalidCustomerID
	}

	var deleted bool
	err := c.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodDelete,
		Path:   basePath + "/" + strconv.Itoa(customerID),
	}, &deleted)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("customers: delete %d: api reported failure", customerID)
	}

	if c.log != nil {
		c.log.InfoContext(ctx, "customer deleted", logger.Key("customer_id", customerID))
	}
	return nil
}
