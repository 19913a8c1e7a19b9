package sales

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

const basePath = "rest/V1/orders"

var (
	// ErrInvalidOrderID is returned for non-positive order IDs.
	ErrInvalidOrderID = errors.New("sales: order id must be positive")

	// ErrEmptyIncrementID is returned by GetByIncrementID for an empty
	// increment id.
	ErrEmptyIncrementID = errors.New("sales: increment id must not be empty")

	// ErrEmptyStatus is returned when a status value is required.
	ErrEmptyStatus = errors.New("sales: status must not be empty")

	// ErrOrderNotFound is returned when an increment id lookup matches
	// nothing.
	ErrOrderNotFound = errors.New("sales: order not found")
)

// Doer executes authenticated API calls. Satisfied by
// executor.Executor.
type Doer interface {
	Do(ctx context.Context, req *transport.Request) (*transport.Response, error)
	DoJSON(ctx context.Context, req *transport.Request, out any) error
}

// Orders wraps the sales order endpoints.
type Orders struct {
	exec Doer
	log  *slog.Logger
}

// OrdersOption configures the Orders endpoint.
type OrdersOption func(*Orders)

// WithLogger sets the logger for operation tracing.
func WithLogger(log *slog.Logger) OrdersOption {
	return func(o *Orders) {
		o.log = log
	}
}

// NewOrders builds the orders endpoint over exec.
func NewOrders(exec Doer, opts ...OrdersOption) *Orders {
	o := &Orders{exec: exec}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// List returns a page of orders matching the criteria.
func (o *Orders) List(ctx context.Context, criteria *search.Criteria) (*search.Result[Order], error) {
	if criteria == nil {
		criteria = search.New()
	}

	var result search.Result[Order]
	err := o.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodGet,
		Path:   basePath,
		Query:  criteria.Encode(),
	}, &result)
	if err != nil {
		return nil, err
	}

	if o.log != nil {
		o.log.DebugContext(ctx, "orders listed",
			logger.Key("count", len(result.Items)),
			logger.Key("total", result.TotalCount),
		)
	}
	return &result, nil
}

// GetByID fetches one order by its entity id.
func (o *Orders) GetByID(ctx context.Context, orderID int) (*Order, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}

	var order Order
	err := o.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodGet,
		Path:   basePath + "/" + strconv.Itoa(orderID),
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByIncrementID fetches the order carrying the human-facing
// increment id. The API has no direct path for it, so this is a
// filtered search expecting exactly one hit.
func (o *Orders) GetByIncrementID(ctx context.Context, incrementID string) (*Order, error) {
	if incrementID == "" {
		return nil, ErrEmptyIncrementID
	}

	result, err := o.List(ctx, search.New().Equal("increment_id", incrementID).PageSize(1))
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("%w: increment_id %q", ErrOrderNotFound, incrementID)
	}
	return &result.Items[0], nil
}

// ListByStatus returns orders in the given status.
func (o *Orders) ListByStatus(ctx context.Context, status string, page, size int) (*search.Result[Order], error) {
	if status == "" {
		return nil, ErrEmptyStatus
	}

	criteria := search.New().Equal("status", status)
	if page > 0 || size > 0 {
		criteria.Paginate(page, size)
	}
	return o.List(ctx, criteria)
}

// UpdateStatus posts a status comment to the order, moving it to the
// given status and optionally notifying the customer.
func (o *Orders) UpdateStatus(ctx context.Context, orderID int, status, comment string, notifyCustomer bool) error {
	if orderID <= 0 {
		return ErrInvalidOrderID
	}
	if status == "" {
		return ErrEmptyStatus
	}

	err := o.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("%s/%d/comments", basePath, orderID),
		Body: map[string]any{
			"statusHistory": map[string]any{
				"status":               status,
				"comment":              comment,
				"is_customer_notified": boolToInt(notifyCustomer),
			},
		},
	}, nil)
	if err != nil {
		return err
	}

	if o.log != nil {
		o.log.InfoContext(ctx, "order status updated",
			logger.OrderID(orderID),
			logger.Key("status", status),
		)
	}
	return nil
}

// AddComment appends a comment without changing the order status.
func (o *Orders) AddComment(ctx context.Context, orderID int, comment string, notifyCustomer bool) error {
	if orderID <= 0 {
		return ErrInvalidOrderID
	}

	return o.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("%s/%d/comments", basePath, orderID),
		Body: map[string]any{
			"statusHistory": map[string]any{
				"comment":              comment,
				"is_customer_notified": boolToInt(notifyCustomer),
			},
		},
	}, nil)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
