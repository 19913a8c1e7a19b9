package catalog

import "errors"

var (
	// ErrEmptySKU is returned for operations that require a SKU.
	ErrEmptySKU = errors.New("catalog: sku must not be empty")

	// ErrNilProduct is returned when a create or update is called
	// without a product.
	ErrNilProduct = errors.New("catalog: product must not be nil")

	// ErrEmptyQuery is returned by Search for an empty query string.
	ErrEmptyQuery = errors.New("catalog: search query must not be empty")
)
