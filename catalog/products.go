package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/OleksUA-dev/magento-go/core/logger"
	"github.com/OleksUA-dev/magento-go/core/transport"
	"github.com/OleksUA-dev/magento-go/pkg/urlkey"
	"github.com/OleksUA-dev/magento-go/search"
)

const basePath = "rest/V1/products"

// Doer executes authenticated API calls. Satisfied by
// executor.Executor.
type Doer interface {
	Do(ctx context.Context, req *transport.Request) (*transport.Response, error)
	DoJSON(ctx context.Context, req *transport.Request, out any) error
}

// Products wraps the catalog product endpoints.
type Products struct {
	exec Doer
	log  *slog.Logger
}

// ProductsOption configures the Products endpoint.
type ProductsOption func(*Products)

// WithLogger sets the logger for operation tracing.
func WithLogger(log *slog.Logger) ProductsOption {
	return func(p *Products) {
		p.log = log
	}
}

// NewProducts builds the products endpoint over exec.
func NewProducts(exec Doer, opts ...ProductsOption) *Products {
	p := &Products{exec: exec}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// List returns a page of products matching the criteria. A nil
// criteria lists everything the API will page out.
func (p *Products) List(ctx context.Context, criteria *search.Criteria) (*search.Result[Product], error) {
	if criteria == nil {
		criteria = search.New()
	}

	var result search.Result[Product]
	err := p.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodGet,
		Path:   basePath,
		Query:  criteria.Encode(),
	}, &result)
	if err != nil {
		return nil, err
	}

	if p.log != nil {
		p.log.DebugContext(ctx, "products listed",
			logger.Key("count", len(result.Items)),
			logger.Key("total", result.TotalCount),
		)
	}
	return &result, nil
}

// GetBySKU fetches one product. A missing product surfaces as a
// *transport.APIError with KindNotFound.
func (p *Products) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	if sku == "" {
		return nil, ErrEmptySKU
	}

	var product Product
	err := p.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodGet,
		Path:   skuPath(sku),
	}, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create creates a product. The payload is wrapped in {"product": ...}
// as the API requires, and a url_key is generated from the name when
// the product does not carry one.
func (p *Products) Create(ctx context.Context, product *Product) (*Product, error) {
	if product == nil {
		return nil, ErrNilProduct
	}
	if product.SKU == "" {
		return nil, ErrEmptySKU
	}

	if product.URLKey() == "" && product.Name != "" {
		if key := urlkey.Generate(product.Name); key != "" {
			product.SetCustomAttribute("url_key", key)
		}
	}

	var created Product
	err := p.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   basePath,
		Body:   map[string]*Product{"product": product},
	}, &created)
	if err != nil {
		return nil, err
	}

	if p.log != nil {
		p.log.InfoContext(ctx, "product created", logger.SKU(created.SKU))
	}
	return &created, nil
}

// Update updates the product identified by sku. The product body does
// not need to repeat the SKU.
func (p *Products) Update(ctx context.Context, sku string, product *Product) (*Product, error) {
	if sku == "" {
		return nil, ErrEmptySKU
	}
	if product == nil {
		return nil, ErrNilProduct
	}

	var updated Product
	err := p.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodPut,
		Path:   skuPath(sku),
		Body:   map[string]*Product{"product": product},
	}, &updated)
	if err != nil {
		return nil, err
	}

	if p.log != nil {
		p.log.InfoContext(ctx, "product updated", logger.SKU(sku))
	}
	return &updated, nil
}

// Delete removes the product. The API answers a bare boolean body.
func (p *Products) Delete(ctx context.Context, sku string) error {
	if sku == "" {
		return ErrEmptySKU
	}

	var deleted bool
	err := p.exec.DoJSON(ctx, &transport.Request{
		Method: http.MethodDelete,
		Path:   skuPath(sku),
	}, &deleted)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("catalog: delete %q: api reported failure", sku)
	}

	if p.log != nil {
		p.log.InfoContext(ctx, "product deleted", logger.SKU(sku))
	}
	return nil
}

// Search finds products whose name matches the query.
func (p *Products) Search(ctx context.Context, query string, page, size int) (*search.Result[Product], error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	criteria := search.New().Like("name", "%"+query+"%")
	if page > 0 || size > 0 {
		criteria.Paginate(page, size)
	}
	return p.List(ctx, criteria)
}

// ListByCategory returns products assigned to the category.
func (p *Products) ListByCategory(ctx context.Context, categoryID int, page, size int) (*search.Result[Product], error) {
	criteria := search.New().Equal("category_id", categoryID)
	if page > 0 || size > 0 {
		criteria.Paginate(page, size)
	}
	return p.List(ctx, criteria)
}

// skuPath escapes the SKU as a single path segment; SKUs may contain
// slashes and spaces.
func skuPath(sku string) string {
	return basePath + "/" + url.PathEscape(sku)
}
