// Package catalog wraps the product endpoints of the store API:
// listing with search criteria, lookup by SKU, create, update, delete,
// name search, and category listing.
//
//	products := catalog.NewProducts(exec, catalog.WithLogger(log))
//
//	page, err := products.List(ctx, search.New().
//		Equal("status", catalog.StatusEnabled).
//		Paginate(1, 50))
//
//	created, err := products.Create(ctx, &catalog.Product{
//		SKU:   "TSHIRT-RED-XL",
//		Name:  "Red T-Shirt XL",
//		Price: 19.99,
//	})
//
// Create wraps the payload in the {"product": ...} envelope the API
// requires and derives a url_key from the name when none is set.
package catalog
