// Package customers wraps the customer endpoints of the store API:
// listing via the search endpoint, lookup by id or email, create with
// an optional initial password, update, and delete.
//
//	reg := customers.NewCustomers(exec)
//
//	customer, err := reg.GetByEmail(ctx, "jane@example.com")
//
//	created, err := reg.Create(ctx, &customers.Customer{
//		Email:     "jane@example.com",
//		Firstname: "Jane",
//		Lastname:  "Doe",
//	}, "initial-password")
package customers
