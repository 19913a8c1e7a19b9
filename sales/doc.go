// Package sales wraps the order endpoints of the store API: listing
// with search criteria, lookup by entity id or increment id, status
// filtering, and status updates via order comments.
//
//	orders := sales.NewOrders(exec, sales.WithLogger(log))
//
//	pending, err := orders.ListByStatus(ctx, sales.StatusPending, 1, 50)
//
//	err = orders.UpdateStatus(ctx, 42, sales.StatusProcessing,
//		"payment confirmed", true)
//
// Increment ids have no direct REST path, so GetByIncrementID issues a
// filtered search and returns ErrOrderNotFound when nothing matches.
package sales
