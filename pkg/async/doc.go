// Package async provides a small Future pattern over goroutines, used
// for the client's non-blocking call surface.
//
// Go starts a computation and returns a Future that can be awaited,
// polled, or awaited with a timeout:
//
//	future := async.Go(ctx, func(ctx context.Context) (*catalog.Product, error) {
//		return products.GetBySKU(ctx, "SKU-1")
//	})
//
//	// Do other work...
//
//	product, err := future.Await()
//
// AwaitWithTimeout bounds only the wait, not the computation:
//
//	product, err := future.AwaitWithTimeout(50 * time.Millisecond)
//	if errors.Is(err, async.ErrTimeout) {
//		// result will still arrive for a later Await
//	}
//
// Exec is the error-only variant, and WaitAll/WaitAny coordinate
// multiple futures. All operations are safe for concurrent use; each
// Go call spawns exactly one goroutine, and a context cancelled before
// the function starts short-circuits without running it.
package async
