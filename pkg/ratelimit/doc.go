// Package ratelimit provides token bucket admission control for outbound
// API calls.
//
// The bucket refills lazily from elapsed wall-clock time; there is no
// background goroutine. Two Limiter implementations share the algorithm:
// MemoryLimiter for a single process and RedisLimiter for a budget shared
// across processes.
//
// # Usage
//
//	limiter, err := ratelimit.NewMemoryLimiter(ratelimit.Config{
//		RequestsPerWindow: 100,
//		Window:            time.Minute,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Blocks until a slot is available or ctx ends.
//	if err := limiter.Acquire(ctx, 1); err != nil {
//		return err
//	}
//
// Burst capacity defaults to the per-window budget; set Config.Burst to
// allow a different burst size:
//
//	cfg := ratelimit.Config{
//		RequestsPerWindow: 60,
//		Window:            time.Minute,
//		Burst:             10, // at most 10 back-to-back requests
//	}
//
// # Sharing a budget across processes
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	limiter, err := ratelimit.NewRedisLimiter(rdb, "store-api", cfg)
//
// The Redis variant runs refill-and-consume as a single Lua script, so
// concurrent processes never double-spend tokens.
//
// # Cancellation
//
// Acquire waits are abandoned when the context ends. An abandoned wait
// never corrupts bucket state: tokens are consumed atomically or not at
// all, and other waiters proceed normally.
package ratelimit
