// Package auth manages the admin bearer token: issuance through the
// transport, caching with an expiry safety margin, and single-flight
// refresh under concurrent callers.
//
//	cache, err := auth.NewTokenCache(httpClient, cfg.Username, cfg.Password,
//		auth.WithTTL(cfg.TokenTTL),
//		auth.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//
//	token, err := cache.Token(ctx)
//
// Token returns the cached credential while it is fresh; a stale or
// empty cache triggers exactly one issuance call no matter how many
// goroutines ask concurrently. Refresh forces a new token after the
// upstream rejects one, and Invalidate drops cached state without
// issuing anything. Refresh failures are never retried here; that is
// the executor's job.
package auth
