// Package security provides credential helpers used around the client:
// PBKDF2 password hashing, HMAC signing for webhook payloads, random
// key generation, and log-safe masking of tokens.
//
// Masking keeps just enough of a credential to correlate log lines
// without exposing it:
//
//	logger.Debug("token refreshed",
//		slog.String("token", security.MaskSensitive(token, 4)))
//
// All comparisons of derived hashes and signatures are constant-time.
package security
