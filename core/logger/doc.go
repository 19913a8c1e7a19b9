// Package logger provides structured logging built on slog: a small
// factory and nil-safe attribute helpers shared by every component of
// the client.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("service", "magento-client")),
//	)
//
//	log.Info("request completed",
//		logger.Method("GET"),
//		logger.Endpoint("rest/V1/products"),
//		logger.StatusCode(200),
//		logger.Elapsed(start),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty Attr for nil or zero inputs, so callers can
// pass errors and optional identifiers unconditionally:
//
//	log.Error("request failed",
//		logger.Error(err),       // safe when err is nil
//		logger.RequestID(reqID), // dropped when empty
//		logger.Attempt(attempt),
//	)
//
// # Testing with Custom Output
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//	log.Info("test message", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger
