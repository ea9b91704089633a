// Package logger builds slog loggers and provides attribute helpers shared by
// the server, the middleware and the integrations.
//
//	log := logger.New(
//		logger.WithProduction("api"),
//		logger.WithContextValue("request_id", middleware.RequestIDKey{}),
//	)
//	log.Info("listening", logger.Component("server"), logger.Event("startup"))
//
// Attribute helpers return an empty slog.Attr for nil or empty input so they
// can be passed unconditionally:
//
//	log.Error("request failed", logger.Error(err), logger.Method(r.Method))
package logger
