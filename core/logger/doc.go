// Package logger builds slog loggers and provides attribute helpers shared
// across the service.
//
// Presets pick format and level per environment:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.Name),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(middleware.RequestIDExtractor),
//	)
//	logger.SetAsDefault(log)
//
//	log.Info("server starting",
//		logger.Component("server"),
//		logger.Key("addr", addr),
//	)
//
// Development is text at debug level, staging is JSON at debug level and
// production is JSON at info level. Context extractors add attributes from
// the context of every *Context call, which is how request ids reach log
// lines written deep inside handlers.
//
// Attribute helpers return an empty slog.Attr for nil errors and empty
// strings, so they can be passed unconditionally.
package logger
