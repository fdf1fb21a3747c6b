// Package logger provides structured logging on top of Uber's Zap.
//
// Every pgdoc package logs through the Logger interface with the signature
// `Info(msg string, err error, fields ...map[string]interface{})`, so any
// implementation can be plugged in. LoggerClient is the Zap-backed one;
// Nop discards everything and is the default when nothing is configured.
//
// Basic Usage:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Debug,
//		ServiceName:   "pgdoc",
//		EnableTracing: true,
//	})
//
//	log.Info("Document table ensured", nil, map[string]interface{}{
//		"table": "app.users",
//	})
//
// With EnableTracing set, the *WithContext methods add trace_id and span_id
// fields taken from the OpenTelemetry span stored in the context.
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: logger.Info, ServiceName: "pgdoc"}
//		}),
//	)
package logger
