// Package observability provides logging, metrics, and tracing for the
// routing server.
//
// # Features
//
//   - Structured logging via zap behind a small Logger interface
//   - Prometheus metrics with a dedicated registry and HTTP middleware
//   - OpenTelemetry tracing with an OTLP gRPC exporter
//
// # Usage
//
//	logger, err := observability.NewLogger(observability.LogConfig{
//		Level:  "info",
//		Format: "json",
//	})
//	if err != nil {
//		return err
//	}
//	defer logger.Sync()
//
//	metrics := observability.NewMetrics("avarouter")
//	http.Handle("/metrics", metrics.Handler())
package observability
