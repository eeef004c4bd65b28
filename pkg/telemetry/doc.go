// Package telemetry groups the observability packages used by tabula.
//
//   - logging: structured logging over log/slog
//   - metrics: Prometheus export metrics and the telemetry HTTP server
//   - tracing: OpenTelemetry spans exported over OTLP
//   - health: liveness and readiness endpoints for the watch command
//
// Each subpackage is configured from the telemetry section of the config
// file and is a no-op when disabled.
package telemetry
