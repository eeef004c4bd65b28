// Package tracing provides OpenTelemetry tracing for exports.
//
// New installs a global tracer provider that exports spans over OTLP gRPC.
// Instrumented code starts spans with Start, which goes through the global
// provider and costs next to nothing while tracing is disabled.
//
// # Sampling Strategies
//
// Three sampling strategies are supported:
//   - always: Sample all traces
//   - never: Sample no traces
//   - ratio: Sample a fraction of traces by trace ID
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//		return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracing.Start(ctx, "recorder.Record")
//	defer span.End()
//	tracing.SetExportAttributes(span, "xlsx", "Patients", 120, 4)
package tracing
