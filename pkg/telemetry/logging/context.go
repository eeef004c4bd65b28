package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// DocumentIDKey is the context key for stored document IDs.
	DocumentIDKey contextKey = "document_id"

	// SheetKey is the context key for sheet names.
	SheetKey contextKey = "sheet"

	// FormatKey is the context key for export formats.
	FormatKey contextKey = "format"
)

// contextFields lists the keys extracted into log records, in order.
var contextFields = []contextKey{RequestIDKey, DocumentIDKey, SheetKey, FormatKey}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	return getString(ctx, RequestIDKey)
}

// WithDocumentID adds a document ID to the context.
func WithDocumentID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, DocumentIDKey, id)
}

// GetDocumentID retrieves the document ID from the context.
func GetDocumentID(ctx context.Context) string {
	return getString(ctx, DocumentIDKey)
}

// WithSheet adds a sheet name to the context.
func WithSheet(ctx context.Context, sheet string) context.Context {
	return context.WithValue(ctx, SheetKey, sheet)
}

// WithFormat adds an export format to the context.
func WithFormat(ctx context.Context, format string) context.Context {
	return context.WithValue(ctx, FormatKey, format)
}

func getString(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// extractContextFields returns key-value pairs suitable for slog, followed
// by the trace and span IDs of a sampled span in ctx.
func extractContextFields(ctx context.Context) []any {
	var fields []any
	for _, key := range contextFields {
		if v := getString(ctx, key); v != "" {
			fields = append(fields, string(key), v)
		}
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() && sc.IsSampled() {
		fields = append(fields, "trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
	}
	return fields
}
