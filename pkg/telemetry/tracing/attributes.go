package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys set on tabula spans.
const (
	AttrFormat     = "tabula.format"
	AttrSheet      = "tabula.sheet"
	AttrRows       = "tabula.rows"
	AttrColumns    = "tabula.columns"
	AttrDocumentID = "tabula.document.id"
	AttrSize       = "tabula.document.size"
	AttrStored     = "tabula.document.stored"
	AttrDeleted    = "tabula.retention.deleted"
)

// SetExportAttributes describes the sheet being exported.
func SetExportAttributes(span trace.Span, format, sheet string, rows, columns int) {
	span.SetAttributes(
		attribute.String(AttrFormat, format),
		attribute.String(AttrSheet, sheet),
		attribute.Int(AttrRows, rows),
		attribute.Int(AttrColumns, columns),
	)
}

// SetDocumentAttributes describes the produced document.
func SetDocumentAttributes(span trace.Span, id string, size int64, stored bool) {
	span.SetAttributes(
		attribute.String(AttrDocumentID, id),
		attribute.Int64(AttrSize, size),
		attribute.Bool(AttrStored, stored),
	)
}

// SetRetentionAttributes records how many documents a prune removed.
func SetRetentionAttributes(span trace.Span, deleted int64) {
	span.SetAttributes(attribute.Int64(AttrDeleted, deleted))
}
