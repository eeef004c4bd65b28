package recorder

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"mercator-hq/tabula/pkg/table"
	"mercator-hq/tabula/pkg/table/export"
	"mercator-hq/tabula/pkg/telemetry/metrics"
	"mercator-hq/tabula/pkg/telemetry/tracing"
	"mercator-hq/tabula/pkg/xlsx"
)

// Config contains configuration for the recorder.
type Config struct {
	// Export tunes the CSV and JSON exporters.
	Export export.Options

	// MaxRows rejects sheets with more data rows. 0 means unlimited.
	MaxRows int

	// Now returns the creation time of new documents. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Export: export.DefaultOptions(),
		Now:    time.Now,
	}
}

// genericTypes are detection results too vague to replace the exporter's
// declared content type.
var genericTypes = []string{
	"application/octet-stream",
	"application/zip",
	"text/plain",
}

// Recorder renders sheets into documents and optionally stores them.
type Recorder struct {
	storage table.Storage
	metrics *metrics.Collector
	config  *Config
	logger  *slog.Logger
}

// NewRecorder creates a recorder. storage and collector may be nil, in which
// case documents are returned without being persisted or counted.
func NewRecorder(storage table.Storage, collector *metrics.Collector, config *Config) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &Recorder{
		storage: storage,
		metrics: collector,
		config:  config,
		logger:  slog.Default().With("component", "table.recorder"),
	}
}

// Record exports sheet in format and returns the resulting document with its
// data. When the recorder has a storage backend the document is stored
// before Record returns. Validation failures are never stored.
func (r *Recorder) Record(ctx context.Context, format string, sheet table.Sheet) (*table.Document, error) {
	start := time.Now()

	ctx, span := tracing.Start(ctx, "recorder.Record")
	defer span.End()
	tracing.SetExportAttributes(span, format, sheet.Name, len(sheet.Rows), len(sheet.Columns))

	exporter, err := export.New(format, r.config.Export)
	if err != nil {
		r.metrics.RecordExport(format, metrics.StatusInvalid, 0, 0, 0)
		tracing.SetError(span, err)
		return nil, err
	}
	format = exporter.Format()

	if r.config.MaxRows > 0 && len(sheet.Rows) > r.config.MaxRows {
		r.metrics.RecordExport(format, metrics.StatusInvalid, 0, 0, 0)
		err := table.NewValidationError("rows",
			fmt.Sprintf("%d rows exceeds the limit of %d", len(sheet.Rows), r.config.MaxRows))
		tracing.SetError(span, err)
		return nil, err
	}

	var buf bytes.Buffer
	if err := exporter.Export(ctx, sheet, &buf); err != nil {
		status := metrics.StatusError
		if table.IsValidationError(err) {
			status = metrics.StatusInvalid
		}
		r.metrics.RecordExport(format, status, time.Since(start), 0, 0)
		r.logger.Warn("export failed",
			"format", format,
			"sheet", sheet.Name,
			"status", status,
			"error", err,
		)
		tracing.SetError(span, err)
		return nil, err
	}
	duration := time.Since(start)
	data := buf.Bytes()

	sheetName := xlsx.SanitizeSheetName(sheet.Name)
	doc := &table.Document{
		ID:          uuid.NewString(),
		Name:        sheetName + "." + exporter.Extension(),
		Format:      format,
		ContentType: DetectContentType(data, exporter.ContentType()),
		SheetName:   sheetName,
		Rows:        len(sheet.Rows),
		Columns:     len(sheet.Columns),
		Size:        int64(len(data)),
		SHA256:      HashContent(data),
		CreatedAt:   r.config.Now().UTC(),
		Data:        data,
	}

	if r.storage != nil {
		if err := r.storage.Store(ctx, doc); err != nil {
			r.metrics.RecordExport(format, metrics.StatusError, duration, len(data), doc.Rows)
			r.logger.Error("failed to store document",
				"document_id", doc.ID,
				"format", format,
				"error", err,
			)
			tracing.SetError(span, err)
			return nil, err
		}
	}
	tracing.SetDocumentAttributes(span, doc.ID, doc.Size, r.storage != nil)
	tracing.SetStatus(span, nil)

	r.metrics.RecordExport(format, metrics.StatusSuccess, duration, len(data), doc.Rows)
	r.logger.Info("document recorded",
		"document_id", doc.ID,
		"name", doc.Name,
		"format", format,
		"rows", doc.Rows,
		"size", doc.Size,
		"stored", r.storage != nil,
		"duration", duration,
	)

	return doc, nil
}

// DetectContentType sniffs data and returns the detected MIME type, or
// declared when detection only finds a generic container or text type, or
// one that declared already names.
func DetectContentType(data []byte, declared string) string {
	detected := mimetype.Detect(data)

	base, _, err := mime.ParseMediaType(declared)
	if err != nil {
		base = declared
	}
	if detected.Is(base) {
		return declared
	}
	for _, generic := range genericTypes {
		if detected.Is(generic) {
			return declared
		}
	}
	return detected.String()
}
