package export

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"mercator-hq/tabula/pkg/table"
)

// Format names.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Exporter renders a sheet in one format.
type Exporter interface {
	// Export validates sheet and writes the complete document to w.
	Export(ctx context.Context, sheet table.Sheet, w io.Writer) error

	// Format returns the format name, e.g. "csv".
	Format() string

	// ContentType returns the MIME type of the output.
	ContentType() string

	// Extension returns the file extension without the leading dot.
	Extension() string
}

// Options tunes the text exporters. XLSX output has no options.
type Options struct {
	// CSVHeader writes the column headers as the first CSV record.
	CSVHeader bool

	// CSVBOM prefixes CSV output with a UTF-8 byte order mark.
	CSVBOM bool

	// JSONPretty indents JSON output with two spaces.
	JSONPretty bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		CSVHeader:  true,
		JSONPretty: true,
	}
}

// New returns the exporter for format. Format names are case-insensitive.
func New(format string, opts Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatXLSX:
		return NewXLSXExporter(), nil
	case FormatCSV:
		return NewCSVExporter(opts.CSVHeader, opts.CSVBOM), nil
	case FormatJSON:
		return NewJSONExporter(opts.JSONPretty), nil
	default:
		return nil, table.NewValidationError("format",
			fmt.Sprintf("unsupported format %q (supported: %s)", format, strings.Join(Formats(), ", ")))
	}
}

// Formats lists the supported format names in sorted order.
func Formats() []string {
	formats := []string{FormatXLSX, FormatCSV, FormatJSON}
	sort.Strings(formats)
	return formats
}

// ExtensionFor returns the file extension for format, or "" when the format
// is unknown.
func ExtensionFor(format string) string {
	e, err := New(format, Options{})
	if err != nil {
		return ""
	}
	return e.Extension()
}

// prepare runs the checks shared by every exporter.
func prepare(ctx context.Context, sheet *table.Sheet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return sheet.Validate()
}

// write sends a fully rendered document to w.
func write(w io.Writer, format string, rows int, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return table.NewExportError(format, rows, err)
	}
	return nil
}
