package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"

	"mercator-hq/tabula/pkg/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVExporter writes one record per row with cells in column order.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool

	// BOM prefixes the output with a UTF-8 byte order mark, which some
	// spreadsheet applications need to detect the encoding.
	BOM bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader, bom bool) *CSVExporter {
	return &CSVExporter{
		IncludeHeader: includeHeader,
		BOM:           bom,
	}
}

// Export writes sheet to w in CSV format. Absent values become empty fields.
func (e *CSVExporter) Export(ctx context.Context, sheet table.Sheet, w io.Writer) error {
	if err := prepare(ctx, &sheet); err != nil {
		return err
	}

	var buf bytes.Buffer
	if e.BOM {
		buf.Write(utf8BOM)
	}
	writer := csv.NewWriter(&buf)

	if e.IncludeHeader {
		if err := writer.Write(sheet.Headers()); err != nil {
			return table.NewExportError(FormatCSV, len(sheet.Rows), err)
		}
	}

	record := make([]string, len(sheet.Columns))
	for i, row := range sheet.Rows {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for j, v := range sheet.Cells(row) {
			record[j] = v.Text()
		}
		if err := writer.Write(record); err != nil {
			return table.NewExportError(FormatCSV, len(sheet.Rows), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return table.NewExportError(FormatCSV, len(sheet.Rows), err)
	}
	return write(w, FormatCSV, len(sheet.Rows), buf.Bytes())
}

// Format returns the registry name of the exporter, "csv".
func (e *CSVExporter) Format() string {
	return FormatCSV
}

// ContentType returns the MIME type of the exported document.
func (e *CSVExporter) ContentType() string {
	return "text/csv; charset=utf-8"
}

// Extension returns the file extension without the leading dot.
func (e *CSVExporter) Extension() string {
	return "csv"
}
