package export

import (
	"context"
	"io"

	"mercator-hq/tabula/pkg/table"
	"mercator-hq/tabula/pkg/xlsx"
)

// XLSXExporter writes a single-sheet workbook.
type XLSXExporter struct{}

// NewXLSXExporter creates a new XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export writes sheet to w as an .xlsx file.
func (e *XLSXExporter) Export(ctx context.Context, sheet table.Sheet, w io.Writer) error {
	if err := prepare(ctx, &sheet); err != nil {
		return err
	}

	data, err := xlsx.Export(sheet)
	if err != nil {
		if table.IsValidationError(err) {
			return err
		}
		return table.NewExportError(FormatXLSX, len(sheet.Rows), err)
	}
	return write(w, FormatXLSX, len(sheet.Rows), data)
}

// Format returns the registry name of the exporter, "xlsx".
func (e *XLSXExporter) Format() string {
	return FormatXLSX
}

// ContentType returns the MIME type of the exported document.
func (e *XLSXExporter) ContentType() string {
	return xlsx.ContentType
}

// Extension returns the file extension without the leading dot.
func (e *XLSXExporter) Extension() string {
	return "xlsx"
}
