package table

import "fmt"

// DefaultSheetName is used when a sheet has no usable name.
const DefaultSheetName = "Sheet1"

// Sheet is the input to every exporter.
type Sheet struct {
	// Name is the sheet title. Empty means DefaultSheetName; spreadsheet
	// exporters sanitize it further.
	Name string

	// Columns fixes the order of cells. At least one is required.
	Columns []Column

	// Rows may be empty, which yields a header-only sheet.
	Rows []Row
}

// Validate checks the input contract shared by all exporters.
func (s *Sheet) Validate() error {
	if len(s.Columns) == 0 {
		return NewValidationError("columns", "at least one column is required")
	}
	for i, col := range s.Columns {
		if col.Accessor.IsZero() {
			return NewValidationError(fmt.Sprintf("columns[%d]", i),
				fmt.Sprintf("column %q has neither a field nor a computed accessor", col.Header))
		}
	}
	return nil
}

// Headers returns the column headers in order.
func (s *Sheet) Headers() []string {
	headers := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		headers[i] = col.Header
	}
	return headers
}

// Cells resolves every column of row in order.
func (s *Sheet) Cells(row Row) []Value {
	cells := make([]Value, len(s.Columns))
	for i, col := range s.Columns {
		cells[i] = col.Accessor.Resolve(row)
	}
	return cells
}
