// Package xlsx renders a single-sheet OOXML spreadsheet package.
//
// # Overview
//
// Export turns a table.Sheet into the bytes of a minimal .xlsx file. It
// builds six XML parts and hands them, in a fixed order, to the ziparchive
// assembler:
//
//	[Content_Types].xml
//	_rels/.rels
//	xl/workbook.xml
//	xl/_rels/workbook.xml.rels
//	xl/worksheets/sheet1.xml
//	xl/styles.xml
//
// No compression, shared strings or styling beyond one default cell format
// are produced. All strings are written inline.
//
// # Usage
//
//	data, err := xlsx.Export(table.Sheet{
//	    Name:    "Invoices",
//	    Columns: []table.Column{table.Field("Number", "number")},
//	    Rows:    rows,
//	})
//	if err != nil {
//	    return err // *table.ValidationError when Columns is empty
//	}
//
// # Cells
//
// The header is row 1; data row i is row i+2. Null and empty values leave
// the cell out. Finite numbers become numeric cells. Everything else,
// including NaN, Infinity, booleans and dates, becomes inline text.
//
// Output is deterministic: identical input yields identical bytes.
package xlsx
