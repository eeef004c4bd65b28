// Package source loads sheet definitions and rows from files.
//
// A definition is a YAML document naming the sheet and its columns:
//
//	sheet_name: Staff
//	columns:
//	  - header: Name
//	    field: name
//	  - header: Greeting
//	    template: "Hello {{.name}}"
//
// Each column sets exactly one of field and template. Templates use
// text/template and are executed against the row; a missing key renders as
// an empty string.
//
// Rows are read by file extension: .json (an array of objects), .yaml or
// .yml (a sequence of mappings, where YAML timestamps become dates) and .csv
// (the first record names the fields).
package source
