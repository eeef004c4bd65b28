// Tabula renders tabular data as spreadsheet documents.
//
// It reads a YAML sheet definition and a row file (JSON, YAML or CSV) and
// produces an XLSX workbook, a CSV file or a JSON array. Exports can be kept
// in a document store with automatic retention.
//
// Usage:
//
//	# Export to a workbook
//	tabula export --definition sheet.yaml --rows rows.json --output out.xlsx
//
//	# Export as CSV to stdout and keep a copy in the document store
//	tabula export --definition sheet.yaml --rows rows.csv --format csv --store
//
//	# Re-export whenever the inputs change
//	tabula watch --definition sheet.yaml --rows rows.yaml --output out.xlsx
//
//	# Inspect stored documents
//	tabula documents list
//	tabula documents get 1b4e28ba-2fa1-11d2-883f-0016d3cca427 --output copy.xlsx --verify
//
//	# Show version information
//	tabula version
package main

import "os"

func main() {
	os.Exit(Execute())
}
