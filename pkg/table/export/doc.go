// Package export writes a table.Sheet to an io.Writer in one of the
// supported formats.
//
// # Formats
//
//   - xlsx: a store-only OOXML workbook built by package xlsx
//   - csv: RFC 4180 text with an optional header row and UTF-8 BOM
//   - json: an array of objects whose keys follow column order
//
// # Usage
//
//	exporter, err := export.New("xlsx", export.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := exporter.Export(ctx, sheet, f); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Every exporter validates the sheet first and returns a
// *table.ValidationError without writing anything when it is invalid.
// Encoding and writer failures are wrapped in *table.ExportError. Output is
// rendered into memory before the first write, so a failed export never
// leaves a truncated document behind.
package export
