// Package table defines the tabular data model shared by every exporter.
//
// # Overview
//
// A Sheet is a named list of Columns and a list of Rows:
//
//   - Row is an open map of field name to value, owned by the caller
//   - Column pairs a header with an Accessor that extracts a cell from a Row
//   - Accessor is either ByField (map lookup) or Computed (a function)
//   - Value is the resolved cell: null, string, number, boolean or date
//
// # Accessors
//
//	sheet := table.Sheet{
//	    Name: "Patients",
//	    Columns: []table.Column{
//	        table.Field("Name", "name"),
//	        table.Compute("Balance", func(r table.Row) any {
//	            return r["billed"].(float64) - r["paid"].(float64)
//	        }),
//	    },
//	    Rows: rows,
//	}
//
// Accessor.Resolve is the single dispatch point; exporters never inspect
// rows directly.
//
// # Values
//
// ValueOf normalizes arbitrary Go values. Integers and floats become numbers,
// time.Time becomes a date, nil becomes null, and nested maps, slices and
// structs are stringified as JSON text rather than rejected.
//
// # Documents
//
// Document and Storage describe exported files kept for later download.
// Backends live in the storage subpackage.
//
// # Error Handling
//
// Validation failures are reported as *ValidationError. Exporters, storage
// backends and the retention pruner wrap their causes in ExportError,
// StorageError and RetentionError respectively.
package table
