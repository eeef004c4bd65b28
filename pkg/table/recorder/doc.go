// Package recorder turns sheets into stored documents.
//
// A Recorder renders a sheet with one of the export formats, fingerprints the
// output with SHA-256, detects its content type and, when a storage backend
// is configured, persists it as a table.Document. Every run is counted in the
// metrics collector under a success, invalid or error status.
//
// Basic usage:
//
//	rec := recorder.NewRecorder(store, collector, recorder.DefaultConfig())
//	doc, err := rec.Record(ctx, "xlsx", sheet)
//	if err != nil {
//		return err
//	}
//	fmt.Println(doc.ID, doc.Name, doc.SHA256)
package recorder
