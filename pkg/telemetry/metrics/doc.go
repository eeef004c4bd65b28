// Package metrics exposes Prometheus metrics for exports and retention.
//
// Metrics (with the default namespace and subsystem):
//
//   - tabula_export_exports_total{format,status}
//   - tabula_export_export_duration_seconds{format}
//   - tabula_export_export_size_bytes{format}
//   - tabula_export_export_rows_total{format}
//   - tabula_export_documents_pruned_total
//
// A nil *Collector and a collector built from a disabled configuration both
// accept every Record call and do nothing.
package metrics
