// Package storage provides table.Storage backends for exported documents.
//
// # Backends
//
//   - MemoryStorage: a map guarded by a mutex, for tests and one-shot runs
//   - SQLiteStorage: documents and their bytes in a single SQLite file
//
// SQLiteStorage works with either registered driver: "sqlite" (modernc.org,
// pure Go) or "sqlite3" (mattn, cgo). The driver is picked through
// SQLiteConfig.Driver.
//
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
//	    Path:   "data/documents.db",
//	    Driver: storage.DriverModernc,
//	})
//
// Both backends copy documents on the way in and out, so callers may reuse
// or modify the values they pass.
package storage
