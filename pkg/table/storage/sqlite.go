package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"mercator-hq/tabula/pkg/table"
)

// Driver names registered by the two SQLite packages.
const (
	DriverModernc = "sqlite"
	DriverMattn   = "sqlite3"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path. ":memory:" works for tests when
	// MaxOpenConns is 1.
	Path string

	// Driver is DriverModernc or DriverMattn.
	// Default: DriverModernc
	Driver string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/documents.db",
		Driver:       DriverModernc,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements table.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the database, applies pragmas and creates the
// schema.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	driver := config.Driver
	if driver == "" {
		driver = DriverModernc
	}
	if driver != DriverModernc && driver != DriverMattn {
		return nil, table.NewStorageError("sqlite", "open", fmt.Errorf("unknown driver %q", driver))
	}

	logger := slog.Default().With("component", "table.storage.sqlite")

	db, err := sql.Open(driver, config.Path)
	if err != nil {
		return nil, table.NewStorageError("sqlite", "open", err)
	}

	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", config.Path,
		"driver", driver,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return table.NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return table.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return table.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return table.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return table.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return table.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

// Store inserts doc, replacing any document with the same ID.
func (s *SQLiteStorage) Store(ctx context.Context, doc *table.Document) error {
	if doc == nil || doc.ID == "" {
		return table.NewStorageError("sqlite", "store", table.NewValidationError("id", "document ID is required"))
	}

	query := `INSERT OR REPLACE INTO documents (` + metadataColumns + `, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	data := doc.Data
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.ExecContext(ctx, query,
		doc.ID, doc.Name, doc.Format, doc.ContentType, doc.SheetName,
		doc.Rows, doc.Columns, doc.Size, doc.SHA256,
		doc.CreatedAt.UnixNano(), data,
	)
	if err != nil {
		return table.NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Get returns the document with its data.
func (s *SQLiteStorage) Get(ctx context.Context, id string) (*table.Document, error) {
	query := `SELECT ` + metadataColumns + `, data FROM documents WHERE id = ?`

	row := s.db.QueryRowContext(ctx, query, id)
	doc, err := scanDocument(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, table.ErrNotFound
	}
	if err != nil {
		return nil, table.NewStorageError("sqlite", "get", err)
	}
	return doc, nil
}

// List returns matching documents newest first, without data.
func (s *SQLiteStorage) List(ctx context.Context, query *table.DocumentQuery) ([]*table.Document, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT " + metadataColumns + " FROM documents"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}
	sqlQuery += " ORDER BY created_at DESC, id DESC"

	if query != nil && (query.Limit > 0 || query.Offset > 0) {
		limit := -1
		if query.Limit > 0 {
			limit = query.Limit
		}
		sqlQuery += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, table.NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	docs := []*table.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows, false)
		if err != nil {
			return nil, table.NewStorageError("sqlite", "scan", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, table.NewStorageError("sqlite", "list", err)
	}
	return docs, nil
}

// Count returns the number of matching documents.
func (s *SQLiteStorage) Count(ctx context.Context, query *table.DocumentQuery) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM documents"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, table.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Delete removes matching documents and returns how many were removed.
func (s *SQLiteStorage) Delete(ctx context.Context, query *table.DocumentQuery) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM documents"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, table.NewStorageError("sqlite", "delete", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, table.NewStorageError("sqlite", "delete", err)
	}
	return count, nil
}

// Close releases the database handle.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return table.NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite storage closed")
	return nil
}

// buildWhereClause returns the conditions (without "WHERE") and their
// arguments.
func buildWhereClause(query *table.DocumentQuery) (string, []any) {
	if query == nil {
		return "", nil
	}

	var conditions []string
	var args []any

	if len(query.IDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(query.IDs)), ",")
		conditions = append(conditions, "id IN ("+placeholders+")")
		for _, id := range query.IDs {
			args = append(args, id)
		}
	}
	if query.Format != "" {
		conditions = append(conditions, "format = ?")
		args = append(args, query.Format)
	}
	if query.CreatedAfter != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, query.CreatedAfter.UnixNano())
	}
	if query.CreatedBefore != nil {
		conditions = append(conditions, "created_at < ?")
		args = append(args, query.CreatedBefore.UnixNano())
	}

	return strings.Join(conditions, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner, withData bool) (*table.Document, error) {
	var doc table.Document
	var createdAt int64
	dest := []any{
		&doc.ID, &doc.Name, &doc.Format, &doc.ContentType, &doc.SheetName,
		&doc.Rows, &doc.Columns, &doc.Size, &doc.SHA256, &createdAt,
	}
	if withData {
		dest = append(dest, &doc.Data)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	doc.CreatedAt = time.Unix(0, createdAt).UTC()
	return &doc, nil
}
