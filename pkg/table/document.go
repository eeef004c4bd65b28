package table

import (
	"context"
	"time"
)

// Document is an exported file kept in storage.
type Document struct {
	// ID uniquely identifies the document (UUID).
	ID string `json:"id"`

	// Name is the download file name, e.g. "Patients.xlsx".
	Name string `json:"name"`

	// Format is the exporter that produced the document ("xlsx", "csv", "json").
	Format string `json:"format"`

	// ContentType is the MIME type served with the document.
	ContentType string `json:"content_type"`

	// SheetName is the sanitized sheet title.
	SheetName string `json:"sheet_name"`

	// Rows and Columns describe the exported sheet, excluding the header.
	Rows    int `json:"rows"`
	Columns int `json:"columns"`

	// Size is len(Data).
	Size int64 `json:"size"`

	// SHA256 is the hex-encoded digest of Data.
	SHA256 string `json:"sha256"`

	// CreatedAt is when the document was produced.
	CreatedAt time.Time `json:"created_at"`

	// Data is the file content. List results leave it nil.
	Data []byte `json:"-"`
}

// DocumentQuery filters documents. The zero value matches everything.
type DocumentQuery struct {
	// IDs restricts the match to the given document IDs.
	IDs []string

	// Format restricts the match to one export format.
	Format string

	// CreatedAfter matches documents created at or after this time.
	CreatedAfter *time.Time

	// CreatedBefore matches documents created strictly before this time.
	CreatedBefore *time.Time

	// Limit caps the number of listed documents (0 = no limit).
	Limit int

	// Offset skips that many documents, newest first.
	Offset int
}

// Storage persists exported documents.
type Storage interface {
	// Store persists a document, including its data.
	Store(ctx context.Context, doc *Document) error

	// Get returns the document with its data, or ErrNotFound.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns matching documents newest first, without their data.
	List(ctx context.Context, query *DocumentQuery) ([]*Document, error)

	// Count returns the number of matching documents. Limit and Offset are ignored.
	Count(ctx context.Context, query *DocumentQuery) (int64, error)

	// Delete removes matching documents and returns how many were removed.
	// Limit and Offset are ignored.
	Delete(ctx context.Context, query *DocumentQuery) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Matches reports whether doc satisfies the filter fields of q.
func (q *DocumentQuery) Matches(doc *Document) bool {
	if q == nil {
		return true
	}
	if len(q.IDs) > 0 {
		found := false
		for _, id := range q.IDs {
			if id == doc.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Format != "" && q.Format != doc.Format {
		return false
	}
	if q.CreatedAfter != nil && doc.CreatedAt.Before(*q.CreatedAfter) {
		return false
	}
	if q.CreatedBefore != nil && !doc.CreatedAt.Before(*q.CreatedBefore) {
		return false
	}
	return true
}
