package table

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("columns", "at least one column is required")

	expected := "validation error [field=columns]: at least one column is required"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	wrapped := fmt.Errorf("export: %w", err)
	if !IsValidationError(wrapped) {
		t.Error("IsValidationError() should see through wrapping")
	}
	if IsValidationError(errors.New("other")) {
		t.Error("IsValidationError() = true for a plain error")
	}
}

func TestWrappedErrors(t *testing.T) {
	cause := errors.New("underlying error")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "export",
			err:  NewExportError("xlsx", 3, cause),
			want: "export error [format=xlsx, row_count=3]: underlying error",
		},
		{
			name: "storage",
			err:  NewStorageError("sqlite", "store", cause),
			want: "storage error [backend=sqlite, operation=store]: underlying error",
		},
		{
			name: "retention",
			err:  NewRetentionError(30, cause),
			want: "retention error [retention_days=30]: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}
			if !errors.Is(tt.err, cause) {
				t.Error("errors.Is() should find the cause")
			}
		})
	}
}

func TestDocumentQuery_Matches(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := &Document{ID: "doc-1", Format: "xlsx", CreatedAt: base}
	before := base.Add(time.Second)
	after := base

	tests := []struct {
		name  string
		query *DocumentQuery
		want  bool
	}{
		{"nil query", nil, true},
		{"empty query", &DocumentQuery{}, true},
		{"id match", &DocumentQuery{IDs: []string{"x", "doc-1"}}, true},
		{"id miss", &DocumentQuery{IDs: []string{"x"}}, false},
		{"format match", &DocumentQuery{Format: "xlsx"}, true},
		{"format miss", &DocumentQuery{Format: "csv"}, false},
		{"created after is inclusive", &DocumentQuery{CreatedAfter: &after}, true},
		{"created before is exclusive", &DocumentQuery{CreatedBefore: &after}, false},
		{"created before later", &DocumentQuery{CreatedBefore: &before}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Matches(doc); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
