package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mercator-hq/tabula/pkg/table"
	"mercator-hq/tabula/pkg/ziparchive"
)

func testSheet() table.Sheet {
	return table.Sheet{
		Name: "Staff",
		Columns: []table.Column{
			table.Field("Name", "name"),
			table.Field("Age", "age"),
			table.Field("Active", "active"),
		},
		Rows: []table.Row{
			{"name": "Ana", "age": 31, "active": true},
			{"name": "Bo, Jr.", "age": 27.5},
		},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format      string
		wantFormat  string
		wantExt     string
		wantErr     bool
		contentType string
	}{
		{"xlsx", "xlsx", "xlsx", false, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"XLSX", "xlsx", "xlsx", false, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"csv", "csv", "csv", false, "text/csv; charset=utf-8"},
		{" json ", "json", "json", false, "application/json"},
		{"pdf", "", "", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			e, err := New(tt.format, DefaultOptions())
			if tt.wantErr {
				if !table.IsValidationError(err) {
					t.Fatalf("New(%q) error = %v, want ValidationError", tt.format, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.format, err)
			}
			if e.Format() != tt.wantFormat || e.Extension() != tt.wantExt || e.ContentType() != tt.contentType {
				t.Errorf("got (%s, %s, %s)", e.Format(), e.Extension(), e.ContentType())
			}
		})
	}
}

func TestFormats(t *testing.T) {
	if diff := cmp.Diff([]string{"csv", "json", "xlsx"}, Formats()); diff != "" {
		t.Errorf("Formats() mismatch (-want +got):\n%s", diff)
	}
	if got := ExtensionFor("nope"); got != "" {
		t.Errorf("ExtensionFor(nope) = %q", got)
	}
}

func TestExporters_ValidationWritesNothing(t *testing.T) {
	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			e, err := New(format, DefaultOptions())
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			err = e.Export(context.Background(), table.Sheet{Name: "x"}, &buf)
			if !table.IsValidationError(err) {
				t.Fatalf("Export() error = %v, want ValidationError", err)
			}
			if buf.Len() != 0 {
				t.Errorf("wrote %d bytes on validation failure", buf.Len())
			}
		})
	}
}

func TestExporters_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			e, _ := New(format, DefaultOptions())
			var buf bytes.Buffer
			err := e.Export(ctx, testSheet(), &buf)
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("Export() error = %v, want context.Canceled", err)
			}
			if buf.Len() != 0 {
				t.Errorf("wrote %d bytes after cancellation", buf.Len())
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExporters_WriterFailure(t *testing.T) {
	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			e, _ := New(format, DefaultOptions())
			err := e.Export(context.Background(), testSheet(), failingWriter{})

			var exportErr *table.ExportError
			if !errors.As(err, &exportErr) {
				t.Fatalf("Export() error = %v, want ExportError", err)
			}
			if exportErr.Format != format || exportErr.RowCount != 2 {
				t.Errorf("ExportError = %+v", exportErr)
			}
		})
	}
}

func TestXLSXExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewXLSXExporter().Export(context.Background(), testSheet(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	a, err := ziparchive.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("output is not a valid archive: %v", err)
	}
	if n := len(a.Entries()); n != 6 {
		t.Errorf("archive has %d entries, want 6", n)
	}
}

func TestCSVExporter(t *testing.T) {
	tests := []struct {
		name   string
		header bool
		bom    bool
		want   string
	}{
		{
			name:   "with header",
			header: true,
			want:   "Name,Age,Active\nAna,31,true\n\"Bo, Jr.\",27.5,\n",
		},
		{
			name: "without header",
			want: "Ana,31,true\n\"Bo, Jr.\",27.5,\n",
		},
		{
			name:   "with bom",
			header: true,
			bom:    true,
			want:   "\ufeffName,Age,Active\nAna,31,true\n\"Bo, Jr.\",27.5,\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewCSVExporter(tt.header, tt.bom).Export(context.Background(), testSheet(), &buf)
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCSVExporter_HeaderOnly(t *testing.T) {
	sheet := testSheet()
	sheet.Rows = nil

	var buf bytes.Buffer
	if err := NewCSVExporter(true, false).Export(context.Background(), sheet, &buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "Name,Age,Active\n" {
		t.Errorf("output = %q", got)
	}
}

func TestJSONExporter_Compact(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(context.Background(), testSheet(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	want := `[{"Name":"Ana","Age":31,"Active":true},{"Name":"Bo, Jr.","Age":27.5,"Active":null}]`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONExporter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(true).Export(context.Background(), testSheet(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d objects, want 2", len(decoded))
	}
	if !strings.Contains(buf.String(), "\n  {\n    \"Name\": \"Ana\",") {
		t.Errorf("output is not indented:\n%s", buf.String())
	}
}

func TestJSONExporter_EmptyRows(t *testing.T) {
	sheet := testSheet()
	sheet.Rows = nil

	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(context.Background(), sheet, &buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[]" {
		t.Errorf("output = %q, want []", got)
	}
}

func TestJSONExporter_TextFallback(t *testing.T) {
	sheet := table.Sheet{
		Columns: []table.Column{table.Field("V", "v")},
		Rows: []table.Row{
			{"v": []int{1, 2}},
			{"v": ""},
		},
	}

	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(context.Background(), sheet, &buf); err != nil {
		t.Fatal(err)
	}
	want := `[{"V":"[1,2]"},{"V":""}]`
	if got := buf.String(); got != want {
		t.Errorf("output = %s, want %s", got, want)
	}
}
