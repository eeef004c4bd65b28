package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is an aligned plain text table (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatCSV is CSV output.
	FormatCSV OutputFormat = "csv"
)

// Table is tabular command output.
type Table struct {
	Headers []string
	Rows    [][]string

	// Records is what the JSON formatter encodes. When nil, each row is
	// encoded as an object keyed by header.
	Records any
}

// Append adds a row.
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t Table) objects() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		obj := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(row) {
				obj[strings.ToLower(h)] = row[i]
			}
		}
		out = append(out, obj)
	}
	return out
}

// Formatter formats command output.
type Formatter interface {
	Format(data any) ([]byte, error)
	FormatTo(w io.Writer, data any) error
}

// TextFormatter renders tables with aligned columns and anything else with %v.
type TextFormatter struct{}

// Format converts data to text format.
func (f *TextFormatter) Format(data any) ([]byte, error) {
	var sb strings.Builder
	if err := f.FormatTo(&sb, data); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// FormatTo writes data to writer in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	t, ok := asTable(data)
	if !ok {
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// Format converts data to JSON format.
func (f *JSONFormatter) Format(data any) ([]byte, error) {
	data = f.payload(data)
	if f.Indent {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(f.payload(data))
}

func (f *JSONFormatter) payload(data any) any {
	t, ok := asTable(data)
	if !ok {
		return data
	}
	if t.Records != nil {
		return t.Records
	}
	return t.objects()
}

// CSVFormatter formats tables as CSV.
type CSVFormatter struct{}

// Format converts data to CSV format.
func (f *CSVFormatter) Format(data any) ([]byte, error) {
	var sb strings.Builder
	if err := f.FormatTo(&sb, data); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// FormatTo writes data to writer in CSV format.
func (f *CSVFormatter) FormatTo(w io.Writer, data any) error {
	t, ok := asTable(data)
	if !ok {
		return fmt.Errorf("csv output requires a table, got %T", data)
	}

	csvWriter := csv.NewWriter(w)
	if len(t.Headers) > 0 {
		if err := csvWriter.Write(t.Headers); err != nil {
			return err
		}
	}
	if err := csvWriter.WriteAll(t.Rows); err != nil {
		return err
	}
	return csvWriter.Error()
}

func asTable(data any) (Table, bool) {
	switch t := data.(type) {
	case Table:
		return t, true
	case *Table:
		return *t, true
	default:
		return Table{}, false
	}
}

// NewFormatter creates a formatter for format. Unknown formats are a
// UsageError.
func NewFormatter(format OutputFormat) (Formatter, error) {
	switch OutputFormat(strings.ToLower(string(format))) {
	case FormatText, "":
		return &TextFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: true}, nil
	case FormatCSV:
		return &CSVFormatter{}, nil
	default:
		return nil, NewUsageError("unknown output format %q (supported: text, json, csv)", format)
	}
}
