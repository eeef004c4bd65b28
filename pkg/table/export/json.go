package export

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"mercator-hq/tabula/pkg/table"
)

// JSONExporter writes an array with one object per row. Object keys are the
// column headers in column order; a repeated header repeats the key.
type JSONExporter struct {
	// Pretty enables pretty-printing with indentation.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{
		Pretty: pretty,
	}
}

// Export writes sheet to w in JSON format. Finite numbers and booleans keep
// their JSON types, absent values become null and everything else is the
// cell text as a string.
func (e *JSONExporter) Export(ctx context.Context, sheet table.Sheet, w io.Writer) error {
	if err := prepare(ctx, &sheet); err != nil {
		return err
	}

	keys := make([][]byte, len(sheet.Columns))
	for i, header := range sheet.Headers() {
		k, err := json.Marshal(header)
		if err != nil {
			return table.NewExportError(FormatJSON, len(sheet.Rows), err)
		}
		keys[i] = k
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range sheet.Rows {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, v := range sheet.Cells(row) {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.Write(keys[j])
			buf.WriteByte(':')
			if err := appendValue(&buf, v); err != nil {
				return table.NewExportError(FormatJSON, len(sheet.Rows), err)
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	data := buf.Bytes()
	if e.Pretty {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, data, "", "  "); err != nil {
			return table.NewExportError(FormatJSON, len(sheet.Rows), err)
		}
		pretty.WriteByte('\n')
		data = pretty.Bytes()
	}
	return write(w, FormatJSON, len(sheet.Rows), data)
}

func appendValue(buf *bytes.Buffer, v table.Value) error {
	switch {
	case v.IsNull():
		buf.WriteString("null")
	case v.IsFiniteNumber():
		buf.WriteString(table.FormatNumber(v.Float()))
	case v.Kind() == table.KindBool:
		if v.Bool() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	default:
		s, err := json.Marshal(v.Text())
		if err != nil {
			return err
		}
		buf.Write(s)
	}
	return nil
}

// Format returns the registry name of the exporter, "json".
func (e *JSONExporter) Format() string {
	return FormatJSON
}

// ContentType returns the MIME type of the exported document.
func (e *JSONExporter) ContentType() string {
	return "application/json"
}

// Extension returns the file extension without the leading dot.
func (e *JSONExporter) Extension() string {
	return "json"
}
