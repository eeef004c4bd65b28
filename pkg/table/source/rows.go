package source

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"mercator-hq/tabula/pkg/table"
)

// RowOptions controls row decoding.
type RowOptions struct {
	// CSVNumbers converts CSV fields that parse as numbers into numbers.
	// Otherwise every CSV field is a string.
	CSVNumbers bool
}

// ErrUnsupportedRows is returned for row files with an unknown extension.
var ErrUnsupportedRows = errors.New("unsupported row file extension")

// RowExtensions lists the extensions LoadRows understands.
var RowExtensions = []string{".json", ".yaml", ".yml", ".csv"}

// LoadRows reads rows from path, choosing the decoder by extension.
func LoadRows(path string, opts RowOptions) ([]table.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows %q: %w", path, err)
	}

	var rows []table.Row
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		rows, err = ParseJSONRows(data)
	case ".yaml", ".yml":
		rows, err = ParseYAMLRows(data)
	case ".csv":
		rows, err = ParseCSVRows(bytes.NewReader(data), opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRows, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("rows %q: %w", path, err)
	}
	return rows, nil
}

// ParseJSONRows decodes an array of objects. Numbers become float64.
func ParseJSONRows(data []byte) ([]table.Row, error) {
	var rows []table.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse JSON rows: %w", err)
	}
	return rows, nil
}

// ParseYAMLRows decodes a sequence of mappings. Values tagged as
// timestamps, explicitly or by resolution, decode to time.Time.
func ParseYAMLRows(data []byte) ([]table.Row, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML rows: %w", err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, errors.New("YAML rows must be a single document")
	}

	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("YAML rows must be a sequence, line %d", seq.Line)
	}

	rows := make([]table.Row, 0, len(seq.Content))
	for _, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("row at line %d is not a mapping", item.Line)
		}
		row := make(table.Row, len(item.Content)/2)
		for i := 0; i+1 < len(item.Content); i += 2 {
			key, value := item.Content[i], item.Content[i+1]
			v, err := decodeYAMLValue(value)
			if err != nil {
				return nil, fmt.Errorf("row at line %d, key %q: %w", item.Line, key.Value, err)
			}
			row[key.Value] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeYAMLValue(n *yaml.Node) (any, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!timestamp" {
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, err
		}
		return t, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseCSVRows reads a header record followed by data records. Short
// records leave the remaining fields absent.
func ParseCSVRows(r io.Reader, opts RowOptions) ([]table.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []table.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		row := make(table.Row, len(header))
		for i, name := range header {
			if i >= len(record) {
				break
			}
			row[name] = csvValue(record[i], opts)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decimalLiteral matches plain decimal numbers such as "-12", "3.5" or
// "1e6". Words like "inf" or "nan" and hex floats stay text.
var decimalLiteral = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

func csvValue(field string, opts RowOptions) any {
	if !opts.CSVNumbers || field == "" {
		return field
	}
	trimmed := strings.TrimSpace(field)
	if !decimalLiteral.MatchString(trimmed) {
		return field
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return field
}
