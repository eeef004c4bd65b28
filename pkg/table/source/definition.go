package source

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
	"text/template/parse"

	"gopkg.in/yaml.v3"

	"mercator-hq/tabula/pkg/table"
)

// Definition describes a sheet independently of its rows.
type Definition struct {
	SheetName string             `yaml:"sheet_name"`
	Columns   []ColumnDefinition `yaml:"columns"`
}

// ColumnDefinition is one column of a Definition.
type ColumnDefinition struct {
	Header   string `yaml:"header"`
	Field    string `yaml:"field,omitempty"`
	Template string `yaml:"template,omitempty"`
}

// LoadDefinition reads and parses a definition file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %q: %w", path, err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("definition %q: %w", path, err)
	}
	return def, nil
}

// ParseDefinition parses a YAML definition and checks that every column
// sets exactly one of field and template.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate reports the first malformed column.
func (d *Definition) Validate() error {
	if len(d.Columns) == 0 {
		return table.NewValidationError("columns", "at least one column is required")
	}
	for i, col := range d.Columns {
		field := fmt.Sprintf("columns[%d]", i)
		hasField := col.Field != ""
		hasTemplate := col.Template != ""
		if hasField == hasTemplate {
			return table.NewValidationError(field,
				fmt.Sprintf("column %q must set exactly one of field and template", col.Header))
		}
		if hasTemplate {
			if _, err := parseTemplate(col); err != nil {
				return table.NewValidationError(field, err.Error())
			}
		}
	}
	return nil
}

// TableColumns compiles the definition into table columns.
func (d *Definition) TableColumns() ([]table.Column, error) {
	columns := make([]table.Column, 0, len(d.Columns))
	for i, col := range d.Columns {
		if col.Field != "" {
			columns = append(columns, table.Field(col.Header, col.Field))
			continue
		}
		tmpl, err := parseTemplate(col)
		if err != nil {
			return nil, table.NewValidationError(fmt.Sprintf("columns[%d]", i), err.Error())
		}
		columns = append(columns, table.Compute(col.Header, renderer(tmpl)))
	}
	return columns, nil
}

// Sheet combines the definition with rows. An empty name falls back to
// defaultName.
func (d *Definition) Sheet(rows []table.Row, defaultName string) (table.Sheet, error) {
	columns, err := d.TableColumns()
	if err != nil {
		return table.Sheet{}, err
	}
	name := d.SheetName
	if name == "" {
		name = defaultName
	}
	return table.Sheet{Name: name, Columns: columns, Rows: rows}, nil
}

func parseTemplate(col ColumnDefinition) (*template.Template, error) {
	return template.New(col.Header).Option("missingkey=default").Parse(col.Template)
}

// renderer turns a template into a computed accessor. Top-level fields the
// template references that are missing or nil render as empty text.
// Execution errors produce an absent cell.
func renderer(tmpl *template.Template) func(table.Row) any {
	fields := map[string]bool{}
	if tmpl.Tree != nil {
		collectFields(tmpl.Tree.Root, fields)
	}

	return func(row table.Row) any {
		data := make(map[string]any, len(row)+len(fields))
		for k, v := range row {
			data[k] = v
		}
		for name := range fields {
			if data[name] == nil {
				data[name] = ""
			}
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil
		}
		return buf.String()
	}
}

// collectFields records the first identifier of every field reference
// (".name" in "{{.name.first}}") under node.
func collectFields(node parse.Node, fields map[string]bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			collectFields(child, fields)
		}
	case *parse.ActionNode:
		collectFields(n.Pipe, fields)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			collectFields(cmd, fields)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			collectFields(arg, fields)
		}
	case *parse.ChainNode:
		collectFields(n.Node, fields)
	case *parse.FieldNode:
		if len(n.Ident) > 0 {
			fields[n.Ident[0]] = true
		}
	case *parse.IfNode:
		collectBranch(&n.BranchNode, fields)
	case *parse.RangeNode:
		collectBranch(&n.BranchNode, fields)
	case *parse.WithNode:
		collectBranch(&n.BranchNode, fields)
	case *parse.TemplateNode:
		collectFields(n.Pipe, fields)
	}
}

func collectBranch(b *parse.BranchNode, fields map[string]bool) {
	collectFields(b.Pipe, fields)
	collectFields(b.List, fields)
	collectFields(b.ElseList, fields)
}
