package xlsx

import (
	"math"
	"strings"
	"testing"
	"time"

	"mercator-hq/tabula/pkg/table"
)

func TestBuildWorksheet_HeaderAndRows(t *testing.T) {
	columns := []table.Column{table.Field("Name", "name")}
	rows := []table.Row{{"name": "Ana"}}

	got := string(BuildWorksheet(columns, rows))

	for _, want := range []string{
		`<dimension ref="A1:A2"/>`,
		`<row r="1"><c r="A1" t="inlineStr"><is><t>Name</t></is></c></row>`,
		`<row r="2"><c r="A2" t="inlineStr"><is><t>Ana</t></is></c></row>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("worksheet missing %s\n%s", want, got)
		}
	}
	if !strings.HasPrefix(got, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`) {
		t.Error("worksheet does not start with an XML declaration")
	}
}

func TestBuildWorksheet_Cells(t *testing.T) {
	date := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"integer", 42, `<c r="A2" t="n"><v>42</v></c>`},
		{"float", 1.5, `<c r="A2" t="n"><v>1.5</v></c>`},
		{"negative", -0.25, `<c r="A2" t="n"><v>-0.25</v></c>`},
		{"string", "x < y", `<c r="A2" t="inlineStr"><is><t>x &lt; y</t></is></c>`},
		{"bool", true, `<c r="A2" t="inlineStr"><is><t>true</t></is></c>`},
		{"date", date, `<c r="A2" t="inlineStr"><is><t>2024-03-01T12:30:00.000Z</t></is></c>`},
		{"nan", math.NaN(), `<c r="A2" t="inlineStr"><is><t>NaN</t></is></c>`},
		{"infinity", math.Inf(1), `<c r="A2" t="inlineStr"><is><t>Infinity</t></is></c>`},
		{"nested", map[string]any{"a": 1}, `<c r="A2" t="inlineStr"><is><t>{&quot;a&quot;:1}</t></is></c>`},
		{"leading space", " pad", `<c r="A2" t="inlineStr"><is><t xml:space="preserve"> pad</t></is></c>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(BuildWorksheet(
				[]table.Column{table.Field("V", "v")},
				[]table.Row{{"v": tt.value}},
			))
			if !strings.Contains(got, tt.want) {
				t.Errorf("worksheet missing %s\n%s", tt.want, got)
			}
		})
	}
}

func TestBuildWorksheet_SparseRows(t *testing.T) {
	columns := []table.Column{
		table.Field("A", "a"),
		table.Field("B", "b"),
		table.Field("C", "c"),
	}
	rows := []table.Row{
		{"a": "x", "b": nil, "c": 3},
		{"b": ""},
	}

	got := string(BuildWorksheet(columns, rows))

	if !strings.Contains(got, `<row r="2"><c r="A2" t="inlineStr"><is><t>x</t></is></c><c r="C2" t="n"><v>3</v></c></row>`) {
		t.Errorf("row 2 not sparse:\n%s", got)
	}
	if !strings.Contains(got, `<row r="3"></row>`) {
		t.Errorf("row 3 should have no cells:\n%s", got)
	}
	if strings.Contains(got, `r="B2"`) || strings.Contains(got, `r="B3"`) {
		t.Errorf("empty values produced cells:\n%s", got)
	}
	if !strings.Contains(got, `<dimension ref="A1:C3"/>`) {
		t.Errorf("wrong dimension:\n%s", got)
	}
}

func TestBuildWorksheet_ComputedColumn(t *testing.T) {
	columns := []table.Column{
		table.Compute("Full", func(r table.Row) any {
			return r["first"].(string) + " " + r["last"].(string)
		}),
	}
	rows := []table.Row{{"first": "Ada", "last": "Lovelace"}}

	got := string(BuildWorksheet(columns, rows))
	if !strings.Contains(got, `<c r="A2" t="inlineStr"><is><t>Ada Lovelace</t></is></c>`) {
		t.Errorf("computed cell missing:\n%s", got)
	}
}

func TestBuildWorksheet_HeaderOnly(t *testing.T) {
	got := string(BuildWorksheet([]table.Column{table.Field("Only", "only")}, nil))
	if !strings.Contains(got, `<dimension ref="A1:A1"/>`) {
		t.Errorf("wrong dimension:\n%s", got)
	}
	if strings.Contains(got, `<row r="2">`) {
		t.Errorf("unexpected data row:\n%s", got)
	}
}
