package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"mercator-hq/tabula/pkg/cli"
)

const testDefinition = `sheet_name: Patients
columns:
  - header: Name
    field: name
  - header: Age
    field: age
  - header: Summary
    template: "{{.name}} ({{.age}})"
`

const testRows = `[
  {"name": "Ana", "age": 34},
  {"name": "Bob", "age": 51}
]`

// fixture writes the sheet inputs and a config with SQLite storage.
type fixture struct {
	dir        string
	definition string
	rows       string
	config     string
}

func newFixture(t *testing.T, extraConfig string) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:        dir,
		definition: filepath.Join(dir, "sheet.yaml"),
		rows:       filepath.Join(dir, "rows.json"),
		config:     filepath.Join(dir, "tabula.yaml"),
	}

	cfg := `storage:
  enabled: false
  backend: sqlite
  sqlite:
    path: ` + filepath.Join(dir, "documents.db") + `
    driver: sqlite
telemetry:
  logging:
    level: error
` + extraConfig

	for path, content := range map[string]string{
		f.definition: testDefinition,
		f.rows:       testRows,
		f.config:     cfg,
	} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

// run executes the root command with fresh flag values.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cfgFile, verbose = "", false
	exportFlags.definition, exportFlags.rows, exportFlags.format = "", "", ""
	exportFlags.sheetName, exportFlags.output, exportFlags.store = "", "", false
	watchOutput = ""
	documentsFlags.format, documentsFlags.since, documentsFlags.until = "", "", ""
	documentsFlags.limit, documentsFlags.offset = 100, 0
	documentsFlags.outputFormat, documentsFlags.output, documentsFlags.verify = "text", "", false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestExport_XLSXFile(t *testing.T) {
	f := newFixture(t, "")
	output := filepath.Join(f.dir, "patients.xlsx")

	if _, stderr, err := run(t, "export", "-c", f.config, "-d", f.definition, "-r", f.rows, "-o", output); err != nil {
		t.Fatalf("export failed: %v\n%s", err, stderr)
	}

	book, err := excelize.OpenFile(output)
	if err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	defer book.Close()

	if sheets := book.GetSheetList(); len(sheets) != 1 || sheets[0] != "Patients" {
		t.Fatalf("sheets = %v, want [Patients]", sheets)
	}
	rows, err := book.GetRows("Patients")
	if err != nil {
		t.Fatalf("GetRows() failed: %v", err)
	}
	want := [][]string{
		{"Name", "Age", "Summary"},
		{"Ana", "34", "Ana (34)"},
		{"Bob", "51", "Bob (51)"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	for i := range want {
		if strings.Join(rows[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestExport_CSVStdout(t *testing.T) {
	f := newFixture(t, "")

	stdout, stderr, err := run(t, "export", "-c", f.config, "-d", f.definition, "-r", f.rows, "--format", "csv", "--sheet-name", "Other")
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, stderr)
	}

	records, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v\n%s", err, stdout)
	}
	if len(records) != 3 || records[1][2] != "Ana (34)" {
		t.Errorf("records = %v", records)
	}
}

func TestExport_UsageErrors(t *testing.T) {
	f := newFixture(t, "")

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "missing definition", args: []string{"export", "-c", f.config, "-r", f.rows}, wantCode: cli.ExitUsage},
		{name: "missing rows", args: []string{"export", "-c", f.config, "-d", f.definition}, wantCode: cli.ExitUsage},
		{name: "unknown format", args: []string{"export", "-c", f.config, "-d", f.definition, "-r", f.rows, "-f", "pdf"}, wantCode: cli.ExitValidation},
		{name: "missing config", args: []string{"export", "-c", filepath.Join(f.dir, "nope.yaml"), "-d", f.definition, "-r", f.rows}, wantCode: cli.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := cli.ExitCode(err); got != tt.wantCode {
				t.Errorf("ExitCode() = %d, want %d (%v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestExport_InvalidConfig(t *testing.T) {
	f := newFixture(t, "export:\n  default_format: pdf\n")

	_, _, err := run(t, "export", "-c", f.config, "-d", f.definition, "-r", f.rows)
	if got := cli.ExitCode(err); got != cli.ExitConfig {
		t.Errorf("ExitCode() = %d, want %d (%v)", got, cli.ExitConfig, err)
	}
}

func TestDocuments_StoreListGetPrune(t *testing.T) {
	f := newFixture(t, "retention:\n  days: 0\n  max_documents: 1\n")

	for i := 0; i < 3; i++ {
		if _, stderr, err := run(t, "export", "-c", f.config, "-d", f.definition, "-r", f.rows, "-o", filepath.Join(f.dir, "out.xlsx"), "--store"); err != nil {
			t.Fatalf("export failed: %v\n%s", err, stderr)
		}
	}

	stdout, stderr, err := run(t, "documents", "list", "-c", f.config, "--output-format", "json")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, stderr)
	}
	var docs []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Format string `json:"format"`
		SHA256 string `json:"sha256"`
	}
	if err := json.Unmarshal([]byte(stdout), &docs); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(docs) != 3 {
		t.Fatalf("listed %d documents, want 3", len(docs))
	}
	if docs[0].Name != "Patients.xlsx" || docs[0].Format != "xlsx" {
		t.Errorf("document = %+v", docs[0])
	}

	copyPath := filepath.Join(f.dir, "copy.xlsx")
	if _, stderr, err := run(t, "documents", "get", docs[0].ID, "-c", f.config, "--output", copyPath, "--verify"); err != nil {
		t.Fatalf("get failed: %v\n%s", err, stderr)
	} else if !strings.Contains(stderr, "Verified") {
		t.Errorf("stderr = %q, want a verification message", stderr)
	}
	if _, err := excelize.OpenFile(copyPath); err != nil {
		t.Errorf("retrieved copy is not a workbook: %v", err)
	}

	if _, _, err := run(t, "documents", "get", "missing-id", "-c", f.config); err == nil {
		t.Error("expected an error for a missing document")
	}

	stdout, stderr, err = run(t, "documents", "prune", "-c", f.config)
	if err != nil {
		t.Fatalf("prune failed: %v\n%s", err, stderr)
	}
	if strings.TrimSpace(stdout) != "Pruned 2 documents" {
		t.Errorf("prune output = %q", stdout)
	}

	stdout, _, err = run(t, "documents", "list", "-c", f.config, "--output-format", "csv")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 2 || records[1][0] != docs[0].ID {
		t.Errorf("after prune: %v, want only the newest document %s", records, docs[0].ID)
	}
}

func TestDocuments_ListBadTime(t *testing.T) {
	f := newFixture(t, "")

	_, _, err := run(t, "documents", "list", "-c", f.config, "--since", "yesterday")
	if got := cli.ExitCode(err); got != cli.ExitUsage {
		t.Errorf("ExitCode() = %d, want %d (%v)", got, cli.ExitUsage, err)
	}
}

func TestWriteOutput_ReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := writeOutput(path, []byte("new"), nil); err != nil {
		t.Fatalf("writeOutput() failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want %q", data, "new")
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("left %d files behind, want 1", len(entries))
	}
}

func TestValidate(t *testing.T) {
	f := newFixture(t, "")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{
			name:    "definition only",
			args:    []string{"validate", "-c", f.config, "-d", f.definition},
			wantOut: `OK: sheet "Patients", 3 columns, 0 rows, format xlsx`,
		},
		{
			name:    "with rows",
			args:    []string{"validate", "-c", f.config, "-d", f.definition, "-r", f.rows, "-f", "csv"},
			wantOut: `OK: sheet "Patients", 3 columns, 2 rows, format csv`,
		},
		{
			name:     "missing definition",
			args:     []string{"validate", "-c", f.config},
			wantCode: cli.ExitUsage,
		},
		{
			name:     "unknown format",
			args:     []string{"validate", "-c", f.config, "-d", f.definition, "-f", "pdf"},
			wantCode: cli.ExitValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, tt.args...)
			if got := cli.ExitCode(err); got != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (err: %v)", got, tt.wantCode, err)
			}
			if tt.wantOut != "" && !strings.Contains(stdout, tt.wantOut) {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantOut)
			}
		})
	}
}

func TestValidate_MaxRows(t *testing.T) {
	f := newFixture(t, "export:\n  max_rows: 1\n")

	_, _, err := run(t, "validate", "-c", f.config, "-d", f.definition, "-r", f.rows)
	if got := cli.ExitCode(err); got != cli.ExitValidation {
		t.Fatalf("exit code = %d, want %d (err: %v)", got, cli.ExitValidation, err)
	}
}

func TestCompletion(t *testing.T) {
	stdout, _, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	if !strings.Contains(stdout, "tabula") {
		t.Errorf("bash completion does not mention tabula:\n%.200s", stdout)
	}

	if _, _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh succeeded")
	}
}
