package xlsx

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestBuildWorkbook_EscapesName(t *testing.T) {
	got := string(BuildWorkbook("R&D"))
	if !strings.Contains(got, `<sheet name="R&amp;D" sheetId="1" r:id="rId1"/>`) {
		t.Errorf("workbook sheet element wrong:\n%s", got)
	}
}

func TestBuildWorkbookRels(t *testing.T) {
	got := string(BuildWorkbookRels())
	for _, want := range []string{
		`Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"`,
		`Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("workbook rels missing %s", want)
		}
	}
}

func TestBuildContentTypes(t *testing.T) {
	got := string(BuildContentTypes())
	for _, want := range []string{
		`<Default Extension="rels"`,
		`<Default Extension="xml"`,
		`PartName="/xl/workbook.xml"`,
		`PartName="/xl/worksheets/sheet1.xml"`,
		`PartName="/xl/styles.xml"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("content types missing %s", want)
		}
	}
}

func TestBuildStyles_Counts(t *testing.T) {
	var styles struct {
		Fonts   struct{ Count int `xml:"count,attr"` } `xml:"fonts"`
		Fills   struct{ Count int `xml:"count,attr"` } `xml:"fills"`
		Borders struct{ Count int `xml:"count,attr"` } `xml:"borders"`
		Cells   struct{ Count int `xml:"count,attr"` } `xml:"cellStyles"`
	}
	if err := xml.Unmarshal(BuildStyles(), &styles); err != nil {
		t.Fatalf("styles.xml is not well-formed: %v", err)
	}
	if styles.Fonts.Count != 1 || styles.Fills.Count != 1 || styles.Borders.Count != 1 || styles.Cells.Count != 1 {
		t.Errorf("unexpected counts: %+v", styles)
	}
}

func TestFixedPartsWellFormed(t *testing.T) {
	parts := map[string][]byte{
		"workbook":      BuildWorkbook("Sheet1"),
		"workbook rels": BuildWorkbookRels(),
		"root rels":     BuildRootRels(),
		"content types": BuildContentTypes(),
		"styles":        BuildStyles(),
	}
	for name, data := range parts {
		var v struct{}
		if err := xml.Unmarshal(data, &v); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
