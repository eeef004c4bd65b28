package xlsx

import (
	"bytes"
	"strconv"
	"strings"

	"mercator-hq/tabula/pkg/table"
)

// XML namespaces used by the generated parts.
const (
	xmlHeader         = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	nsSpreadsheetML   = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels     = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes    = "http://schemas.openxmlformats.org/package/2006/content-types"
	relTypeDocument   = nsRelationships + "/officeDocument"
	relTypeWorksheet  = nsRelationships + "/worksheet"
	relTypeStyles     = nsRelationships + "/styles"
	contentTypeRels   = "application/vnd.openxmlformats-package.relationships+xml"
	contentTypeXML    = "application/xml"
	contentTypeMain   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	contentTypeSheet  = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	contentTypeStyles = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
)

// Dimension returns the used range for a sheet with the given number of
// columns and data rows, e.g. "A1:C4" for three columns and three rows.
func Dimension(columnCount, dataRows int) string {
	if columnCount < 1 {
		columnCount = 1
	}
	rowCount := dataRows + 1
	if rowCount < 1 {
		rowCount = 1
	}
	return "A1:" + CellRef(columnCount-1, rowCount)
}

// BuildWorksheet renders xl/worksheets/sheet1.xml: a header row followed by
// one row per data row, with absent cells left out.
func BuildWorksheet(columns []table.Column, rows []table.Row) []byte {
	letters := make([]string, len(columns))
	for i := range columns {
		letters[i] = ColumnLetter(i)
	}

	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<worksheet xmlns="` + nsSpreadsheetML + `" xmlns:r="` + nsRelationships + `">`)
	buf.WriteString(`<dimension ref="` + Dimension(len(columns), len(rows)) + `"/>`)
	buf.WriteString(`<sheetData>`)

	// Header row
	buf.WriteString(`<row r="1">`)
	for i, col := range columns {
		writeInlineString(&buf, letters[i]+"1", col.Header)
	}
	buf.WriteString(`</row>`)

	// Data rows start at spreadsheet row 2
	for i, row := range rows {
		rowNum := strconv.Itoa(i + 2)
		buf.WriteString(`<row r="` + rowNum + `">`)
		for j, col := range columns {
			writeCell(&buf, letters[j]+rowNum, col.Accessor.Resolve(row))
		}
		buf.WriteString(`</row>`)
	}

	buf.WriteString(`</sheetData></worksheet>`)
	return buf.Bytes()
}

// writeCell emits one cell, or nothing when the value is null or "".
func writeCell(buf *bytes.Buffer, ref string, v table.Value) {
	if v.IsEmpty() {
		return
	}
	if v.IsFiniteNumber() {
		buf.WriteString(`<c r="` + ref + `" t="n"><v>`)
		buf.WriteString(table.FormatNumber(v.Float()))
		buf.WriteString(`</v></c>`)
		return
	}
	writeInlineString(buf, ref, v.Text())
}

func writeInlineString(buf *bytes.Buffer, ref, text string) {
	buf.WriteString(`<c r="` + ref + `" t="inlineStr"><is>`)
	if text != strings.TrimSpace(text) {
		buf.WriteString(`<t xml:space="preserve">`)
	} else {
		buf.WriteString(`<t>`)
	}
	buf.WriteString(xmlText(text))
	buf.WriteString(`</t></is></c>`)
}
