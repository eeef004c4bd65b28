package xlsx

import "strings"

// BuildWorkbook renders xl/workbook.xml declaring one sheet bound to rId1.
// sheetName must already be sanitized.
func BuildWorkbook(sheetName string) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<workbook xmlns="` + nsSpreadsheetML + `" xmlns:r="` + nsRelationships + `">`)
	b.WriteString(`<sheets><sheet name="` + xmlText(sheetName) + `" sheetId="1" r:id="rId1"/></sheets>`)
	b.WriteString(`</workbook>`)
	return []byte(b.String())
}

// BuildWorkbookRels renders xl/_rels/workbook.xml.rels: rId1 is the
// worksheet, rId2 the styles part.
func BuildWorkbookRels() []byte {
	return []byte(xmlHeader +
		`<Relationships xmlns="` + nsPackageRels + `">` +
		`<Relationship Id="rId1" Type="` + relTypeWorksheet + `" Target="worksheets/sheet1.xml"/>` +
		`<Relationship Id="rId2" Type="` + relTypeStyles + `" Target="styles.xml"/>` +
		`</Relationships>`)
}

// BuildRootRels renders _rels/.rels pointing the package at the workbook.
func BuildRootRels() []byte {
	return []byte(xmlHeader +
		`<Relationships xmlns="` + nsPackageRels + `">` +
		`<Relationship Id="rId1" Type="` + relTypeDocument + `" Target="` + WorkbookPath + `"/>` +
		`</Relationships>`)
}

// BuildContentTypes renders [Content_Types].xml with defaults for rels and
// xml and overrides for the workbook, worksheet and styles parts.
func BuildContentTypes() []byte {
	return []byte(xmlHeader +
		`<Types xmlns="` + nsContentTypes + `">` +
		`<Default Extension="rels" ContentType="` + contentTypeRels + `"/>` +
		`<Default Extension="xml" ContentType="` + contentTypeXML + `"/>` +
		`<Override PartName="/` + WorkbookPath + `" ContentType="` + contentTypeMain + `"/>` +
		`<Override PartName="/` + WorksheetPath + `" ContentType="` + contentTypeSheet + `"/>` +
		`<Override PartName="/` + StylesPath + `" ContentType="` + contentTypeStyles + `"/>` +
		`</Types>`)
}

// BuildStyles renders xl/styles.xml with one font, fill, border and cell
// format, plus the Normal cell style.
func BuildStyles() []byte {
	return []byte(xmlHeader +
		`<styleSheet xmlns="` + nsSpreadsheetML + `">` +
		`<fonts count="1"><font><sz val="11"/><name val="Calibri"/><family val="2"/></font></fonts>` +
		`<fills count="1"><fill><patternFill patternType="none"/></fill></fills>` +
		`<borders count="1"><border><left/><right/><top/><bottom/><diagonal/></border></borders>` +
		`<cellStyleXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0"/></cellStyleXfs>` +
		`<cellXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/></cellXfs>` +
		`<cellStyles count="1"><cellStyle name="Normal" xfId="0" builtinId="0"/></cellStyles>` +
		`</styleSheet>`)
}
