package xlsx

import (
	"mercator-hq/tabula/pkg/table"
	"mercator-hq/tabula/pkg/ziparchive"
)

// Part names inside the package. They always use forward slashes.
const (
	ContentTypesPath = "[Content_Types].xml"
	RootRelsPath     = "_rels/.rels"
	WorkbookPath     = "xl/workbook.xml"
	WorkbookRelsPath = "xl/_rels/workbook.xml.rels"
	WorksheetPath    = "xl/worksheets/sheet1.xml"
	StylesPath       = "xl/styles.xml"
)

// ContentType is the MIME type of an .xlsx file.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Parts validates sheet and returns the six package parts in archive order.
func Parts(sheet table.Sheet) ([]ziparchive.File, error) {
	if err := sheet.Validate(); err != nil {
		return nil, err
	}

	name := SanitizeSheetName(sheet.Name)
	return []ziparchive.File{
		{Name: ContentTypesPath, Data: BuildContentTypes()},
		{Name: RootRelsPath, Data: BuildRootRels()},
		{Name: WorkbookPath, Data: BuildWorkbook(name)},
		{Name: WorkbookRelsPath, Data: BuildWorkbookRels()},
		{Name: WorksheetPath, Data: BuildWorksheet(sheet.Columns, sheet.Rows)},
		{Name: StylesPath, Data: BuildStyles()},
	}, nil
}

// Export renders sheet as a complete .xlsx file. It returns a
// *table.ValidationError, and no bytes, when sheet has no columns.
func Export(sheet table.Sheet) ([]byte, error) {
	parts, err := Parts(sheet)
	if err != nil {
		return nil, err
	}
	return ziparchive.Assemble(parts)
}
