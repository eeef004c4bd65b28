package xlsx

import "strconv"

// ColumnLetter converts a 0-based column index into its spreadsheet label
// using bijective base-26: 0 is "A", 25 is "Z", 26 is "AA", 702 is "AAA".
// Negative indexes are treated as 0.
func ColumnLetter(index int) string {
	if index < 0 {
		index = 0
	}

	var buf [16]byte
	pos := len(buf)
	for dividend := index + 1; dividend > 0; {
		modulo := (dividend - 1) % 26
		pos--
		buf[pos] = byte('A' + modulo)
		dividend = (dividend - modulo) / 26
	}
	return string(buf[pos:])
}

// CellRef returns the A1-style reference for a 0-based column and a 1-based
// row.
func CellRef(column, row int) string {
	return ColumnLetter(column) + strconv.Itoa(row)
}
