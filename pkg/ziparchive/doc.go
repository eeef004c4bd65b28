// Package ziparchive builds ZIP containers in store mode without compression.
//
// # Overview
//
// The package lays out every byte of the archive itself:
//
//   - A 30-byte local file header, the file name and the raw data per entry
//   - A 46-byte central directory header and the file name per entry
//   - A 22-byte end of central directory record
//
// Each entry carries a CRC-32 computed with the ISO-3309 polynomial
// (0xEDB88320) over a lookup table built once at package initialization.
//
// # Usage
//
//	data, err := ziparchive.Assemble([]ziparchive.File{
//	    {Name: "[Content_Types].xml", Data: contentTypes},
//	    {Name: "xl/workbook.xml", Data: workbook},
//	})
//	if err != nil {
//	    return err
//	}
//
// Entries are written in the order given. Names must use forward slashes.
//
// # Limits
//
// Only the classic format is produced (no ZIP64). Entries larger than
// 4 GiB, archives whose offsets overflow 32 bits and archives with more
// than 65535 entries are rejected with ErrTooLarge.
//
// # Reading Back
//
// Parse decodes an archive produced by this package (or any other store-mode
// archive without ZIP64 records) and verifies every entry CRC.
package ziparchive
