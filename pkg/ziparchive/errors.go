package ziparchive

import "errors"

var (
	// ErrTooLarge is returned when an entry or the archive exceeds the
	// limits of the classic ZIP format.
	ErrTooLarge = errors.New("ziparchive: exceeds classic zip limits")

	// ErrInvalidName is returned for empty or non-portable entry names.
	ErrInvalidName = errors.New("ziparchive: invalid entry name")

	// ErrFormat is returned by Parse when the input is not a well-formed
	// store-mode archive.
	ErrFormat = errors.New("ziparchive: malformed archive")

	// ErrChecksum is returned by Parse when an entry's data does not match
	// its recorded CRC-32.
	ErrChecksum = errors.New("ziparchive: checksum mismatch")
)
