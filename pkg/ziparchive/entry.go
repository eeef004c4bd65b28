package ziparchive

import (
	"fmt"
	"math"
	"strings"
)

// File is a named blob to be placed in an archive.
type File struct {
	// Name is the entry path inside the archive, using forward slashes.
	Name string

	// Data is stored verbatim.
	Data []byte
}

// Entry is one encoded archive member. It is immutable once built by
// NewEntry: the CRC is computed exactly once.
type Entry struct {
	name              string
	data              []byte
	crc32             uint32
	size              uint32
	localHeaderOffset uint32
}

// NewEntry encodes name and data as an entry whose local header starts at
// offset bytes from the beginning of the archive.
func NewEntry(name string, data []byte, offset uint32) (*Entry, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: entry %q is %d bytes", ErrTooLarge, name, len(data))
	}
	return &Entry{
		name:              name,
		data:              data,
		crc32:             Checksum(data),
		size:              uint32(len(data)),
		localHeaderOffset: offset,
	}, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if len(name) > math.MaxUint16 {
		return fmt.Errorf("%w: name is %d bytes", ErrInvalidName, len(name))
	}
	if strings.Contains(name, "\\") {
		return fmt.Errorf("%w: %q contains a backslash", ErrInvalidName, name)
	}
	if strings.HasPrefix(name, "/") {
		return fmt.Errorf("%w: %q is absolute", ErrInvalidName, name)
	}
	return nil
}

// Name returns the entry path.
func (e *Entry) Name() string { return e.name }

// Data returns the stored bytes. Callers must not modify them.
func (e *Entry) Data() []byte { return e.data }

// CRC32 returns the checksum of the entry data.
func (e *Entry) CRC32() uint32 { return e.crc32 }

// CompressedSize equals UncompressedSize in store mode.
func (e *Entry) CompressedSize() uint32 { return e.size }

// UncompressedSize returns the length of the entry data.
func (e *Entry) UncompressedSize() uint32 { return e.size }

// LocalHeaderOffset returns the offset of the local header from the start
// of the archive.
func (e *Entry) LocalHeaderOffset() uint32 { return e.localHeaderOffset }

// LocalBlockSize is the number of bytes the entry occupies before the
// central directory: header, name and data.
func (e *Entry) LocalBlockSize() uint64 {
	return uint64(LocalFileHeaderSize) + uint64(len(e.name)) + uint64(len(e.data))
}

// CentralBlockSize is the number of bytes the entry occupies in the central
// directory: header and name.
func (e *Entry) CentralBlockSize() uint64 {
	return uint64(CentralDirectoryHeaderSize) + uint64(len(e.name))
}

// LocalHeader returns the local file header for the entry.
func (e *Entry) LocalHeader() LocalFileHeader {
	return LocalFileHeader{
		VersionNeeded:     versionNeeded,
		CompressionMethod: methodStore,
		CRC32:             e.crc32,
		CompressedSize:    e.size,
		UncompressedSize:  e.size,
		FilenameLength:    uint16(len(e.name)),
	}
}

// CentralHeader returns the central directory header for the entry.
func (e *Entry) CentralHeader() CentralDirectoryHeader {
	return CentralDirectoryHeader{
		VersionMadeBy:     versionMadeBy,
		VersionNeeded:     versionNeeded,
		CompressionMethod: methodStore,
		CRC32:             e.crc32,
		CompressedSize:    e.size,
		UncompressedSize:  e.size,
		FilenameLength:    uint16(len(e.name)),
		LocalHeaderOffset: e.localHeaderOffset,
	}
}

// AppendLocal appends the local header, file name and data to b.
func (e *Entry) AppendLocal(b []byte) []byte {
	b = e.LocalHeader().AppendBinary(b)
	b = append(b, e.name...)
	return append(b, e.data...)
}

// AppendCentral appends the central directory header and file name to b.
// Data is not repeated in the central directory.
func (e *Entry) AppendCentral(b []byte) []byte {
	b = e.CentralHeader().AppendBinary(b)
	return append(b, e.name...)
}
