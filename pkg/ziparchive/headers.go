package ziparchive

import (
	"encoding/binary"
	"fmt"
)

// Record signatures and fixed sizes.
const (
	LocalFileHeaderSignature       = 0x04034b50
	CentralDirectorySignature      = 0x02014b50
	EndOfCentralDirectorySignature = 0x06054b50

	LocalFileHeaderSize        = 30
	CentralDirectoryHeaderSize = 46
	EndOfCentralDirectorySize  = 22
)

const (
	// versionNeeded is 2.0, the minimum for plain stored entries.
	versionNeeded = 20

	// versionMadeBy is Unix (high byte 3) with APPNOTE version 2.0.
	versionMadeBy = 0x0314

	// methodStore means data is stored verbatim.
	methodStore = 0

	// flagDataDescriptor marks sizes and CRC as following the data.
	flagDataDescriptor = 0x8
)

// LocalFileHeader precedes the file name and data of every entry.
type LocalFileHeader struct {
	VersionNeeded     uint16
	Flags             uint16
	CompressionMethod uint16
	LastModTime       uint16
	LastModDate       uint16
	CRC32             uint32
	CompressedSize    uint32
	UncompressedSize  uint32
	FilenameLength    uint16
	ExtraFieldLength  uint16
}

// AppendBinary appends the 30-byte encoding of h to b.
func (h LocalFileHeader) AppendBinary(b []byte) []byte {
	le := binary.LittleEndian
	b = le.AppendUint32(b, LocalFileHeaderSignature)
	b = le.AppendUint16(b, h.VersionNeeded)
	b = le.AppendUint16(b, h.Flags)
	b = le.AppendUint16(b, h.CompressionMethod)
	b = le.AppendUint16(b, h.LastModTime)
	b = le.AppendUint16(b, h.LastModDate)
	b = le.AppendUint32(b, h.CRC32)
	b = le.AppendUint32(b, h.CompressedSize)
	b = le.AppendUint32(b, h.UncompressedSize)
	b = le.AppendUint16(b, h.FilenameLength)
	b = le.AppendUint16(b, h.ExtraFieldLength)
	return b
}

func decodeLocalFileHeader(b []byte) (LocalFileHeader, error) {
	var h LocalFileHeader
	if len(b) < LocalFileHeaderSize {
		return h, fmt.Errorf("%w: short local file header", ErrFormat)
	}
	le := binary.LittleEndian
	if sig := le.Uint32(b[0:]); sig != LocalFileHeaderSignature {
		return h, fmt.Errorf("%w: local file header signature 0x%08x", ErrFormat, sig)
	}
	h.VersionNeeded = le.Uint16(b[4:])
	h.Flags = le.Uint16(b[6:])
	h.CompressionMethod = le.Uint16(b[8:])
	h.LastModTime = le.Uint16(b[10:])
	h.LastModDate = le.Uint16(b[12:])
	h.CRC32 = le.Uint32(b[14:])
	h.CompressedSize = le.Uint32(b[18:])
	h.UncompressedSize = le.Uint32(b[22:])
	h.FilenameLength = le.Uint16(b[26:])
	h.ExtraFieldLength = le.Uint16(b[28:])
	return h, nil
}

// CentralDirectoryHeader describes one entry in the central directory.
type CentralDirectoryHeader struct {
	VersionMadeBy      uint16
	VersionNeeded      uint16
	Flags              uint16
	CompressionMethod  uint16
	LastModTime        uint16
	LastModDate        uint16
	CRC32              uint32
	CompressedSize     uint32
	UncompressedSize   uint32
	FilenameLength     uint16
	ExtraFieldLength   uint16
	CommentLength      uint16
	DiskNumberStart    uint16
	InternalAttributes uint16
	ExternalAttributes uint32
	LocalHeaderOffset  uint32
}

// AppendBinary appends the 46-byte encoding of h to b.
func (h CentralDirectoryHeader) AppendBinary(b []byte) []byte {
	le := binary.LittleEndian
	b = le.AppendUint32(b, CentralDirectorySignature)
	b = le.AppendUint16(b, h.VersionMadeBy)
	b = le.AppendUint16(b, h.VersionNeeded)
	b = le.AppendUint16(b, h.Flags)
	b = le.AppendUint16(b, h.CompressionMethod)
	b = le.AppendUint16(b, h.LastModTime)
	b = le.AppendUint16(b, h.LastModDate)
	b = le.AppendUint32(b, h.CRC32)
	b = le.AppendUint32(b, h.CompressedSize)
	b = le.AppendUint32(b, h.UncompressedSize)
	b = le.AppendUint16(b, h.FilenameLength)
	b = le.AppendUint16(b, h.ExtraFieldLength)
	b = le.AppendUint16(b, h.CommentLength)
	b = le.AppendUint16(b, h.DiskNumberStart)
	b = le.AppendUint16(b, h.InternalAttributes)
	b = le.AppendUint32(b, h.ExternalAttributes)
	b = le.AppendUint32(b, h.LocalHeaderOffset)
	return b
}

func decodeCentralDirectoryHeader(b []byte) (CentralDirectoryHeader, error) {
	var h CentralDirectoryHeader
	if len(b) < CentralDirectoryHeaderSize {
		return h, fmt.Errorf("%w: short central directory header", ErrFormat)
	}
	le := binary.LittleEndian
	if sig := le.Uint32(b[0:]); sig != CentralDirectorySignature {
		return h, fmt.Errorf("%w: central directory signature 0x%08x", ErrFormat, sig)
	}
	h.VersionMadeBy = le.Uint16(b[4:])
	h.VersionNeeded = le.Uint16(b[6:])
	h.Flags = le.Uint16(b[8:])
	h.CompressionMethod = le.Uint16(b[10:])
	h.LastModTime = le.Uint16(b[12:])
	h.LastModDate = le.Uint16(b[14:])
	h.CRC32 = le.Uint32(b[16:])
	h.CompressedSize = le.Uint32(b[20:])
	h.UncompressedSize = le.Uint32(b[24:])
	h.FilenameLength = le.Uint16(b[28:])
	h.ExtraFieldLength = le.Uint16(b[30:])
	h.CommentLength = le.Uint16(b[32:])
	h.DiskNumberStart = le.Uint16(b[34:])
	h.InternalAttributes = le.Uint16(b[36:])
	h.ExternalAttributes = le.Uint32(b[38:])
	h.LocalHeaderOffset = le.Uint32(b[42:])
	return h, nil
}

// EndOfCentralDirectory is the trailing record of the archive.
type EndOfCentralDirectory struct {
	DiskNumber       uint16
	DiskWithCDStart  uint16
	EntriesOnDisk    uint16
	TotalEntries     uint16
	CentralDirSize   uint32
	CentralDirOffset uint32
	CommentLength    uint16
}

// AppendBinary appends the 22-byte encoding of r to b.
func (r EndOfCentralDirectory) AppendBinary(b []byte) []byte {
	le := binary.LittleEndian
	b = le.AppendUint32(b, EndOfCentralDirectorySignature)
	b = le.AppendUint16(b, r.DiskNumber)
	b = le.AppendUint16(b, r.DiskWithCDStart)
	b = le.AppendUint16(b, r.EntriesOnDisk)
	b = le.AppendUint16(b, r.TotalEntries)
	b = le.AppendUint32(b, r.CentralDirSize)
	b = le.AppendUint32(b, r.CentralDirOffset)
	b = le.AppendUint16(b, r.CommentLength)
	return b
}

func decodeEndOfCentralDirectory(b []byte) (EndOfCentralDirectory, error) {
	var r EndOfCentralDirectory
	if len(b) < EndOfCentralDirectorySize {
		return r, fmt.Errorf("%w: short end of central directory record", ErrFormat)
	}
	le := binary.LittleEndian
	if sig := le.Uint32(b[0:]); sig != EndOfCentralDirectorySignature {
		return r, fmt.Errorf("%w: end of central directory signature 0x%08x", ErrFormat, sig)
	}
	r.DiskNumber = le.Uint16(b[4:])
	r.DiskWithCDStart = le.Uint16(b[6:])
	r.EntriesOnDisk = le.Uint16(b[8:])
	r.TotalEntries = le.Uint16(b[10:])
	r.CentralDirSize = le.Uint32(b[12:])
	r.CentralDirOffset = le.Uint32(b[16:])
	r.CommentLength = le.Uint16(b[20:])
	return r, nil
}
