package ziparchive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Parse decodes a store-mode archive and verifies each entry's CRC-32.
// The returned entries alias buf.
func Parse(buf []byte) (*Archive, error) {
	eocdAt, err := findEndRecord(buf)
	if err != nil {
		return nil, err
	}
	end, err := decodeEndOfCentralDirectory(buf[eocdAt:])
	if err != nil {
		return nil, err
	}
	if end.DiskNumber != 0 || end.DiskWithCDStart != 0 || end.EntriesOnDisk != end.TotalEntries {
		return nil, fmt.Errorf("%w: multi-disk archives are not supported", ErrFormat)
	}

	cdStart := uint64(end.CentralDirOffset)
	cdEnd := cdStart + uint64(end.CentralDirSize)
	if cdEnd > uint64(eocdAt) {
		return nil, fmt.Errorf("%w: central directory [%d,%d) overlaps end record at %d", ErrFormat, cdStart, cdEnd, eocdAt)
	}

	a := &Archive{
		offset:      cdStart,
		centralSize: uint64(end.CentralDirSize),
	}

	pos := cdStart
	for i := 0; i < int(end.TotalEntries); i++ {
		ch, err := decodeCentralDirectoryHeader(buf[pos:cdEnd])
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		nameStart := pos + CentralDirectoryHeaderSize
		nameEnd := nameStart + uint64(ch.FilenameLength)
		next := nameEnd + uint64(ch.ExtraFieldLength) + uint64(ch.CommentLength)
		if next > cdEnd {
			return nil, fmt.Errorf("%w: entry %d runs past the central directory", ErrFormat, i)
		}
		name := string(buf[nameStart:nameEnd])

		entry, err := parseLocal(buf, ch, name, cdStart)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		a.entries = append(a.entries, entry)
		pos = next
	}
	if pos != cdEnd {
		return nil, fmt.Errorf("%w: %d trailing bytes in central directory", ErrFormat, cdEnd-pos)
	}

	return a, nil
}

// parseLocal reads the local block referenced by a central directory header.
func parseLocal(buf []byte, ch CentralDirectoryHeader, name string, limit uint64) (*Entry, error) {
	if ch.CompressionMethod != methodStore {
		return nil, fmt.Errorf("%w: compression method %d", ErrFormat, ch.CompressionMethod)
	}
	if ch.CompressedSize != ch.UncompressedSize {
		return nil, fmt.Errorf("%w: stored sizes differ (%d != %d)", ErrFormat, ch.CompressedSize, ch.UncompressedSize)
	}

	at := uint64(ch.LocalHeaderOffset)
	if at+LocalFileHeaderSize > limit {
		return nil, fmt.Errorf("%w: local header offset %d out of range", ErrFormat, at)
	}
	lh, err := decodeLocalFileHeader(buf[at:limit])
	if err != nil {
		return nil, err
	}
	// With a trailing data descriptor the local header carries zeros.
	if ch.Flags&flagDataDescriptor == 0 {
		if lh.CRC32 != ch.CRC32 || lh.UncompressedSize != ch.UncompressedSize {
			return nil, fmt.Errorf("%w: local and central headers disagree", ErrFormat)
		}
	}

	nameStart := at + LocalFileHeaderSize
	dataStart := nameStart + uint64(lh.FilenameLength) + uint64(lh.ExtraFieldLength)
	dataEnd := dataStart + uint64(ch.UncompressedSize)
	if dataEnd > limit {
		return nil, fmt.Errorf("%w: data runs past the central directory", ErrFormat)
	}
	if got := string(buf[nameStart : nameStart+uint64(lh.FilenameLength)]); got != name {
		return nil, fmt.Errorf("%w: local name %q", ErrFormat, got)
	}

	data := buf[dataStart:dataEnd]
	if sum := Checksum(data); sum != ch.CRC32 {
		return nil, fmt.Errorf("%w: got 0x%08x, recorded 0x%08x", ErrChecksum, sum, ch.CRC32)
	}

	return &Entry{
		name:              name,
		data:              data,
		crc32:             ch.CRC32,
		size:              ch.UncompressedSize,
		localHeaderOffset: ch.LocalHeaderOffset,
	}, nil
}

// findEndRecord locates the end of central directory record, allowing for a
// trailing archive comment.
func findEndRecord(buf []byte) (int, error) {
	if len(buf) < EndOfCentralDirectorySize {
		return 0, fmt.Errorf("%w: %d bytes is shorter than an end record", ErrFormat, len(buf))
	}

	sig := binary.LittleEndian.AppendUint32(nil, EndOfCentralDirectorySignature)
	lowest := len(buf) - EndOfCentralDirectorySize - math.MaxUint16
	if lowest < 0 {
		lowest = 0
	}
	for at := len(buf) - EndOfCentralDirectorySize; at >= lowest; at-- {
		if !bytes.Equal(buf[at:at+4], sig) {
			continue
		}
		commentLen := int(binary.LittleEndian.Uint16(buf[at+20:]))
		if at+EndOfCentralDirectorySize+commentLen == len(buf) {
			return at, nil
		}
	}
	return 0, fmt.Errorf("%w: end of central directory record not found", ErrFormat)
}
