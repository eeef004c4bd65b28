package ziparchive

import (
	"fmt"
	"math"
)

// Archive is an ordered set of entries with exact local header offsets.
type Archive struct {
	entries []*Entry

	// offset is the running length of all local blocks written so far.
	offset uint64

	// centralSize is the running length of all central directory blocks.
	centralSize uint64
}

// NewArchive returns an empty archive.
func NewArchive() *Archive {
	return &Archive{}
}

// Add encodes a new entry at the current end of the local block area.
func (a *Archive) Add(name string, data []byte) (*Entry, error) {
	if len(a.entries) >= math.MaxUint16 {
		return nil, fmt.Errorf("%w: more than %d entries", ErrTooLarge, math.MaxUint16)
	}
	if a.offset > math.MaxUint32 {
		return nil, fmt.Errorf("%w: local header offset %d", ErrTooLarge, a.offset)
	}

	entry, err := NewEntry(name, data, uint32(a.offset))
	if err != nil {
		return nil, err
	}

	next := a.offset + entry.LocalBlockSize()
	if next > math.MaxUint32 {
		return nil, fmt.Errorf("%w: archive reaches %d bytes at %q", ErrTooLarge, next, name)
	}
	if next+a.centralSize+entry.CentralBlockSize()+EndOfCentralDirectorySize > math.MaxUint32 {
		return nil, fmt.Errorf("%w: central directory overflows at %q", ErrTooLarge, name)
	}

	a.entries = append(a.entries, entry)
	a.offset = next
	a.centralSize += entry.CentralBlockSize()
	return entry, nil
}

// Entries returns the entries in write order.
func (a *Archive) Entries() []*Entry {
	return a.entries
}

// CentralDirectoryOffset is the start of the central directory, equal to
// the total size of all local blocks.
func (a *Archive) CentralDirectoryOffset() uint32 {
	return uint32(a.offset)
}

// CentralDirectorySize is the total size of all central directory blocks.
func (a *Archive) CentralDirectorySize() uint32 {
	return uint32(a.centralSize)
}

// Size is the length of the buffer Bytes returns.
func (a *Archive) Size() int {
	return int(a.offset + a.centralSize + EndOfCentralDirectorySize)
}

// EndRecord returns the end of central directory record for the archive.
func (a *Archive) EndRecord() EndOfCentralDirectory {
	count := uint16(len(a.entries))
	return EndOfCentralDirectory{
		EntriesOnDisk:    count,
		TotalEntries:     count,
		CentralDirSize:   a.CentralDirectorySize(),
		CentralDirOffset: a.CentralDirectoryOffset(),
	}
}

// Bytes lays out the complete archive: local blocks, central directory and
// the end record.
func (a *Archive) Bytes() []byte {
	buf := make([]byte, 0, a.Size())
	for _, e := range a.entries {
		buf = e.AppendLocal(buf)
	}
	for _, e := range a.entries {
		buf = e.AppendCentral(buf)
	}
	return a.EndRecord().AppendBinary(buf)
}

// Assemble writes files in order into a store-mode archive.
func Assemble(files []File) ([]byte, error) {
	a := NewArchive()
	for _, f := range files {
		if _, err := a.Add(f.Name, f.Data); err != nil {
			return nil, err
		}
	}
	return a.Bytes(), nil
}
