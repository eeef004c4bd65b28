package ziparchive

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

func TestParse_RoundTrip(t *testing.T) {
	files := sampleFiles()
	buf, err := Assemble(files)
	if err != nil {
		t.Fatalf("Assemble() failed: %v", err)
	}

	a, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	entries := a.Entries()
	if len(entries) != len(files) {
		t.Fatalf("Parse() returned %d entries, want %d", len(entries), len(files))
	}
	for i, e := range entries {
		if e.Name() != files[i].Name {
			t.Errorf("entry %d name = %q, want %q", i, e.Name(), files[i].Name)
		}
		if !bytes.Equal(e.Data(), files[i].Data) {
			t.Errorf("entry %q data mismatch", e.Name())
		}
		if e.CRC32() != Checksum(files[i].Data) {
			t.Errorf("entry %q crc = 0x%08x", e.Name(), e.CRC32())
		}
	}

	if !bytes.Equal(a.Bytes(), buf) {
		t.Error("re-encoding the parsed archive did not reproduce the input")
	}
}

func TestParse_StandardWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range sampleFiles() {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Store})
		if err != nil {
			t.Fatalf("CreateHeader() failed: %v", err)
		}
		if _, err := w.Write(f.Data); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}
	}
	if err := zw.SetComment("made elsewhere"); err != nil {
		t.Fatalf("SetComment() failed: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	a, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(a.Entries()) != len(sampleFiles()) {
		t.Errorf("Parse() returned %d entries, want %d", len(a.Entries()), len(sampleFiles()))
	}
}

func TestParse_DetectsCorruption(t *testing.T) {
	buf, err := Assemble(sampleFiles())
	if err != nil {
		t.Fatalf("Assemble() failed: %v", err)
	}

	t.Run("flipped data byte", func(t *testing.T) {
		corrupt := bytes.Clone(buf)
		// First entry data starts after its header and name.
		corrupt[30+len("[Content_Types].xml")] ^= 0xFF
		if _, err := Parse(corrupt); !errors.Is(err, ErrChecksum) {
			t.Errorf("Parse() error = %v, want ErrChecksum", err)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		if _, err := Parse(buf[:len(buf)-1]); !errors.Is(err, ErrFormat) {
			t.Errorf("Parse() error = %v, want ErrFormat", err)
		}
	})

	t.Run("too short", func(t *testing.T) {
		if _, err := Parse([]byte("PK")); !errors.Is(err, ErrFormat) {
			t.Errorf("Parse() error = %v, want ErrFormat", err)
		}
	})
}
