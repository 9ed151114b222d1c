// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
)

type endRecord struct {
	Sig                  uint32
	Disk, DirDisk        uint16
	DiskEntries, Entries uint16
	DirSize, DirOffset   uint32
	CommentLen           uint16
}

func readEndRecord(t *testing.T, b []byte) endRecord {
	t.Helper()
	if len(b) < endRecordLen {
		t.Fatalf("archive is too short: %d", len(b))
	}
	var er endRecord
	if err := binary.Read(bytes.NewReader(b[len(b)-endRecordLen:]), binary.LittleEndian, &er); err != nil {
		t.Fatal(err)
	}
	if er.Sig != endRecordSig {
		t.Fatalf("end record signature: %08x", er.Sig)
	}
	return er
}

var testEntries = []Entry{
	{Path: "a.txt", Content: "Hello, World!"},
	{Path: "dir/b.xml", Content: `<?xml version="1.0"?><b>árvíztűrő</b>`},
	{Path: "empty", Content: ""},
}

func TestBuildArchive(t *testing.T) {
	b := BuildArchive(testEntries)

	er := readEndRecord(t, b)
	if int(er.Entries) != len(testEntries) || er.DiskEntries != er.Entries {
		t.Errorf("entries: %d/%d, wanted %d", er.DiskEntries, er.Entries, len(testEntries))
	}
	var offset int
	for _, e := range testEntries {
		offset += localHeaderLen + len(e.Path) + len(e.Content)
	}
	if int(er.DirOffset) != offset {
		t.Errorf("central directory offset: got %d, wanted %d", er.DirOffset, offset)
	}
	if int(er.DirOffset)+int(er.DirSize)+endRecordLen != len(b) {
		t.Errorf("central directory %d+%d does not end at the end record (%d)", er.DirOffset, er.DirSize, len(b))
	}

	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != len(testEntries) {
		t.Fatalf("got %d files, wanted %d", len(zr.File), len(testEntries))
	}
	for i, f := range zr.File {
		e := testEntries[i]
		if f.Name != e.Path {
			t.Errorf("%d. name=%q, wanted %q", i, f.Name, e.Path)
		}
		if f.Method != zip.Store {
			t.Errorf("%s: method=%d", f.Name, f.Method)
		}
		if want := crc32.ChecksumIEEE([]byte(e.Content)); f.CRC32 != want {
			t.Errorf("%s: crc=%08x, wanted %08x", f.Name, f.CRC32, want)
		}
		if f.CompressedSize64 != f.UncompressedSize64 || f.UncompressedSize64 != uint64(len(e.Content)) {
			t.Errorf("%s: size=%d/%d, wanted %d", f.Name, f.CompressedSize64, f.UncompressedSize64, len(e.Content))
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("%s: %+v", f.Name, err)
		}
		if string(got) != e.Content {
			t.Errorf("%s: got %q, wanted %q", f.Name, got, e.Content)
		}
	}
}

func TestBuildArchiveHeaders(t *testing.T) {
	b := BuildArchive(testEntries[:1])
	e := testEntries[0]
	// signature, version needed, flags, method, time, date
	want := []byte{0x50, 0x4b, 0x03, 0x04, 20, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.HasPrefix(b, want) {
		t.Fatalf("local header: got % x, wanted % x", b[:len(want)], want)
	}
	if got := binary.LittleEndian.Uint32(b[14:]); got != CRC32([]byte(e.Content)) {
		t.Errorf("local crc: %08x", got)
	}
	if got := string(b[localHeaderLen : localHeaderLen+len(e.Path)]); got != e.Path {
		t.Errorf("local name: %q", got)
	}

	dir := b[localHeaderLen+len(e.Path)+len(e.Content):]
	if got := binary.LittleEndian.Uint32(dir); got != centralHeaderSig {
		t.Fatalf("central header signature: %08x", got)
	}
	if made, needed := binary.LittleEndian.Uint16(dir[4:]), binary.LittleEndian.Uint16(dir[6:]); made != 20 || needed != 20 {
		t.Errorf("versions: %d/%d", made, needed)
	}
	if got := binary.LittleEndian.Uint32(dir[16:]); got != CRC32([]byte(e.Content)) {
		t.Errorf("central crc: %08x", got)
	}
	if got := binary.LittleEndian.Uint32(dir[42:]); got != 0 {
		t.Errorf("local header offset: %d", got)
	}
	if got := len(dir); got != centralHeaderLen+len(e.Path)+endRecordLen {
		t.Errorf("trailing data: %d bytes after the last file", got)
	}
}

func TestBuildArchiveEmpty(t *testing.T) {
	b := BuildArchive(nil)
	if len(b) != endRecordLen {
		t.Fatalf("got %d bytes, wanted %d", len(b), endRecordLen)
	}
	er := readEndRecord(t, b)
	if er.Entries != 0 || er.DirSize != 0 || er.DirOffset != 0 {
		t.Errorf("got %+v", er)
	}
}

func TestBuildArchiveDeterministic(t *testing.T) {
	a, b := BuildArchive(testEntries), BuildArchive(testEntries)
	if !bytes.Equal(a, b) {
		t.Error("two builds of the same entries differ")
	}
	var buf bytes.Buffer
	n, err := WriteArchive(&buf, testEntries)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(a)) || !bytes.Equal(buf.Bytes(), a) {
		t.Errorf("WriteArchive wrote %d bytes, wanted %d", n, len(a))
	}
}
