// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"encoding/binary"
	"io"
	"strings"
)

const (
	localHeaderSig   = 0x04034b50
	centralHeaderSig = 0x02014b50
	endRecordSig     = 0x06054b50

	localHeaderLen   = 30
	centralHeaderLen = 46
	endRecordLen     = 22

	// zipVersion is 2.0 on MS-DOS, for both "made by" and "needed".
	zipVersion  = 20
	methodStore = 0
)

var le = binary.LittleEndian

// Entry is a named text part of the archive.
type Entry struct {
	// Path is the slash separated name inside the archive.
	Path string
	// Content is written as UTF-8.
	Content string
}

// record is what the central directory needs to know about a written entry.
type record struct {
	name   string
	crc    uint32
	size   uint32
	offset uint32
}

// BuildArchive returns a ZIP archive holding the entries, in order,
// with the "stored" method: no compression, no timestamps, no extra fields.
//
// The result depends only on entries. Archives over 4GiB or with more
// than 65535 entries are not supported.
func BuildArchive(entries []Entry) []byte {
	size := endRecordLen
	for _, e := range entries {
		size += localHeaderLen + centralHeaderLen + 2*len(e.Path) + len(e.Content)
	}
	b := make([]byte, 0, size)

	records := make([]record, 0, len(entries))
	for _, e := range entries {
		name := strings.ToValidUTF8(e.Path, "\uFFFD")
		content := strings.ToValidUTF8(e.Content, "\uFFFD")
		r := record{
			name:   name,
			crc:    CRC32([]byte(content)),
			size:   uint32(len(content)),
			offset: uint32(len(b)),
		}
		b = appendLocalHeader(b, r)
		b = append(b, content...)
		records = append(records, r)
	}

	dirOffset := uint32(len(b))
	for _, r := range records {
		b = appendCentralHeader(b, r)
	}
	dirSize := uint32(len(b)) - dirOffset

	b = le.AppendUint32(b, endRecordSig)
	b = le.AppendUint16(b, 0) // this disk
	b = le.AppendUint16(b, 0) // disk with the central directory
	b = le.AppendUint16(b, uint16(len(records)))
	b = le.AppendUint16(b, uint16(len(records)))
	b = le.AppendUint32(b, dirSize)
	b = le.AppendUint32(b, dirOffset)
	b = le.AppendUint16(b, 0) // comment length
	return b
}

// WriteArchive writes BuildArchive(entries) to w.
func WriteArchive(w io.Writer, entries []Entry) (int64, error) {
	n, err := w.Write(BuildArchive(entries))
	return int64(n), err
}

func appendLocalHeader(b []byte, r record) []byte {
	b = le.AppendUint32(b, localHeaderSig)
	b = le.AppendUint16(b, zipVersion)
	b = le.AppendUint16(b, 0) // flags
	b = le.AppendUint16(b, methodStore)
	b = le.AppendUint16(b, 0) // mod time
	b = le.AppendUint16(b, 0) // mod date
	b = le.AppendUint32(b, r.crc)
	b = le.AppendUint32(b, r.size) // compressed
	b = le.AppendUint32(b, r.size)
	b = le.AppendUint16(b, uint16(len(r.name)))
	b = le.AppendUint16(b, 0) // extra length
	return append(b, r.name...)
}

func appendCentralHeader(b []byte, r record) []byte {
	b = le.AppendUint32(b, centralHeaderSig)
	b = le.AppendUint16(b, zipVersion) // made by
	b = le.AppendUint16(b, zipVersion) // needed
	b = le.AppendUint16(b, 0)          // flags
	b = le.AppendUint16(b, methodStore)
	b = le.AppendUint16(b, 0) // mod time
	b = le.AppendUint16(b, 0) // mod date
	b = le.AppendUint32(b, r.crc)
	b = le.AppendUint32(b, r.size)
	b = le.AppendUint32(b, r.size)
	b = le.AppendUint16(b, uint16(len(r.name)))
	b = le.AppendUint16(b, 0) // extra length
	b = le.AppendUint16(b, 0) // comment length
	b = le.AppendUint16(b, 0) // disk number start
	b = le.AppendUint16(b, 0) // internal attributes
	b = le.AppendUint32(b, 0) // external attributes
	b = le.AppendUint32(b, r.offset)
	return append(b, r.name...)
}
