// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package budgetsheet

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// EncName is the default CSV charset, taken from $LANG.
var EncName = "utf-8"

func init() {
	EncName = os.Getenv("LANG")
	if i := strings.IndexByte(EncName, '.'); i >= 0 {
		EncName = strings.ToLower(EncName[i+1:])
	}
	if EncName == "" {
		EncName = "utf-8"
	}
}

// GetEncoding returns the encoding named encName, or nil for UTF-8.
func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// CSVReadCloser is a csv.Reader that closes its underlying file.
type CSVReadCloser struct {
	*csv.Reader
	io.Closer
}

// OpenCsv opens fn ("" or "-" means stdin) for CSV reading, decoding
// from encName and sniffing the field separator from the first KiB.
func OpenCsv(fn, encName string) (CSVReadCloser, error) {
	var enc encoding.Encoding
	if encName != "" {
		var err error
		if enc, err = GetEncoding(encName); err != nil {
			return CSVReadCloser{}, err
		}
	}
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		var err error
		if fh, err = os.Open(fn); err != nil {
			return CSVReadCloser{}, err
		}
	}
	r := io.ReadCloser(fh)
	if enc != nil {
		r = struct {
			io.Reader
			io.Closer
		}{enc.NewDecoder().Reader(r), r}
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		r.Close()
		return CSVReadCloser{}, err
	}
	sep := rune(',')
	for _, r := range string(b) {
		if r == '"' || r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		sep = r
		break
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.Comma = sep
	return CSVReadCloser{cr, r}, nil
}
