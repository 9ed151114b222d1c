// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/valyala/bytebufferpool"
	"github.com/valyala/quicktemplate"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML replaces the five predefined XML entities in s.
func EscapeXML(s string) string { return xmlEscaper.Replace(s) }

// RenderWorksheet returns the worksheet part for the given rows.
//
// Every row is emitted, even the empty ones, so row numbers follow
// the position in rows.
func RenderWorksheet(rows []Row) string {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	writeWorksheet(bb, rows)
	return bb.String()
}

func writeWorksheet(w io.Writer, rows []Row) {
	qw := quicktemplate.AcquireWriter(w)
	defer quicktemplate.ReleaseWriter(qw)
	q := qw.N()

	q.S(xmlDecl)
	q.S(`<worksheet xmlns="` + nsSpreadsheetML + `">` + "\n")
	q.S("  <sheetData>")
	for i, row := range rows {
		q.S(`<row r="`)
		q.D(i + 1)
		q.S(`">`)
		for j, c := range row {
			q.S(`<c r="`)
			q.S(CellRef(i, j))
			if c.kind == KindNumber {
				q.S(`" t="n"`)
			} else {
				q.S(`" t="inlineStr"`)
			}
			if c.styled {
				q.S(` s="`)
				q.D(int(c.style))
				q.S(`"`)
			}
			if c.kind == KindNumber {
				q.S(`><v>`)
				q.S(formatNumber(c.number))
				q.S(`</v></c>`)
			} else {
				q.S(`><is><t>`)
				q.S(EscapeXML(c.text))
				q.S(`</t></is></c>`)
			}
		}
		q.S(`</row>`)
	}
	q.S("</sheetData>\n</worksheet>")
}

// ValidateRows checks every cell of rows, and returns the first error
// prefixed with the cell reference.
func ValidateRows(rows []Row) error {
	for i, row := range rows {
		for j, c := range row {
			if err := c.Validate(); err != nil {
				return fmt.Errorf("%s: %w", CellRef(i, j), err)
			}
		}
	}
	return nil
}
