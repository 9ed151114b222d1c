// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// CellKind is the type of a cell value.
type CellKind uint8

const (
	// KindInlineString is a text cell, embedded in the worksheet.
	KindInlineString CellKind = iota + 1
	// KindNumber is a numeric cell.
	KindNumber
)

func (k CellKind) String() string {
	switch k {
	case KindInlineString:
		return "inlineStr"
	case KindNumber:
		return "n"
	default:
		return "CellKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// StyleIndex selects one of the fixed cell formats of the styles part.
type StyleIndex uint8

// The style palette. The order matches the cellXfs of stylesXML.
const (
	StyleDefault StyleIndex = iota
	StyleBold
	StyleCurrency
	StyleBoldCurrency

	styleCount
)

// CurrencyFormat is the number format of StyleCurrency and StyleBoldCurrency.
const CurrencyFormat = "$#,##0.00"

var (
	ErrNonFinite = errors.New("non-finite number")
	ErrBadStyle  = errors.New("unknown style index")
	ErrBadKind   = errors.New("unknown cell kind")
)

// Cell is a single worksheet cell: either an inline string or a number,
// with an optional style.
//
// The zero Cell is invalid; use Str or Num.
type Cell struct {
	kind   CellKind
	text   string
	number float64
	style  StyleIndex
	styled bool
}

// Row is a worksheet row. The position of a cell in the row is its column.
type Row []Cell

// Str returns an inline string cell.
func Str(s string) Cell { return Cell{kind: KindInlineString, text: s} }

// Num returns a numeric cell.
func Num(f float64) Cell { return Cell{kind: KindNumber, number: f} }

// WithStyle returns a copy of c using the given palette entry.
func (c Cell) WithStyle(s StyleIndex) Cell {
	c.style, c.styled = s, true
	return c
}

// Kind returns the type of the cell.
func (c Cell) Kind() CellKind { return c.kind }

// Text returns the value of an inline string cell.
func (c Cell) Text() string { return c.text }

// Number returns the value of a numeric cell.
func (c Cell) Number() float64 { return c.number }

// Style returns the style index, and whether it is set at all.
func (c Cell) Style() (StyleIndex, bool) { return c.style, c.styled }

// Validate reports whether c can be rendered.
func (c Cell) Validate() error {
	switch c.kind {
	case KindInlineString:
	case KindNumber:
		if math.IsNaN(c.number) || math.IsInf(c.number, 0) {
			return fmt.Errorf("%v: %w", c.number, ErrNonFinite)
		}
	default:
		return fmt.Errorf("%v: %w", c.kind, ErrBadKind)
	}
	if c.styled && c.style >= styleCount {
		return fmt.Errorf("%d: %w", c.style, ErrBadStyle)
	}
	return nil
}

// formatNumber renders f as plain decimal text, without exponent
// or thousands separators.
func formatNumber(f float64) string {
	if f == 0 {
		return "0" // -0 too
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
