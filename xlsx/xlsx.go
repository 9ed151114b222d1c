// Copyright 2020, 2023, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/UNO-SOFT/budgetsheet"
)

var _ = (budgetsheet.Writer)((*XLSXWriter)(nil))

// ErrUnknownSheet is returned by NewSheet for names other than
// LineItemsSheet and SummarySheet, and for repeated names.
var ErrUnknownSheet = errors.New("unknown sheet")

type XLSXWriter struct {
	w      io.Writer
	sheets map[string]*XLSXSheet
	mu     sync.Mutex
}

type XLSXSheet struct {
	Name    string
	columns []columnStyle
	rows    []Row
	mu      sync.Mutex
}

type columnStyle struct {
	style  StyleIndex
	styled bool
}

// NewWriter returns a new budgetsheet.Writer, producing the budget workbook.
//
// This writer allows concurrent writes to separate sheets.
//
// This writer collects everything in memory, so big sheets may impose problems.
func NewWriter(w io.Writer) *XLSXWriter {
	return &XLSXWriter{w: w, sheets: make(map[string]*XLSXSheet, 2)}
}

// Close writes the workbook. Sheets never created are left empty.
func (xlw *XLSXWriter) Close() error {
	if xlw == nil {
		return nil
	}
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	w := xlw.w
	xlw.w = nil
	if w == nil {
		return nil
	}
	_, err := w.Write(BuildBudgetWorkbook(
		xlw.sheets[LineItemsSheet].snapshot(),
		xlw.sheets[SummarySheet].snapshot(),
	))
	return err
}

// NewSheet starts one of the two sheets of the budget workbook.
//
// If any column has a Name, a header row is added.
func (xlw *XLSXWriter) NewSheet(name string, columns []budgetsheet.Column) (budgetsheet.Sheet, error) {
	if name != LineItemsSheet && name != SummarySheet {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownSheet)
	}
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	if _, ok := xlw.sheets[name]; ok {
		return nil, fmt.Errorf("%q already exists: %w", name, ErrUnknownSheet)
	}
	xls := &XLSXSheet{Name: name, columns: make([]columnStyle, len(columns))}
	var hasHeader bool
	header := make(Row, len(columns))
	for i, c := range columns {
		s, ok := getStyle(c.Column)
		xls.columns[i] = columnStyle{style: s, styled: ok}
		header[i] = Str(c.Name)
		if s, ok := getStyle(c.Header); ok {
			header[i] = header[i].WithStyle(s)
		}
		if c.Name != "" {
			hasHeader = true
		}
	}
	if hasHeader {
		xls.rows = append(xls.rows, header)
	}
	xlw.sheets[name] = xls
	return xls, nil
}

// getStyle maps style to the fixed palette.
// Formats other than CurrencyFormat are ignored.
func getStyle(style budgetsheet.Style) (StyleIndex, bool) {
	currency := style.Format == CurrencyFormat
	switch {
	case style.FontBold && currency:
		return StyleBoldCurrency, true
	case currency:
		return StyleCurrency, true
	case style.FontBold:
		return StyleBold, true
	}
	return StyleDefault, false
}

// MaxRowCount is the number of maximum rows.
const MaxRowCount = 1_048_576

func (xls *XLSXSheet) Close() error { return nil }

func (xls *XLSXSheet) snapshot() []Row {
	if xls == nil {
		return nil
	}
	xls.mu.Lock()
	defer xls.mu.Unlock()
	return append([]Row(nil), xls.rows...)
}

// AppendRow adds a row of values. Every value takes one column:
// nil and invalid SQL values become empty strings, numbers become
// numeric cells, everything else is printed as text.
func (xls *XLSXSheet) AppendRow(values ...any) error {
	xls.mu.Lock()
	defer xls.mu.Unlock()
	if len(xls.rows) >= MaxRowCount {
		return budgetsheet.ErrTooManyRows
	}
	row := make(Row, len(values))
	for i, v := range values {
		c := cellOf(v)
		if i < len(xls.columns) && xls.columns[i].styled {
			c = c.WithStyle(xls.columns[i].style)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%s[%s]: %w", xls.Name, CellRef(len(xls.rows), i), err)
		}
		row[i] = c
	}
	xls.rows = append(xls.rows, row)
	return nil
}

func cellOf(v any) Cell {
	if vr, ok := v.(driver.Valuer); ok {
		if vv, err := vr.Value(); err == nil {
			v = vv
		}
	}
	switch x := v.(type) {
	case nil:
		return Str("")
	case string:
		return Str(x)
	case budgetsheet.Number:
		if f, err := strconv.ParseFloat(string(x), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return Num(f)
		}
		return Str(string(x))
	case time.Time:
		if x.IsZero() {
			return Str("")
		}
		return Str(x.Format("2006-01-02"))
	case float64:
		return Num(x)
	case float32:
		return Num(float64(x))
	case int:
		return Num(float64(x))
	case int8:
		return Num(float64(x))
	case int16:
		return Num(float64(x))
	case int32:
		return Num(float64(x))
	case int64:
		return Num(float64(x))
	case uint:
		return Num(float64(x))
	case uint8:
		return Num(float64(x))
	case uint16:
		return Num(float64(x))
	case uint32:
		return Num(float64(x))
	case uint64:
		return Num(float64(x))
	case bool:
		return Str(strconv.FormatBool(x))
	case []byte:
		return Str(string(x))
	case fmt.Stringer:
		return Str(x.String())
	}
	return Str(fmt.Sprint(v))
}
