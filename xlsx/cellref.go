// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import "strconv"

// ColumnName returns the letters of the zero-based column index:
// 0 is "A", 25 is "Z", 26 is "AA".
//
// Negative indexes are not allowed.
func ColumnName(index int) string {
	var a [16]byte
	i := len(a)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		i--
		a[i] = byte('A' + (n-1)%26)
	}
	return string(a[i:])
}

// CellRef returns the A1 reference of the zero-based row and column.
func CellRef(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row+1)
}
