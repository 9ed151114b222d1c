// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/UNO-SOFT/budgetsheet/xlsx"
	"github.com/klauspost/compress/zip"
	"github.com/xuri/excelize/v2"
)

// verify reads back the workbook: every archive member must match its
// checksum, and a spreadsheet reader must see both sheets.
func verify(b []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		_, err = io.Copy(io.Discard, rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
	}

	xl, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer xl.Close()
	want := []string{xlsx.LineItemsSheet, xlsx.SummarySheet}
	if got := xl.GetSheetList(); !slices.Equal(got, want) {
		return fmt.Errorf("sheets: got %q, wanted %q", got, want)
	}
	for _, name := range want {
		rows, err := xl.GetRows(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		logger.Debug("verify", "sheet", name, "rows", len(rows))
	}
	return nil
}
