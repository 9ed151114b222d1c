// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"bytes"
	"encoding/xml"
	"path"
	"slices"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestBuildBudgetWorkbookSignatures(t *testing.T) {
	b := BuildBudgetWorkbook([]Row{{Num(42)}}, nil)
	if !bytes.HasPrefix(b, []byte{0x50, 0x4b, 0x03, 0x04}) {
		t.Errorf("starts with % x", b[:4])
	}
	if !bytes.HasPrefix(b[len(b)-endRecordLen:], []byte{0x50, 0x4b, 0x05, 0x06}) {
		t.Errorf("end record starts with % x", b[len(b)-endRecordLen:len(b)-endRecordLen+4])
	}
	if er := readEndRecord(t, b); er.Entries != 7 {
		t.Errorf("got %d entries, wanted 7", er.Entries)
	}
	if !bytes.Equal(b, BuildBudgetWorkbook([]Row{{Num(42)}}, nil)) {
		t.Error("two builds differ")
	}
}

func TestBudgetEntries(t *testing.T) {
	entries := BudgetEntries(nil, nil)
	want := []string{
		"[Content_Types].xml", "_rels/.rels", "xl/workbook.xml",
		"xl/_rels/workbook.xml.rels", "xl/styles.xml",
		"xl/worksheets/sheet1.xml", "xl/worksheets/sheet2.xml",
	}
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Path
		if !strings.HasPrefix(e.Content, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`) {
			t.Errorf("%s: missing XML declaration", e.Path)
		}
		if err := xml.Unmarshal([]byte(e.Content), new(struct{})); err != nil {
			t.Errorf("%s: %+v", e.Path, err)
		}
	}
	if !slices.Equal(got, want) {
		t.Errorf("got %q, wanted %q", got, want)
	}
}

// Every relationship target and content type override must name a part.
func TestBudgetPartsConsistent(t *testing.T) {
	parts := make(map[string]bool)
	for _, e := range BudgetEntries(nil, nil) {
		parts[e.Path] = true
	}

	type rels struct {
		Rels []struct {
			ID     string `xml:"Id,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	for _, tc := range []struct {
		Path, Content, Base string
		IDs                 []string
	}{
		{PackageRelsPath, packageRelsXML, "", []string{"rId1"}},
		{WorkbookRelsPath, workbookRelsXML, "xl", []string{"rId1", "rId2", "rId3"}},
	} {
		var r rels
		if err := xml.Unmarshal([]byte(tc.Content), &r); err != nil {
			t.Fatalf("%s: %+v", tc.Path, err)
		}
		var ids []string
		for _, rel := range r.Rels {
			ids = append(ids, rel.ID)
			if p := path.Join(tc.Base, rel.Target); !parts[p] {
				t.Errorf("%s: %s points to missing %q", tc.Path, rel.ID, p)
			}
		}
		if !slices.Equal(ids, tc.IDs) {
			t.Errorf("%s: got %q, wanted %q", tc.Path, ids, tc.IDs)
		}
	}

	var ct struct {
		Overrides []struct {
			PartName string `xml:"PartName,attr"`
		} `xml:"Override"`
	}
	if err := xml.Unmarshal([]byte(contentTypesXML), &ct); err != nil {
		t.Fatal(err)
	}
	if len(ct.Overrides) != 4 {
		t.Errorf("got %d overrides, wanted 4", len(ct.Overrides))
	}
	for _, o := range ct.Overrides {
		if !parts[strings.TrimPrefix(o.PartName, "/")] {
			t.Errorf("content type of missing part %q", o.PartName)
		}
	}

	var wb struct {
		Sheets []struct {
			Name string `xml:"name,attr"`
			RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sheets>sheet"`
	}
	if err := xml.Unmarshal([]byte(workbookXML), &wb); err != nil {
		t.Fatal(err)
	}
	if len(wb.Sheets) != 2 ||
		wb.Sheets[0].Name != LineItemsSheet || wb.Sheets[0].RID != "rId1" ||
		wb.Sheets[1].Name != SummarySheet || wb.Sheets[1].RID != "rId2" {
		t.Errorf("sheets: %+v", wb.Sheets)
	}
}

func TestBuildBudgetWorkbookExcelize(t *testing.T) {
	const text = `Tom & Jerry's "<pipes>"`
	lineItems := []Row{
		{Str("Description").WithStyle(StyleBold), Str("Cost").WithStyle(StyleBold)},
		{Str(text), Num(1234.5).WithStyle(StyleCurrency)},
		{},
		{Str("Total").WithStyle(StyleBold), Num(1234.5).WithStyle(StyleBoldCurrency)},
	}
	summary := []Row{{Str("Total Budget"), Num(42)}}
	b := BuildBudgetWorkbook(lineItems, summary)

	xl, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	defer xl.Close()
	if got, want := xl.GetSheetList(), []string{"Line Items", "Summary"}; !slices.Equal(got, want) {
		t.Errorf("sheets: got %q, wanted %q", got, want)
	}

	raw := excelize.Options{RawCellValue: true}
	for _, tc := range []struct {
		Sheet, Cell, Value string
		Style              int
	}{
		{LineItemsSheet, "A1", "Description", int(StyleBold)},
		{LineItemsSheet, "A2", text, 0},
		{LineItemsSheet, "B2", "1234.5", int(StyleCurrency)},
		{LineItemsSheet, "B4", "1234.5", int(StyleBoldCurrency)},
		{SummarySheet, "A1", "Total Budget", 0},
		{SummarySheet, "B1", "42", 0},
	} {
		got, err := xl.GetCellValue(tc.Sheet, tc.Cell, raw)
		if err != nil {
			t.Fatalf("%s!%s: %+v", tc.Sheet, tc.Cell, err)
		}
		if got != tc.Value {
			t.Errorf("%s!%s: got %q, wanted %q", tc.Sheet, tc.Cell, got, tc.Value)
		}
		style, err := xl.GetCellStyle(tc.Sheet, tc.Cell)
		if err != nil {
			t.Fatalf("%s!%s: %+v", tc.Sheet, tc.Cell, err)
		}
		if style != tc.Style {
			t.Errorf("%s!%s: style %d, wanted %d", tc.Sheet, tc.Cell, style, tc.Style)
		}
	}

	rows, err := xl.GetRows(LineItemsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 || len(rows[2]) != 0 {
		t.Errorf("rows: %q", rows)
	}

	if got, err := xl.GetCellValue(LineItemsSheet, "B2"); err != nil {
		t.Fatal(err)
	} else if got != "$1,234.50" {
		t.Errorf("formatted B2: got %q", got)
	}
}
