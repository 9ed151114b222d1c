// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package budget

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/UNO-SOFT/budgetsheet/xlsx"
)

// Project is everything needed to export a budget.
type Project struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name"`
	Location  string      `json:"location,omitempty"`
	Markups   Markups     `json:"markups"`
	Areas     []Reference `json:"areas,omitempty"`
	Scopes    []Reference `json:"scopes,omitempty"`
	Units     []Reference `json:"units,omitempty"`
	LineItems []LineItem  `json:"lineItems"`
}

// Load a JSON encoded Project.
func Load(r io.Reader) (Project, error) {
	var p Project
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("decode project: %w", err)
	}
	for _, m := range []*Markup{&p.Markups.Tax, &p.Markups.OHP, &p.Markups.Insurance, &p.Markups.Contingency, &p.Markups.Escalation} {
		if m.Mode == "" {
			m.Mode = Percent
		}
	}
	for i, item := range p.LineItems {
		if item.CostType == "" {
			return p, fmt.Errorf("line item %d (%q): missing cost type: %w", i, item.ID, ErrInvalid)
		}
	}
	return p, nil
}

// LineItemHeader is the header row of the "Line Items" sheet.
var LineItemHeader = []string{
	"Area", "Scope", "Cost Type", "Description", "Vendor", "Material",
	"Qty", "Unit", "Unit Cost", "Hours", "Rate", "Sub Amount",
	"Direct Cost", "Notes",
}

const directCostColumn = 12

// LineItemRows returns the "Line Items" sheet: a bold header, one row per
// item, then the bold total of the direct costs.
func (p Project) LineItemRows(items []LineItem) []xlsx.Row {
	areaNames, scopeNames, unitNames := names(p.Areas), names(p.Scopes), names(p.Units)
	rows := make([]xlsx.Row, 0, len(items)+2)

	header := make(xlsx.Row, len(LineItemHeader))
	for i, s := range LineItemHeader {
		header[i] = xlsx.Str(s).WithStyle(xlsx.StyleBold)
	}
	rows = append(rows, header)

	money := func(f float64) xlsx.Cell { return xlsx.Num(f).WithStyle(xlsx.StyleCurrency) }
	var total float64
	for _, item := range items {
		cost := DirectCost(item)
		total += cost
		rows = append(rows, xlsx.Row{
			xlsx.Str(nameOf(areaNames, item.AreaID, UnassignedArea)),
			xlsx.Str(nameOf(scopeNames, item.ScopeID, UnassignedScope)),
			xlsx.Str(item.CostType.Label()),
			xlsx.Str(item.Description),
			xlsx.Str(item.Vendor),
			xlsx.Str(item.Material),
			xlsx.Num(item.Qty),
			xlsx.Str(nameOf(unitNames, item.UnitID, "")),
			money(item.UnitCost),
			xlsx.Num(item.Hours),
			money(item.HourlyRate),
			money(item.SubAmount),
			money(cost),
			xlsx.Str(item.Notes),
		})
	}

	last := make(xlsx.Row, directCostColumn+1)
	last[0] = xlsx.Str("Total").WithStyle(xlsx.StyleBold)
	for i := 1; i < directCostColumn; i++ {
		last[i] = xlsx.Str("")
	}
	last[directCostColumn] = xlsx.Num(total).WithStyle(xlsx.StyleBoldCurrency)
	return append(rows, last)
}

// SummaryRows returns the "Summary" sheet.
func SummaryRows(s Summary) []xlsx.Row {
	line := func(name string, f float64) xlsx.Row {
		return xlsx.Row{xlsx.Str(name), xlsx.Num(f).WithStyle(xlsx.StyleCurrency)}
	}
	return []xlsx.Row{
		{xlsx.Str("Item").WithStyle(xlsx.StyleBold), xlsx.Str("Amount").WithStyle(xlsx.StyleBold)},
		line("Direct Subtotal", s.DirectSubtotal),
		line("Insurance", s.Insurance),
		line("OH&P", s.OHP),
		line("Tax", s.Tax),
		line("Contingency", s.Contingency),
		line("Escalation", s.Escalation),
		{xlsx.Str("Total Budget").WithStyle(xlsx.StyleBold), xlsx.Num(s.TotalBudget).WithStyle(xlsx.StyleBoldCurrency)},
	}
}

// Workbook returns the budget workbook of the items matching f.
func (p Project) Workbook(f Filters, applyToFiltered bool) []byte {
	filtered := Filter(p.LineItems, f)
	s := Summarize(p.LineItems, filtered, p.Markups, applyToFiltered)
	return xlsx.BuildBudgetWorkbook(p.LineItemRows(filtered), SummaryRows(s))
}
