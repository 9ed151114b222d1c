// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package budget computes the direct costs and markups of a project
// budget, and lays them out as the rows of the budget workbook.
package budget

import (
	"errors"
	"fmt"
)

// All matches every value in Filters.
const All = "all"

var ErrInvalid = errors.New("invalid value")

// CostType is the kind of a line item.
type CostType string

const (
	Labor    CostType = "labor"
	Material CostType = "material"
	Sub      CostType = "sub"
)

func (c CostType) String() string { return string(c) }

// Label is the human readable name of the cost type.
func (c CostType) Label() string {
	switch c {
	case Labor:
		return "Labor"
	case Material:
		return "Material"
	case Sub:
		return "Sub"
	}
	return string(c)
}

func (c *CostType) UnmarshalText(b []byte) error {
	switch v := CostType(b); v {
	case Labor, Material, Sub:
		*c = v
		return nil
	}
	return fmt.Errorf("cost type %q: %w", b, ErrInvalid)
}

// MarkupMode tells whether a Markup is a percentage or a fixed amount.
type MarkupMode string

const (
	Percent MarkupMode = "percent"
	Fixed   MarkupMode = "fixed"
)

func (m *MarkupMode) UnmarshalText(b []byte) error {
	switch v := MarkupMode(b); v {
	case Percent, Fixed:
		*m = v
		return nil
	}
	return fmt.Errorf("markup mode %q: %w", b, ErrInvalid)
}

type Markup struct {
	Mode  MarkupMode `json:"mode"`
	Value float64    `json:"value"`
}

// Amount returns the markup on the base amount.
func (m Markup) Amount(base float64) float64 {
	if m.Mode == Fixed {
		return m.Value
	}
	return base * m.Value / 100
}

type Markups struct {
	Tax         Markup `json:"tax"`
	OHP         Markup `json:"ohp"`
	Insurance   Markup `json:"insurance"`
	Contingency Markup `json:"contingency"`
	Escalation  Markup `json:"escalation"`
}

// Reference is a named project record: an area, a scope or a unit.
type Reference struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId,omitempty"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder,omitempty"`
}

// LineItem is one cost line of the budget.
// Empty AreaID, ScopeID and UnitID mean unassigned.
type LineItem struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"projectId,omitempty"`
	AreaID      string   `json:"areaId,omitempty"`
	ScopeID     string   `json:"scopeId,omitempty"`
	CostType    CostType `json:"costType"`
	Description string   `json:"description"`
	Vendor      string   `json:"vendor,omitempty"`
	Material    string   `json:"material,omitempty"`
	Qty         float64  `json:"qty,omitempty"`
	UnitID      string   `json:"unitId,omitempty"`
	UnitCost    float64  `json:"unitCost,omitempty"`
	Hours       float64  `json:"hours,omitempty"`
	HourlyRate  float64  `json:"hourlyRate,omitempty"`
	SubAmount   float64  `json:"subAmount,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// DirectCost of the item: hours*rate for labor, qty*unit cost for
// material, the sub amount for subcontracts.
func DirectCost(item LineItem) float64 {
	switch item.CostType {
	case Labor:
		return item.Hours * item.HourlyRate
	case Material:
		return item.Qty * item.UnitCost
	}
	return item.SubAmount
}

type Filters struct {
	AreaID   string
	ScopeID  string
	CostType string
}

// NoFilters matches every item.
var NoFilters = Filters{AreaID: All, ScopeID: All, CostType: All}

func (f Filters) match(item LineItem) bool {
	return (f.AreaID == All || f.AreaID == item.AreaID) &&
		(f.ScopeID == All || f.ScopeID == item.ScopeID) &&
		(f.CostType == All || f.CostType == string(item.CostType))
}

// Filter returns the items matching f, in order.
func Filter(items []LineItem, f Filters) []LineItem {
	var filtered []LineItem
	for _, item := range items {
		if f.match(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

type Summary struct {
	DirectSubtotal float64
	Insurance      float64
	OHP            float64
	Tax            float64
	Contingency    float64
	Escalation     float64
	TotalBudget    float64
}

func subtotal(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += DirectCost(item)
	}
	return sum
}

// Summarize the budget of the filtered items.
//
// The markups are computed on the filtered items when applyToFiltered,
// on all items otherwise.
func Summarize(all, filtered []LineItem, markups Markups, applyToFiltered bool) Summary {
	base := all
	if applyToFiltered {
		base = filtered
	}
	markupBase := subtotal(base)
	s := Summary{
		DirectSubtotal: subtotal(filtered),
		Insurance:      markups.Insurance.Amount(markupBase),
		OHP:            markups.OHP.Amount(markupBase),
		Tax:            markups.Tax.Amount(markupBase),
		Contingency:    markups.Contingency.Amount(markupBase),
		Escalation:     markups.Escalation.Amount(markupBase),
	}
	s.TotalBudget = s.DirectSubtotal + s.Insurance + s.OHP + s.Tax + s.Contingency + s.Escalation
	return s
}
