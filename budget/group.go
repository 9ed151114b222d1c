// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package budget

const (
	UnassignedArea  = "Unassigned Area"
	UnassignedScope = "Unassigned Scope"
)

type AreaGroup struct {
	AreaID   string
	AreaName string
	Subtotal float64
	Scopes   []ScopeGroup
}

type ScopeGroup struct {
	ScopeID   string
	ScopeName string
	Subtotal  float64
	Items     []LineItem
}

func names(refs []Reference) map[string]string {
	m := make(map[string]string, len(refs))
	for _, r := range refs {
		m[r.ID] = r.Name
	}
	return m
}

func nameOf(m map[string]string, id, fallback string) string {
	if s, ok := m[id]; ok && id != "" {
		return s
	}
	return fallback
}

// Group the items by area, then by scope, keeping the order in which
// the areas and scopes first appear.
func Group(items []LineItem, areas, scopes []Reference) []AreaGroup {
	areaNames, scopeNames := names(areas), names(scopes)
	var groups []AreaGroup
	areaIdx := make(map[string]int)
	scopeIdx := make(map[[2]string]int)
	for _, item := range items {
		cost := DirectCost(item)
		ai, ok := areaIdx[item.AreaID]
		if !ok {
			ai = len(groups)
			areaIdx[item.AreaID] = ai
			groups = append(groups, AreaGroup{
				AreaID:   item.AreaID,
				AreaName: nameOf(areaNames, item.AreaID, UnassignedArea),
			})
		}
		ag := &groups[ai]
		ag.Subtotal += cost

		k := [2]string{item.AreaID, item.ScopeID}
		si, ok := scopeIdx[k]
		if !ok {
			si = len(ag.Scopes)
			scopeIdx[k] = si
			ag.Scopes = append(ag.Scopes, ScopeGroup{
				ScopeID:   item.ScopeID,
				ScopeName: nameOf(scopeNames, item.ScopeID, UnassignedScope),
			})
		}
		sg := &ag.Scopes[si]
		sg.Subtotal += cost
		sg.Items = append(sg.Items, item)
	}
	return groups
}
