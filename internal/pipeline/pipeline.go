// Package pipeline derives the displayed lead view from the canonical list:
// a search term and status filter narrow it, a sort field and direction order it.
package pipeline

import (
	"sort"
	"strings"

	"sellerconsole/internal/lead"
)

// SortField names the lead column the table is ordered by.
type SortField string

const (
	FieldName    SortField = "name"
	FieldCompany SortField = "company"
	FieldScore   SortField = "score"
	FieldStatus  SortField = "status"
)

// Fields lists the sortable columns in table order.
func Fields() []SortField {
	return []SortField{FieldName, FieldCompany, FieldScore, FieldStatus}
}

// ParseField accepts a sort field name, case-insensitively.
func ParseField(raw string) (SortField, bool) {
	f := SortField(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Fields() {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// ParseDirection accepts "asc" or "desc", case-insensitively.
func ParseDirection(raw string) (SortDirection, bool) {
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(raw))); d {
	case Asc, Desc:
		return d, true
	}
	return "", false
}

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == Asc {
		return Desc
	}
	return Asc
}

// Arrow is the header indicator for the direction.
func (d SortDirection) Arrow() string {
	if d == Asc {
		return "↑"
	}
	return "↓"
}

// StatusAll disables status filtering.
const StatusAll = "all"

// Query is the full set of inputs the displayed view is derived from.
type Query struct {
	Search string
	Status string // StatusAll or a lead.Status value
	Field  SortField
	Dir    SortDirection
}

// Default returns the query used when nothing has been persisted yet.
func Default() Query {
	return Query{
		Search: "",
		Status: StatusAll,
		Field:  FieldScore,
		Dir:    Desc,
	}
}

// ParseStatusFilter accepts "all" or a lead status.
func ParseStatusFilter(raw string) (string, bool) {
	if strings.EqualFold(strings.TrimSpace(raw), StatusAll) {
		return StatusAll, true
	}
	s, ok := lead.ParseStatus(raw)
	return string(s), ok
}

// StatusFilters lists the filter values in cycling order, starting with "all".
func StatusFilters() []string {
	out := []string{StatusAll}
	for _, s := range lead.Statuses() {
		out = append(out, string(s))
	}
	return out
}

// NextStatusFilter cycles the status filter: all, new, contacted, ... , all.
func NextStatusFilter(current string) string {
	all := StatusFilters()
	for i, s := range all {
		if s == current {
			return all[(i+1)%len(all)]
		}
	}
	return StatusAll
}

// Toggle applies a header click: the active field flips direction, a new
// field becomes active in descending order.
func (q Query) Toggle(field SortField) Query {
	if q.Field == field {
		q.Dir = q.Dir.Flip()
		return q
	}
	q.Field = field
	q.Dir = Desc
	return q
}

// Filter keeps the leads whose name or company contains the search term
// (case-insensitive) and whose status matches the filter.
func Filter(leads []lead.Lead, search, status string) []lead.Lead {
	term := strings.ToLower(search)
	out := make([]lead.Lead, 0, len(leads))
	for _, l := range leads {
		if term != "" &&
			!strings.Contains(strings.ToLower(l.Name), term) &&
			!strings.Contains(strings.ToLower(l.Company), term) {
			continue
		}
		if status != "" && status != StatusAll && string(l.Status) != status {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Sort orders leads in place. Equal keys keep their relative order.
func Sort(leads []lead.Lead, field SortField, dir SortDirection) {
	sort.SliceStable(leads, func(i, j int) bool {
		c := compare(leads[i], leads[j], field)
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
}

func compare(a, b lead.Lead, field SortField) int {
	switch field {
	case FieldScore:
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		}
		return 0
	case FieldName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case FieldCompany:
		return strings.Compare(strings.ToLower(a.Company), strings.ToLower(b.Company))
	case FieldStatus:
		return strings.Compare(strings.ToLower(string(a.Status)), strings.ToLower(string(b.Status)))
	}
	return 0
}

// Apply derives the displayed view. The input slice is not modified.
func Apply(leads []lead.Lead, q Query) []lead.Lead {
	out := Filter(leads, q.Search, q.Status)
	Sort(out, q.Field, q.Dir)
	return out
}
