package catalog

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/giveaway/internal/model"
)

// All is the filter value that matches everything.
const All = "all"

// StatusFilter is one of all, new, available, reserved, taken.
type StatusFilter string

const (
	FilterAll       StatusFilter = All
	FilterNew       StatusFilter = StatusFilter(model.StatusNew)
	FilterAvailable StatusFilter = StatusFilter(model.StatusAvailable)
	FilterReserved  StatusFilter = StatusFilter(model.StatusReserved)
	FilterTaken     StatusFilter = StatusFilter(model.StatusTaken)
)

// StatusFilters is the pill order.
var StatusFilters = []StatusFilter{FilterAll, FilterNew, FilterAvailable, FilterReserved, FilterTaken}

// Label is the pill caption.
func (f StatusFilter) Label() string {
	if f == FilterAll {
		return "All"
	}
	return model.Item{Status: string(f)}.BadgeLabel()
}

// ParseStatusFilter accepts any case; "" means all.
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range StatusFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown status filter %q (want one of all, new, available, reserved, taken)", s)
}

// ViewState is the user-controlled input to a derivation.
type ViewState struct {
	Status   StatusFilter
	Search   string
	Category string
}

// DefaultViewState is all / empty search / all.
func DefaultViewState() ViewState {
	return ViewState{Status: FilterAll, Category: All}
}

func (v ViewState) WithStatus(f StatusFilter) ViewState { v.Status = f; return v }
func (v ViewState) WithSearch(s string) ViewState       { v.Search = s; return v }
func (v ViewState) WithCategory(c string) ViewState {
	if strings.TrimSpace(c) == "" {
		c = All
	}
	v.Category = c
	return v
}

func (v ViewState) allCategories() bool {
	c := strings.TrimSpace(v.Category)
	return c == "" || strings.EqualFold(c, All)
}

// Matches reports whether it passes the status, category and search filters.
func Matches(it model.Item, v ViewState) bool {
	if v.Status != "" && v.Status != FilterAll && StatusFilter(it.NormalizedStatus()) != v.Status {
		return false
	}
	if !v.allCategories() && !strings.EqualFold(strings.TrimSpace(it.Category), strings.TrimSpace(v.Category)) {
		return false
	}
	if v.Search == "" {
		return true
	}
	return strings.Contains(it.Haystack(), strings.ToLower(v.Search))
}

// Filter returns the indices of matching items in source order.
func Filter(s *Store, v ViewState) []int {
	var out []int
	for i, it := range s.All() {
		if Matches(it, v) {
			out = append(out, i)
		}
	}
	return out
}

// Counts is how many items each status pill would show, given the current
// search and category.
func Counts(s *Store, v ViewState) map[StatusFilter]int {
	out := make(map[StatusFilter]int, len(StatusFilters))
	for _, f := range StatusFilters {
		out[f] = 0
	}
	anyStatus := v.WithStatus(FilterAll)
	for _, it := range s.All() {
		if !Matches(it, anyStatus) {
			continue
		}
		out[FilterAll]++
		st := StatusFilter(it.NormalizedStatus())
		if _, ok := out[st]; ok {
			out[st]++
		}
	}
	return out
}
