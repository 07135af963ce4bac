// Package catalog derives what the browser shows from the loaded items:
// filtering, status ordering, category grouping and the detail view state.
// Every derivation is a pure function of (items, ViewState); adapters in
// internal/tui and internal/web only draw the resulting Tree.
package catalog

import (
	"iter"
	"slices"
	"strings"

	"github.com/Makepad-fr/giveaway/internal/model"
)

// Store is the immutable item list for one load of the source document.
type Store struct {
	items []model.Item
}

// NewStore copies items so later changes to the caller's slice are not seen.
func NewStore(items []model.Item) *Store {
	return &Store{items: slices.Clone(items)}
}

// Len is the number of items; a nil store is empty.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns a reference to the i-th item, or nil when out of range.
// The item must not be modified.
func (s *Store) At(i int) *model.Item {
	if s == nil || i < 0 || i >= len(s.items) {
		return nil
	}
	return &s.items[i]
}

// All yields items with their index in source order.
func (s *Store) All() iter.Seq2[int, model.Item] {
	return func(yield func(int, model.Item) bool) {
		if s == nil {
			return
		}
		for i, it := range s.items {
			if !yield(i, it) {
				return
			}
		}
	}
}

// Index finds the first item equal to it, or -1.
func (s *Store) Index(it model.Item) int {
	if s == nil {
		return -1
	}
	return slices.Index(s.items, it)
}

// Category is a distinct category value and how many items carry it.
type Category struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Categories lists distinct non-empty categories, compared case-insensitively.
// The first spelling seen is kept as the label.
func (s *Store) Categories() []Category {
	seen := map[string]int{}
	var out []Category
	for _, it := range s.All() {
		label := strings.TrimSpace(it.Category)
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		if i, ok := seen[key]; ok {
			out[i].Count++
			continue
		}
		seen[key] = len(out)
		out = append(out, Category{Label: label, Count: 1})
	}
	slices.SortStableFunc(out, func(a, b Category) int {
		return compareFold(a.Label, b.Label)
	})
	return out
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
