package core

import (
	"sort"
	"strings"
)

const (
	FilterAll = "all"

	SortByDate   = "date"
	SortByAmount = "amount"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// FilterCriteria is the user-chosen view over a transaction list. It is
// transient UI state and is never persisted.
type FilterCriteria struct {
	Type      string // "all", "income", "expense"
	Category  string // "all" or a category name
	SortBy    string // "date", "amount"
	SortOrder string // "asc", "desc"
}

// DefaultFilter is the view applied when a page first loads.
func DefaultFilter() FilterCriteria {
	return FilterCriteria{
		Type:      FilterAll,
		Category:  FilterAll,
		SortBy:    SortByDate,
		SortOrder: SortDesc,
	}
}

// Filter derives the displayable view of a transaction list: type filter,
// case-insensitive category filter, then a stable sort by date or amount.
// The input slice is never mutated; ties keep their original relative
// order so the same criteria always produce the same view.
func Filter(list []Transaction, c FilterCriteria) []Transaction {
	out := make([]Transaction, 0, len(list))
	for _, t := range list {
		if c.Type == string(Income) && t.Type == Expense {
			continue
		}
		if c.Type == string(Expense) && t.Type == Income {
			continue
		}
		if c.Category != FilterAll && c.Category != "" && !strings.EqualFold(t.Category, c.Category) {
			continue
		}
		out = append(out, t)
	}

	asc := c.SortOrder != SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch c.SortBy {
		case SortByAmount:
			if out[i].Amount == out[j].Amount {
				return false
			}
			less = out[i].Amount < out[j].Amount
		default: // date
			if out[i].Date.Equal(out[j].Date.Time) {
				return false
			}
			less = out[i].Date.Before(out[j].Date.Time)
		}
		if asc {
			return less
		}
		return !less
	})

	return out
}

// Categories returns the distinct category names present in a list, in
// first-seen order, for building the category filter menu.
func Categories(list []Transaction) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(list))
	for _, t := range list {
		key := strings.ToLower(strings.TrimSpace(t.Category))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}
