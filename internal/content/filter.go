package content

import (
	"sort"
	"strconv"
	"strings"

	"github.com/chethancinemas/cinema-admin/internal/models"
)

// FilterAll is the sentinel that disables the status or year filter.
const FilterAll = "All"

// Filter is the client-side view filter applied after a listing fetch.
// The three predicates are AND-combined.
type Filter struct {
	// Query is matched case-insensitively as a substring of the title.
	Query string
	// Status must equal the item's status exactly. "" or "All" matches everything.
	Status string
	// Year must equal the item's year rendered as a decimal string.
	// "" or "All" matches everything.
	Year string
}

// Match reports whether it passes every predicate.
func (f Filter) Match(it models.ContentItem) bool {
	if !strings.Contains(strings.ToLower(it.Title), strings.ToLower(f.Query)) {
		return false
	}
	if f.Status != "" && f.Status != FilterAll && it.Status != f.Status {
		return false
	}
	if f.Year != "" && f.Year != FilterAll && strconv.Itoa(it.Year) != f.Year {
		return false
	}
	return true
}

// Apply filters items, preserving the store's ordering.
func (f Filter) Apply(items []models.ContentItem) []models.ContentItem {
	out := make([]models.ContentItem, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// UniqueYears returns "All" followed by the distinct years present in
// items, newest first.
func UniqueYears(items []models.ContentItem) []string {
	seen := map[int]bool{}
	years := []int{}
	for _, it := range items {
		if it.Year != 0 && !seen[it.Year] {
			seen[it.Year] = true
			years = append(years, it.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	out := []string{FilterAll}
	for _, y := range years {
		out = append(out, strconv.Itoa(y))
	}
	return out
}
