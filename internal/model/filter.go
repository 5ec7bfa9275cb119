package model

import (
	"fmt"
	"strings"
)

// Filter selects which items make up the visible view.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterChecked   Filter = "checked"
	FilterUnchecked Filter = "unchecked"
	FilterRemoved   Filter = "removed"
)

// Filters lists the known filters in menu order.
var Filters = []Filter{FilterAll, FilterUnchecked, FilterChecked, FilterRemoved}

// ParseFilter maps user input to a Filter. A few aliases are accepted.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "checked", "done", "completed":
		return FilterChecked, nil
	case "unchecked", "pending", "active":
		return FilterUnchecked, nil
	case "removed", "trash", "deleted":
		return FilterRemoved, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, checked, unchecked or removed)", s)
}

// Keep reports whether it belongs to the view selected by f.
// Unknown filters keep everything.
func (f Filter) Keep(it Item) bool {
	switch f {
	case FilterAll:
		return !it.Removed
	case FilterChecked:
		return it.Checked && !it.Removed
	case FilterUnchecked:
		return !it.Checked && !it.Removed
	case FilterRemoved:
		return it.Removed
	}
	return true
}

// Apply returns the items kept by f, preserving order.
func (f Filter) Apply(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Title is the heading shown above the view.
func (f Filter) Title() string {
	switch f {
	case FilterChecked:
		return "Completed"
	case FilterUnchecked:
		return "Active"
	case FilterRemoved:
		return "Trash"
	}
	return "All tasks"
}

// Next cycles through Filters.
func (f Filter) Next() Filter {
	for i, g := range Filters {
		if g == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}
