package cli

import (
	"strconv"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

// resolveRef turns a REF argument into an item id. A REF is an id or a
// 1-based position in the full list as printed by ls; ids win on overlap.
// Unmatched numbers come back unchanged so the store can ignore them.
func resolveRef(items []model.Item, ref string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(ref), "#"), 10, 64)
	if err != nil {
		return 0, usagef("not a number: %s", ref)
	}
	for _, it := range items {
		if it.ID == n {
			return n, nil
		}
	}
	if n >= 1 && n <= int64(len(items)) {
		return items[n-1].ID, nil
	}
	return n, nil
}
