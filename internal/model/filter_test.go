package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []Item{
	{ID: 1, Text: "open"},
	{ID: 2, Text: "done", Checked: true},
	{ID: 3, Text: "binned", Removed: true},
	{ID: 4, Text: "done and binned", Checked: true, Removed: true},
}

func ids(items []Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFilterApply(t *testing.T) {
	cases := []struct {
		filter Filter
		want   []int64
	}{
		{FilterAll, []int64{1, 2}},
		{FilterChecked, []int64{2}},
		{FilterUnchecked, []int64{1}},
		{FilterRemoved, []int64{3, 4}},
		{Filter("bogus"), []int64{1, 2, 3, 4}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ids(tc.filter.Apply(sample)), "filter=%s", tc.filter)
	}
}

func TestFilterChecked_NeverShowsRemoved(t *testing.T) {
	for _, it := range FilterChecked.Apply(sample) {
		assert.False(t, it.Removed, "id=%d", it.ID)
	}
}

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"":          FilterAll,
		"ALL":       FilterAll,
		"done":      FilterChecked,
		"pending":   FilterUnchecked,
		" trash ":   FilterRemoved,
		"unchecked": FilterUnchecked,
	}
	for in, want := range cases {
		got, err := ParseFilter(in)
		require.NoError(t, err, "input=%q", in)
		assert.Equal(t, want, got, "input=%q", in)
	}

	_, err := ParseFilter("someday")
	assert.Error(t, err)
}

func TestFilterNext_Cycles(t *testing.T) {
	f := FilterAll
	seen := map[Filter]bool{}
	for range Filters {
		seen[f] = true
		f = f.Next()
	}
	assert.Equal(t, FilterAll, f)
	assert.Len(t, seen, len(Filters))
	assert.Equal(t, FilterAll, Filter("bogus").Next())
}

func TestCount(t *testing.T) {
	c := Count(sample)
	assert.Equal(t, Counts{Checked: 1, Unchecked: 1, Removed: 2}, c)
	assert.Equal(t, 2, c.Live())
}
