package model

// Item is the domain model for a todo entry.
// Removed is a soft delete: the item stays in the list until the trash is emptied.
type Item struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
	Removed bool   `json:"removed"`
}

// Counts summarises a list for headers and progress bars.
type Counts struct {
	Checked   int // checked and not removed
	Unchecked int // not checked and not removed
	Removed   int
}

// Live is the number of items that are not in the trash.
func (c Counts) Live() int { return c.Checked + c.Unchecked }

// Count tallies items by state.
func Count(items []Item) Counts {
	var c Counts
	for _, it := range items {
		switch {
		case it.Removed:
			c.Removed++
		case it.Checked:
			c.Checked++
		default:
			c.Unchecked++
		}
	}
	return c
}
