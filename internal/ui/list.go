package ui

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
)

// Row is an item with its 1-based position in the full list. Positions do
// not shift when a filter hides neighbours, so they can be used as refs.
type Row struct {
	Pos  int
	Item model.Item
}

// Rows applies f to items and keeps each survivor's position.
func Rows(items []model.Item, f model.Filter) []Row {
	var out []Row
	for i, it := range items {
		if f.Keep(it) {
			out = append(out, Row{Pos: i + 1, Item: it})
		}
	}
	return out
}

const maxTextWidth = 80

// Header is the title line with live counts.
func Header(f model.Filter, c model.Counts) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		C(t.Title, f.Title()),
		C(t.Success, t.SymDone), c.Checked,
		C(t.Pending, t.SymUnchecked), c.Unchecked,
		C(t.Muted, t.SymRemoved), c.Removed,
	)
}

// ItemLines renders one line per row.
func ItemLines(rows []Row) []string {
	t := Current()
	if len(rows) == 0 {
		return []string{C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		box, color := t.BoxUnchecked, t.Muted
		switch {
		case r.Item.Removed:
			box, color = t.BoxRemoved, t.Error
		case r.Item.Checked:
			box, color = t.BoxChecked, t.Success
		}
		text := r.Item.Text
		if runes := []rune(text); len(runes) > maxTextWidth {
			text = string(runes[:maxTextWidth-3]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			C(dim, fmt.Sprintf("%2d.", r.Pos)), C(color, box), text,
			C(t.Muted, fmt.Sprintf("(%d)", r.Item.ID))))
	}
	return out
}

// GroupLines splits rows into Pending and Done sections.
func GroupLines(rows []Row) []string {
	t := Current()
	var pend, done []Row
	for _, r := range rows {
		if r.Item.Checked {
			done = append(done, r)
		} else {
			pend = append(pend, r)
		}
	}
	var lines []string
	lines = append(lines, C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, C(t.Muted, "(none)"))
	} else {
		lines = append(lines, ItemLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, C(t.Muted, "(none)"))
	} else {
		lines = append(lines, ItemLines(done)...)
	}
	return lines
}
