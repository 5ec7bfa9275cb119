package ui

import (
	"fmt"
	"strings"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending string
	BoxUnchecked, BoxChecked, BoxRemoved          string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	SymDone, SymUnchecked, SymRemoved             string

	plain bool // never emit escape codes
}

var current = classic()

// SetTheme switches the palette. Unknown names are an error and leave the
// current theme in place.
func SetTheme(name string) error {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m",
			BoxUnchecked: "◻", BoxChecked: "◼", BoxRemoved: "⊠",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymDone: "✔", SymUnchecked: "•", SymRemoved: "🗑",
		}
	case "mono":
		current = Theme{
			plain: true,
			BoxUnchecked: "[ ]", BoxChecked: "[x]", BoxRemoved: "[-]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymDone: "x", SymUnchecked: "-", SymRemoved: "~",
		}
	case "", "classic":
		current = classic()
	default:
		return fmt.Errorf("unknown theme %q", name)
	}
	return nil
}

func classic() Theme {
	return Theme{
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑", BoxRemoved: "☒",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: "✔", SymUnchecked: "•", SymRemoved: "✗",
	}
}

// Expose what renderers need
func Current() Theme { return current }
