package ui

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/charmbracelet/glamour"
)

// Markdown renders rows as a GitHub-style task list under a heading.
func Markdown(title string, rows []Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(rows) == 0 {
		b.WriteString("_no items_\n")
		return b.String()
	}
	for _, r := range rows {
		box := "[ ]"
		if r.Item.Checked {
			box = "[x]"
		}
		text := escapeMarkdown(r.Item.Text)
		if r.Item.Removed {
			text = "~~" + text + "~~"
		}
		fmt.Fprintf(&b, "- %s %s\n", box, text)
	}
	return b.String()
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "~", `\~`, "#", `\#`,
)

func escapeMarkdown(s string) string { return mdEscaper.Replace(s) }

// RenderMarkdown styles md for the terminal. tty=false selects the plain
// "notty" style so pipes get no escape codes.
func RenderMarkdown(md string, width int, tty bool) (string, error) {
	if width <= 0 {
		width = 80
	}
	style := glamour.WithStandardStyle("notty")
	if tty && !disableColor && !current.plain {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// CountsLine summarises c for the markdown footer and plain output.
func CountsLine(c model.Counts) string {
	return fmt.Sprintf("%d done, %d pending, %d in trash", c.Checked, c.Unchecked, c.Removed)
}
