package cli

import (
	"context"
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/spf13/cobra"
)

type listOptions struct {
	filter   string
	group    bool
	markdown bool
}

func newListCmd(app *App) *cobra.Command {
	var opt listOptions

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("filter") {
				opt.filter = app.Config.UI.Filter
			}
			return app.doList(cmd.Context(), opt)
		},
	}

	cmd.Flags().StringVarP(&opt.filter, "filter", "f", "all", "view: all, checked, unchecked or removed")
	cmd.Flags().BoolVar(&opt.group, "group", false, "group output by pending/done")
	cmd.Flags().BoolVar(&opt.markdown, "markdown", false, "print the view as a markdown checklist")

	return cmd
}

func (a *App) doList(ctx context.Context, opt listOptions) error {
	f, err := model.ParseFilter(opt.filter)
	if err != nil {
		return usageError{err}
	}
	return a.withStore(ctx, func(st *todo.Store) error {
		st.SetFilter(f)
		snap := st.Snapshot()
		rows := ui.Rows(snap.Items, f)

		if opt.markdown {
			md := ui.Markdown(f.Title(), rows) + "\n" + ui.CountsLine(snap.Counts) + "\n"
			out, err := ui.RenderMarkdown(md, 80, ui.IsTerminal(a.Out))
			if err != nil {
				return err
			}
			fmt.Fprint(a.Out, out)
			return nil
		}

		t := ui.Current()
		c := snap.Counts
		lines := []string{
			ui.Header(f, c),
			ui.C(t.Muted, ui.ProgressBar(c.Checked, c.Live(), 28)),
			"",
		}
		if opt.group {
			lines = append(lines, ui.GroupLines(rows)...)
		} else {
			lines = append(lines, ui.ItemLines(rows)...)
		}
		lines = append(lines, "", ui.C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
		ui.Panel(a.Out, lines)
		return nil
	})
}
