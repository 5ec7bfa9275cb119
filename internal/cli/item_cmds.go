package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a new item (text can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.doAdd(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit REF TEXT...",
		Short: "Replace the text of an item",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.doEdit(cmd.Context(), args[0], strings.Join(args[1:], " "))
		},
	}
}

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "check REF",
		Aliases: []string{"done"},
		Short:   "Toggle the checked mark of an item",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.doToggle(cmd.Context(), args[0])
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm REF",
		Aliases: []string{"restore"},
		Short:   "Move an item to the trash, or restore it",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.doRemove(cmd.Context(), args[0])
		},
	}
}

func newEmptyCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "empty",
		Short: "Permanently delete every item in the trash",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.doEmpty(cmd.Context(), yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// -------------- subcommand impls ----------------

func (a *App) doAdd(ctx context.Context, text string) error {
	return a.withStore(ctx, func(st *todo.Store) error {
		it, ok := st.Add(text)
		if !ok {
			return usagef("add: empty text")
		}
		ui.OK(a.Out, fmt.Sprintf("added %q (%d)", it.Text, it.ID))
		return nil
	})
}

func (a *App) doEdit(ctx context.Context, ref, text string) error {
	return a.withStore(ctx, func(st *todo.Store) error {
		id, err := resolveRef(st.Items(), ref)
		if err != nil {
			return err
		}
		if !st.Edit(id, text) {
			a.noMatch(ref)
			return nil
		}
		ui.OK(a.Out, "edited")
		return nil
	})
}

func (a *App) doToggle(ctx context.Context, ref string) error {
	return a.withStore(ctx, func(st *todo.Store) error {
		id, err := resolveRef(st.Items(), ref)
		if err != nil {
			return err
		}
		if !st.ToggleChecked(id) {
			a.noMatch(ref)
			return nil
		}
		if it, _ := st.Item(id); it.Checked {
			ui.OK(a.Out, "checked")
		} else {
			ui.OK(a.Out, "unchecked")
		}
		return nil
	})
}

func (a *App) doRemove(ctx context.Context, ref string) error {
	return a.withStore(ctx, func(st *todo.Store) error {
		id, err := resolveRef(st.Items(), ref)
		if err != nil {
			return err
		}
		if !st.ToggleRemoved(id) {
			a.noMatch(ref)
			return nil
		}
		if it, _ := st.Item(id); it.Removed {
			ui.OK(a.Out, "moved to trash")
		} else {
			ui.OK(a.Out, "restored")
		}
		return nil
	})
}

func (a *App) doEmpty(ctx context.Context, yes bool) error {
	return a.withStore(ctx, func(st *todo.Store) error {
		n := st.Counts().Removed
		if n == 0 {
			ui.Note(a.Out, "trash is empty")
			return nil
		}
		if !yes {
			if !a.Interactive() {
				return usagef("empty: refusing to delete %d item(s) without --yes", n)
			}
			ok, err := a.Confirm(fmt.Sprintf("Permanently delete %d item(s) in the trash?", n))
			if err != nil {
				return fmt.Errorf("confirm: %w", err)
			}
			if !ok {
				ui.Note(a.Out, "trash kept")
				return nil
			}
		}
		ui.OK(a.Out, fmt.Sprintf("deleted %d item(s)", st.EmptyRemoved()))
		return nil
	})
}

func (a *App) noMatch(ref string) {
	ui.Note(a.Out, fmt.Sprintf("no item %s, nothing changed", ref))
	ui.Note(a.Out, "Hint: run `todo ls` to see positions and ids")
}
