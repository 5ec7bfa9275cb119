package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "todo" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "A tiny to-do list with a trash can",
		Long: `todo keeps a list of short to-do items.

Run without arguments to open the interactive list. When output is not a
terminal the list is printed instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Interactive() {
				return app.doList(cmd.Context(), listOptions{filter: app.Config.UI.Filter})
			}
			return app.withStore(cmd.Context(), app.RunTUI)
		},
	}
	root.SetOut(app.Out)
	root.SetErr(app.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&app.flags.configPath, "config", "", "config file (default ~/.tada/config.yaml)")
	pf.StringVar(&app.flags.dataPath, "data", "", "storage file (overrides storage.path)")
	pf.StringVar(&app.flags.driver, "driver", "", "storage driver: json, sqlite, redis or memory")
	pf.StringVar(&app.flags.theme, "theme", "", "colour theme: classic, neon or mono")
	pf.BoolVarP(&app.flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newListCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newCheckCmd(app),
		newRemoveCmd(app),
		newEmptyCmd(app),
		newConfigCmd(app),
	)
	return root
}

// usageArgs wraps a cobra positional-args validator so failures exit 2.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usagef("%s\nusage: %s", err, cmd.UseLine())
		}
		return nil
	}
}
