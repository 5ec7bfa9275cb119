package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
	"go.uber.org/zap"
)

// App carries everything commands need. Fields left nil are filled from
// config on the first command; tests preset them.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Backend store.Backend

	Out io.Writer
	Err io.Writer

	// Interactive reports whether the TUI and confirmation prompts may be used.
	Interactive func() bool
	// RunTUI opens the interactive list.
	RunTUI func(*todo.Store) error
	// Confirm asks a yes/no question.
	Confirm func(title string) (bool, error)

	flags globalFlags
}

type globalFlags struct {
	configPath string
	dataPath   string
	driver     string
	theme      string
	verbose    bool
}

// NewApp returns an App wired to the real terminal.
func NewApp() *App {
	return &App{
		Out: os.Stdout,
		Err: os.Stderr,
		Interactive: func() bool {
			return ui.IsTerminal(os.Stdout) && ui.IsTerminal(os.Stdin)
		},
		RunTUI:  tui.Run,
		Confirm: confirmPrompt,
	}
}

// setup loads config, logger and backend unless already present.
func (a *App) setup() error {
	dir, err := config.Dir()
	if err != nil && a.Config == nil {
		return err
	}
	if a.Config == nil {
		path := a.flags.configPath
		if path == "" {
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		cfg, err := config.Load(path, dir)
		if err != nil {
			return err
		}
		cfg.ApplyEnv(dir)
		a.Config = cfg
	}

	cfg := a.Config
	if a.flags.driver != "" {
		cfg.SetDriver(a.flags.driver, dir)
	}
	if a.flags.dataPath != "" {
		cfg.Storage.Path = a.flags.dataPath
	}
	if a.flags.theme != "" {
		cfg.UI.Theme = a.flags.theme
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	if err := ui.SetTheme(cfg.UI.Theme); err != nil {
		return usageError{err}
	}

	if a.Logger == nil {
		logger, err := logging.New(cfg.Logging, a.flags.verbose)
		if err != nil {
			return err
		}
		a.Logger = logger
	}
	if a.Backend == nil {
		b, err := store.Open(cfg.Storage)
		if err != nil {
			return err
		}
		a.Backend = b
		a.Logger.Debug("storage opened",
			zap.String("driver", cfg.Storage.Driver),
			zap.String("path", cfg.Storage.Path))
	}
	return nil
}

// Close releases the backend and flushes the logger.
func (a *App) Close() {
	if a.Backend != nil {
		if err := a.Backend.Close(); err != nil && a.Logger != nil {
			a.Logger.Warn("closing storage", zap.Error(err))
		}
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}

// openStore hydrates a store from the backend. Callers must Close it.
func (a *App) openStore(ctx context.Context) *todo.Store {
	f, err := model.ParseFilter(a.Config.UI.Filter)
	if err != nil {
		a.Logger.Warn("ignoring ui.filter", zap.Error(err))
		f = model.FilterAll
	}
	repo := store.NewRepository(a.Backend, a.Config.Storage.Key)
	return todo.Open(ctx, repo, todo.WithLogger(a.Logger), todo.WithFilter(f))
}

// withStore opens a store, runs fn and closes the store so the last write lands.
func (a *App) withStore(ctx context.Context, fn func(*todo.Store) error) error {
	st := a.openStore(ctx)
	err := fn(st)
	if cerr := st.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("closing store: %w", cerr)
	}
	return err
}
