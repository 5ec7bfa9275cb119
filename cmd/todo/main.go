package main

import (
	"context"
	"os"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/ui"
)

func main() {
	app := cli.NewApp()
	root := cli.NewRootCmd(app)

	err := root.ExecuteContext(context.Background())
	app.Close()
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
	}
	os.Exit(cli.ExitCode(err))
}
