package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/sokinpui/asmfix/asmfix"
	"github.com/sokinpui/asmfix/cli"
	"github.com/sokinpui/asmfix/internal/errors"
	"github.com/sokinpui/asmfix/internal/logging"
	"github.com/sokinpui/asmfix/internal/tui"
	"github.com/sokinpui/asmfix/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := cli.ParseFlags()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		ui.Error("%v", err)
		return 1
	}

	if cfg.TUI && !ui.IsTerminal(os.Stderr) {
		ui.Warning("--tui needs a terminal on stderr, falling back to plain output.")
		cfg.TUI = false
	}
	cfg.Quiet = cfg.TUI

	app, err := asmfix.New(cfg, logging.New(cfg.Verbose))
	if err != nil {
		ui.Error("Failed to initialize application: %v", err)
		return 1
	}
	defer app.Close()

	if cfg.TUI {
		return runTUI(app)
	}

	summary, err := app.Execute()
	if cfg.Verbose || cfg.DryRun || cfg.KeepGoing || cfg.Revert || cfg.Redo {
		ui.PrintSummary(summary)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.ErrorWithStackTrace(err))
		return 1
	}
	return 0
}

func runTUI(app *asmfix.App) int {
	model := tui.New(app)
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	model.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		ui.Error("Error running program: %v", err)
		return 1
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return 1
	}
	return 0
}
