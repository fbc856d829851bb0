package asmfix

import (
	"fmt"
	"io"

	"github.com/sokinpui/asmfix/cli"
	"github.com/sokinpui/asmfix/internal/logging"
	"github.com/sokinpui/asmfix/internal/normalize"
)

// Config for using asmfix as a library.
type Config struct {
	// Extension selects the fixtures to rewrite. Defaults to ".asm".
	Extension string
	// Strip lists the characters to remove. Defaults to "$"; use Keep to strip nothing.
	Strip string
	// Keep disables stripping entirely.
	Keep bool
	// Exclude skips entries matching any of these globs.
	Exclude []string
	// Preview changes without writing them.
	DryRun bool
	// Keep a .bak copy of every rewritten fixture.
	Backup bool
	// Write through a temp file and rename.
	Atomic bool
	// Process every fixture even after a failure.
	KeepGoing bool
}

// Normalize rewrites the fixtures in dir and returns a summary of the
// operations in a map. Nothing is printed.
func Normalize(dir string, config Config) (map[string][]string, error) {
	cliCfg := cli.Defaults()
	cliCfg.Dir = dir
	cliCfg.Exclude = config.Exclude
	cliCfg.DryRun = config.DryRun
	cliCfg.Backup = config.Backup
	cliCfg.Atomic = config.Atomic
	cliCfg.KeepGoing = config.KeepGoing
	cliCfg.Quiet = true
	if config.Extension != "" {
		cliCfg.Extension = config.Extension
		if cliCfg.Extension[0] != '.' {
			cliCfg.Extension = "." + cliCfg.Extension
		}
	}
	if config.Strip != "" {
		cliCfg.Strip = config.Strip
	}
	if config.Keep {
		cliCfg.Strip = ""
	}

	if err := cli.Validate(cliCfg); err != nil {
		return nil, err
	}

	app, err := New(cliCfg, logging.NewWithOutput(io.Discard, false))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize asmfix: %w", err)
	}
	defer app.Close()

	summary, err := app.Execute()
	result := map[string][]string{
		"Modified":  summary.Modified,
		"Unchanged": summary.Unchanged,
		"Failed":    summary.Failed,
	}
	return result, err
}

// NormalizeText applies the fixture rewrite to a single text.
func NormalizeText(content string) (string, error) {
	out, err := normalize.Text([]byte(content), normalize.Options{Strip: normalize.DefaultStrip})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
