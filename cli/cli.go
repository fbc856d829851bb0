package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/sokinpui/asmfix/internal/normalize"
)

const (
	DefaultDir       = "."
	DefaultExtension = ".asm"
)

// Config holds all the command-line flag values.
type Config struct {
	Dir           string   `yaml:"-"`
	Extension     string   `yaml:"extension"`
	Strip         string   `yaml:"strip"`
	Exclude       []string `yaml:"exclude"`
	DryRun        bool     `yaml:"dry_run"`
	Backup        bool     `yaml:"backup"`
	Atomic        bool     `yaml:"atomic"`
	KeepGoing     bool     `yaml:"keep_going"`
	Record        bool     `yaml:"record"`
	AsmFmt        bool     `yaml:"asmfmt"`
	ReloadBuffers bool     `yaml:"reload_buffers"`

	Revert     bool   `yaml:"-"`
	Redo       bool   `yaml:"-"`
	Filter     bool   `yaml:"-"`
	TUI        bool   `yaml:"-"`
	Verbose    bool   `yaml:"-"`
	ConfigPath string `yaml:"-"`

	// Quiet suppresses the stdout list of processed fixtures.
	Quiet bool `yaml:"-"`
}

// Defaults returns the configuration used when no flag or file overrides it.
func Defaults() *Config {
	return &Config{
		Dir:       DefaultDir,
		Extension: DefaultExtension,
		Strip:     normalize.DefaultStrip,
	}
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses args, merges the config file if one is found and
// validates the result.
func ParseArgs(args []string) (*Config, error) {
	cfg := Defaults()
	flags := pflag.NewFlagSet("asmfix", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.StringVarP(&cfg.Dir, "dir", "d", cfg.Dir, "Directory holding the fixtures (not searched recursively).")
	flags.StringVarP(&cfg.Extension, "ext", "e", cfg.Extension, "Only rewrite entries whose name ends with this extension.")
	flags.StringVar(&cfg.Strip, "strip", cfg.Strip, "Characters removed from every fixture. Empty disables stripping.")
	flags.StringSliceVarP(&cfg.Exclude, "exclude", "x", nil, "Skip entries whose name matches this glob (repeatable).")
	flags.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Report what would change without writing anything.")
	flags.BoolVarP(&cfg.Backup, "backup", "b", false, "Keep a .bak copy of every rewritten fixture.")
	flags.BoolVarP(&cfg.Atomic, "atomic", "a", false, "Write to a temp file and rename it over the fixture.")
	flags.BoolVarP(&cfg.KeepGoing, "keep-going", "k", false, "Continue after a failing fixture and report all failures at the end.")
	flags.BoolVar(&cfg.Record, "record", false, "Record the run so it can be reverted.")
	flags.BoolVar(&cfg.AsmFmt, "asmfmt", false, "Format the result with asmfmt (Go assembler syntax only).")
	flags.BoolVar(&cfg.ReloadBuffers, "reload-buffers", false, "Ask the Neovim at $NVIM_LISTEN_ADDRESS to reload rewritten buffers.")
	flags.BoolVar(&cfg.Filter, "filter", false, "Normalize stdin (or the clipboard) to stdout instead of rewriting files.")
	flags.BoolVar(&cfg.TUI, "tui", false, "Show progress and summary in an interactive view.")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Print the run summary and debug logs.")
	flags.StringVarP(&cfg.ConfigPath, "config", "c", "", "Config file (default: <dir>/.asmfix.yaml when present).")

	// Mutually exclusive history group
	flags.BoolVarP(&cfg.Revert, "revert", "r", false, "Revert the last recorded run.")
	flags.BoolVarP(&cfg.Redo, "redo", "R", false, "Redo the last reverted run.")

	flags.Usage = func() {
		fmt.Println("Usage: asmfix [flags]")
		fmt.Println("\nTrim every line of the *.asm fixtures in a directory and strip '$' characters, in place.")
		fmt.Println("\nExample: asmfix -d testdata --backup")
		fmt.Println("\nFlags:")
		fmt.Print(flags.FlagUsages())
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := mergeConfigFile(cfg, flags); err != nil {
		return nil, err
	}

	// Normalize extension
	if len(cfg.Extension) > 0 && cfg.Extension[0] != '.' {
		cfg.Extension = "." + cfg.Extension
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
