package cli

import (
	"fmt"

	"github.com/sokinpui/asmfix/internal/fs"
)

// Validate rejects contradictory or unusable settings.
func Validate(cfg *Config) error {
	if cfg.Extension == "" {
		return fmt.Errorf("error: --ext must not be empty")
	}
	if cfg.Dir == "" {
		return fmt.Errorf("error: --dir must not be empty")
	}
	if cfg.Revert && cfg.Redo {
		return fmt.Errorf("error: --revert and --redo are mutually exclusive")
	}
	if cfg.Filter && (cfg.Revert || cfg.Redo) {
		return fmt.Errorf("error: --filter cannot be combined with --revert or --redo")
	}
	if cfg.Filter && cfg.TUI {
		return fmt.Errorf("error: --filter cannot be combined with --tui")
	}
	if _, err := fs.CompileGlobs(cfg.Exclude); err != nil {
		return fmt.Errorf("error: %w", err)
	}
	return nil
}
