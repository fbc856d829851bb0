package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/asmfix/internal/ui"
)

// SourceProvider determines and retrieves the content for filter mode.
type SourceProvider struct {
	stdin *os.File
}

// New creates a SourceProvider reading the process stdin.
func New() *SourceProvider {
	return NewFrom(os.Stdin)
}

// NewFrom creates a SourceProvider reading from in when it is not a terminal.
func NewFrom(in *os.File) *SourceProvider {
	return &SourceProvider{stdin: in}
}

// GetContent retrieves content from stdin (if piped) or the clipboard.
func (sp *SourceProvider) GetContent() (string, error) {
	stat, err := sp.stdin.Stat()
	isPiped := err == nil && (stat.Mode()&os.ModeCharDevice) == 0

	if isPiped {
		ui.Header("--- Reading from stdin ---")
		content, err := io.ReadAll(sp.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), nil
	}

	ui.Header("--- Reading from clipboard ---")
	content, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		ui.Warning("Clipboard is empty. Nothing to process.")
		return "", nil
	}
	return content, nil
}
