package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/sokinpui/asmfix/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

// Output is where status lines go. Stdout is kept for fixture names.
var Output io.Writer = os.Stderr

func init() {
	color.NoColor = color.NoColor || !IsTerminal(os.Stderr)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(Output, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(Output, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(Output, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(Output, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(Output, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(Output, "  "+format+"\n", a...)
}

// --- Summaries ---

func PrintSummary(summary model.Summary) {
	Header("\n--- Fixture Summary ---")

	if summary.Message != "" {
		Info("%s", summary.Message)
	}

	if len(summary.Modified) == 0 && len(summary.Unchanged) == 0 && len(summary.Failed) == 0 {
		if summary.Message == "" {
			Info("No fixtures were processed.")
		}
		return
	}

	if len(summary.Modified) > 0 {
		verb := "Rewrote"
		if summary.DryRun {
			verb = "Would rewrite"
		}
		Success("%s %d file(s):", verb, len(summary.Modified))
		for _, f := range summary.Modified {
			Path("- %s", f)
		}
	}
	if len(summary.Unchanged) > 0 {
		Info("%d file(s) already normalized:", len(summary.Unchanged))
		for _, f := range summary.Unchanged {
			Path("- %s", f)
		}
	}
	if len(summary.Failed) > 0 {
		Error("Failed to process %d file(s):", len(summary.Failed))
		for _, r := range summary.Results {
			if r.Status == model.StatusFailed {
				Path("- %s: %v", r.Name, r.Err)
			}
		}
	}
}
