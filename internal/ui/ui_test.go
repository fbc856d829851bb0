package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/sokinpui/asmfix/model"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevNoColor := Output, color.NoColor
	Output, color.NoColor = &buf, true
	t.Cleanup(func() {
		Output, color.NoColor = prevOut, prevNoColor
	})
	return &buf
}

func TestPrintSummary(t *testing.T) {
	buf := captureOutput(t)

	var s model.Summary
	s.Add(model.FileResult{Name: "a.asm", Status: model.StatusModified})
	s.Add(model.FileResult{Name: "b.asm", Status: model.StatusUnchanged})
	s.Add(model.FileResult{Name: "c.asm", Status: model.StatusFailed, Err: errors.New("permission denied")})
	PrintSummary(s)

	out := buf.String()
	assert.Contains(t, out, "Rewrote 1 file(s):\n  - a.asm\n")
	assert.Contains(t, out, "1 file(s) already normalized:\n  - b.asm\n")
	assert.Contains(t, out, "  - c.asm: permission denied\n")
}

func TestPrintSummaryDryRun(t *testing.T) {
	buf := captureOutput(t)

	s := model.Summary{DryRun: true}
	s.Add(model.FileResult{Name: "a.asm", Status: model.StatusWouldModify})
	PrintSummary(s)

	assert.Contains(t, buf.String(), "Would rewrite 1 file(s):")
}

func TestPrintSummaryEmpty(t *testing.T) {
	buf := captureOutput(t)
	PrintSummary(model.Summary{})
	assert.Contains(t, buf.String(), "No fixtures were processed.")
}

func TestPath(t *testing.T) {
	buf := captureOutput(t)
	Path("- %s", "a.asm")
	assert.Equal(t, "  - a.asm\n", buf.String())
}
