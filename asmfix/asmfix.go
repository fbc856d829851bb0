package asmfix

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/sokinpui/asmfix/cli"
	"github.com/sokinpui/asmfix/internal/errors"
	"github.com/sokinpui/asmfix/internal/fs"
	"github.com/sokinpui/asmfix/internal/normalize"
	"github.com/sokinpui/asmfix/internal/nvim"
	"github.com/sokinpui/asmfix/internal/source"
	"github.com/sokinpui/asmfix/internal/state"
	"github.com/sokinpui/asmfix/internal/ui"
	"github.com/sokinpui/asmfix/model"
)

// ProgressUpdate is a callback function to report progress.
type ProgressUpdate func(current, total int)

// App orchestrates the entire application logic.
type App struct {
	cfg              *cli.Config
	dir              string
	opts             normalize.Options
	writer           fs.Writer
	exclude          []glob.Glob
	stateManager     *state.Manager
	sourceProvider   *source.SourceProvider
	log              *logrus.Logger
	stdout           io.Writer
	progressCallback ProgressUpdate
}

// New creates a new App instance. The fixture directory is resolved here,
// once; nothing below depends on the process working directory.
func New(cfg *cli.Config, logger *logrus.Logger) (*App, error) {
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("invalid directory '%s': %w", cfg.Dir, err)
	}
	exclude, err := fs.CompileGlobs(cfg.Exclude)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:  cfg,
		dir:  dir,
		opts: normalize.Options{Strip: cfg.Strip, Format: cfg.AsmFmt},
		writer: fs.Writer{
			Atomic: cfg.Atomic,
			Backup: cfg.Backup,
		},
		exclude:        exclude,
		sourceProvider: source.New(),
		log:            logger,
		stdout:         os.Stdout,
	}

	if cfg.Record || cfg.Revert || cfg.Redo {
		a.stateManager, err = state.New(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize state manager: %w", err)
		}
	}
	return a, nil
}

// Close releases the history lock, if one was taken.
func (a *App) Close() error {
	if a.stateManager == nil {
		return nil
	}
	return a.stateManager.Close()
}

// SetOutput redirects the list of processed fixtures and filter output.
func (a *App) SetOutput(w io.Writer) {
	a.stdout = w
}

// SetSource replaces the provider used by filter mode.
func (a *App) SetSource(sp *source.SourceProvider) {
	a.sourceProvider = sp
}

// SetProgressCallback sets a function to be called for progress updates.
func (a *App) SetProgressCallback(cb ProgressUpdate) {
	a.progressCallback = cb
}

// Execute executes the main application logic based on parsed flags.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Recover(r)
		}
	}()

	switch {
	case a.cfg.Revert:
		return a.revertLastOperation()
	case a.cfg.Redo:
		return a.redoLastOperation()
	case a.cfg.Filter:
		return a.filterContent()
	default:
		return a.processFixtures()
	}
}

// processFixtures rewrites every fixture of the directory in listing order.
// Without KeepGoing the first failure stops the batch; fixtures already
// written stay written.
func (a *App) processFixtures() (model.Summary, error) {
	names, err := fs.ListFixtures(a.dir, a.cfg.Extension, a.exclude)
	if err != nil {
		return model.Summary{}, errors.WithStackTrace(err)
	}

	summary := model.Summary{DryRun: a.cfg.DryRun}
	if len(names) == 0 {
		summary.Message = fmt.Sprintf("No %s fixtures found in %s.", a.cfg.Extension, a.dir)
		return summary, nil
	}
	a.log.WithField("dir", a.dir).Debugf("found %d fixture(s)", len(names))

	total := len(names)
	a.reportProgress(0, total)

	var ops []state.Operation
	var errs *multierror.Error
	for i, name := range names {
		if !a.cfg.Quiet {
			fmt.Fprintln(a.stdout, name)
		}

		result, op := a.processFile(name)
		summary.Add(result)
		if op != nil {
			ops = append(ops, *op)
		}
		a.reportProgress(i+1, total)

		if result.Err != nil {
			if !a.cfg.KeepGoing {
				a.record(ops)
				return summary, errors.WithStackTrace(result.Err)
			}
			errs = multierror.Append(errs, result.Err)
		}
	}

	a.record(ops)
	if a.cfg.ReloadBuffers && !a.cfg.DryRun && len(summary.Modified) > 0 {
		if err := nvim.ReloadBuffers(); err != nil {
			ui.Warning("Could not reload Neovim buffers: %v", err)
		}
	}
	return summary, errs.ErrorOrNil()
}

// processFile reads, normalizes and writes back a single fixture. The file
// is written even when normalization changes nothing.
func (a *App) processFile(name string) (model.FileResult, *state.Operation) {
	path := filepath.Join(a.dir, name)
	logger := a.log.WithField("file", name)

	original, err := os.ReadFile(path)
	if err != nil {
		return failed(name, fmt.Errorf("could not read '%s': %w", name, err)), nil
	}

	normalized, err := normalize.Text(original, a.opts)
	if err != nil {
		return failed(name, fmt.Errorf("could not normalize '%s': %w", name, err)), nil
	}
	changed := !bytes.Equal(original, normalized)
	result := model.FileResult{Name: name, Lines: normalize.Lines(normalized)}

	if a.cfg.DryRun {
		result.Status = model.StatusUnchanged
		if changed {
			result.Status = model.StatusWouldModify
		}
		logger.Debugf("dry run: %s", result.Status)
		return result, nil
	}

	var op *state.Operation
	if changed && a.cfg.Record {
		op, err = a.snapshot(name, original, normalized)
		if err != nil {
			return failed(name, err), nil
		}
	}

	backup, err := a.writer.Write(path, original, normalized)
	if err != nil {
		return failed(name, fmt.Errorf("could not write '%s': %w", name, err)), nil
	}

	result.Backup = backup
	result.Status = model.StatusUnchanged
	if changed {
		result.Status = model.StatusModified
	}
	logger.Debugf("%s (%d lines)", result.Status, result.Lines)
	return result, op
}

func failed(name string, err error) model.FileResult {
	return model.FileResult{Name: name, Status: model.StatusFailed, Err: err}
}

// snapshot stores both versions of a fixture so the run can be reverted.
func (a *App) snapshot(name string, before, after []byte) (*state.Operation, error) {
	beforeHash, err := a.stateManager.Store(before)
	if err != nil {
		return nil, err
	}
	afterHash, err := a.stateManager.Store(after)
	if err != nil {
		return nil, err
	}
	return &state.Operation{Path: name, BeforeHash: beforeHash, AfterHash: afterHash}, nil
}

func (a *App) record(ops []state.Operation) {
	if a.stateManager == nil || len(ops) == 0 {
		return
	}
	if err := a.stateManager.Write(ops); err != nil {
		ui.Warning("Could not record this run, revert will not be available: %v", err)
	}
}

func (a *App) reportProgress(current, total int) {
	if a.progressCallback != nil {
		a.progressCallback(current, total)
	}
}

// filterContent normalizes stdin or the clipboard and prints the result.
func (a *App) filterContent() (model.Summary, error) {
	content, err := a.sourceProvider.GetContent()
	if err != nil {
		return model.Summary{}, err
	}
	if content == "" {
		return model.Summary{Message: "Source is empty. Nothing to process."}, nil
	}

	out, err := normalize.Text([]byte(content), a.opts)
	if err != nil {
		return model.Summary{}, errors.WithStackTrace(err)
	}
	if _, err := a.stdout.Write(out); err != nil {
		return model.Summary{}, err
	}
	return model.Summary{}, nil
}

// revertLastOperation restores the content fixtures had before the last recorded run.
func (a *App) revertLastOperation() (model.Summary, error) {
	ops, err := a.stateManager.GetOperationsToRevert()
	if errors.Is(err, state.ErrNothingToRevert) {
		return model.Summary{Message: "No operation to revert."}, nil
	}
	if err != nil {
		return model.Summary{}, err
	}

	message := "Reverted last operation."
	if a.cfg.DryRun {
		message = "Dry run: last operation would be reverted."
	}
	return a.replay(ops, false, message, a.stateManager.CommitRevert)
}

// redoLastOperation re-applies the last reverted run.
func (a *App) redoLastOperation() (model.Summary, error) {
	ops, err := a.stateManager.GetOperationsToRedo()
	if errors.Is(err, state.ErrNothingToRedo) {
		return model.Summary{Message: "No operation to redo."}, nil
	}
	if err != nil {
		return model.Summary{}, err
	}

	message := "Redid last reverted operation."
	if a.cfg.DryRun {
		message = "Dry run: last reverted operation would be redone."
	}
	return a.replay(ops, true, message, a.stateManager.CommitRedo)
}

// replay restores every fixture of a history entry, to its "after" content
// when forward is set and to its "before" content otherwise. The history
// pointer moves through commit only when at least one fixture was written.
func (a *App) replay(ops []state.Operation, forward bool, message string, commit func() error) (model.Summary, error) {
	summary := model.Summary{DryRun: a.cfg.DryRun, Message: message}
	var errs *multierror.Error

	for _, op := range ops {
		expected, target := op.AfterHash, op.BeforeHash
		if forward {
			expected, target = op.BeforeHash, op.AfterHash
		}

		result := a.restore(op.Path, expected, target)
		summary.Add(result)
		if result.Err != nil {
			errs = multierror.Append(errs, result.Err)
		}
	}

	if !a.cfg.DryRun && len(summary.Modified) > 0 {
		if err := commit(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return summary, errs.ErrorOrNil()
}

// restore replaces a fixture whose content still hashes to expected with
// the stored content of target. A fixture edited since is left alone, and
// a dry run stops before writing.
func (a *App) restore(name, expected, target string) model.FileResult {
	path := filepath.Join(a.dir, name)

	current, err := os.ReadFile(path)
	if err != nil {
		return failed(name, err)
	}
	if fs.HashBytes(current) != expected {
		return failed(name, fmt.Errorf("'%s': %w", name, state.ErrHashMismatch))
	}

	data, err := a.stateManager.Load(target)
	if err != nil {
		return failed(name, err)
	}
	result := model.FileResult{
		Name:   name,
		Status: model.StatusModified,
		Lines:  normalize.Lines(data),
	}

	if a.cfg.DryRun {
		result.Status = model.StatusWouldModify
		return result
	}

	result.Backup, err = a.writer.Write(path, current, data)
	if err != nil {
		return failed(name, err)
	}
	return result
}
