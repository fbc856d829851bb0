package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/sokinpui/asmfix/internal/fs"
)

const (
	stateDirName  = ".asmfix"
	stateFileName = "state.asmfix"
	lockFileName  = "state.lock"
	ObjectsDir    = "objects"
)

var (
	ErrNothingToRevert = errors.New("no operation to revert")
	ErrNothingToRedo   = errors.New("no operation to redo")
	ErrLocked          = errors.New("history is locked by another asmfix run")
	ErrHashMismatch    = errors.New("file changed since it was recorded")
)

// Operation records one fixture rewrite by the digests of its content
// before and after the run.
type Operation struct {
	Path       string
	BeforeHash string
	AfterHash  string
}

// HistoryEntry represents one complete run of the tool.
type HistoryEntry struct {
	Timestamp  int64
	Operations []Operation
}

// State represents the entire state file.
type State struct {
	History      []HistoryEntry
	CurrentIndex int
}

// Manager handles the lifecycle of the state file and the object store
// holding fixture contents.
type Manager struct {
	statePath string
	state     *State
	lock      *flock.Flock
	StateDir  string
}

// New opens the history kept under rootDir and takes its lock. Close must be
// called to release it.
func New(rootDir string) (*Manager, error) {
	if _, err := os.Stat(rootDir); err != nil {
		return nil, err
	}
	stateDir := filepath.Join(rootDir, stateDirName)
	if err := os.MkdirAll(filepath.Join(stateDir, ObjectsDir), 0755); err != nil {
		return nil, fmt.Errorf("could not create state directory: %w", err)
	}

	lock := flock.New(filepath.Join(stateDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("could not lock state directory: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	m := &Manager{
		statePath: filepath.Join(stateDir, stateFileName),
		lock:      lock,
		StateDir:  stateDir,
	}
	if err := m.load(); err != nil {
		lock.Unlock()
		return nil, err
	}
	return m, nil
}

// Close releases the history lock.
func (m *Manager) Close() error {
	return m.lock.Unlock()
}

func (m *Manager) load() error {
	m.state = &State{CurrentIndex: -1, History: []HistoryEntry{}}

	data, err := os.ReadFile(m.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	blocks := strings.Split(content, "\n\n")
	if len(blocks) == 0 || strings.TrimSpace(blocks[0]) == "" {
		return nil
	}

	// First block is current index
	index, err := strconv.Atoi(strings.TrimSpace(blocks[0]))
	if err != nil {
		return fmt.Errorf("invalid state file: could not parse current index: %w", err)
	}
	m.state.CurrentIndex = index

	for _, block := range blocks[1:] {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")

		ts, err := strconv.ParseInt(lines[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid state file: could not parse timestamp from '%s': %w", lines[0], err)
		}

		entry := HistoryEntry{Timestamp: ts}
		opLines := lines[1:]
		if len(opLines)%3 != 0 {
			return fmt.Errorf("invalid state file: incomplete operation record")
		}
		for i := 0; i < len(opLines); i += 3 {
			entry.Operations = append(entry.Operations, Operation{
				Path:       opLines[i],
				BeforeHash: opLines[i+1],
				AfterHash:  opLines[i+2],
			})
		}
		m.state.History = append(m.state.History, entry)
	}

	if m.state.CurrentIndex >= len(m.state.History) {
		return fmt.Errorf("invalid state file: index %d out of range", m.state.CurrentIndex)
	}
	return nil
}

func (m *Manager) save() error {
	blocks := []string{strconv.Itoa(m.state.CurrentIndex)}

	for _, entry := range m.state.History {
		lines := []string{strconv.FormatInt(entry.Timestamp, 10)}
		for _, op := range entry.Operations {
			lines = append(lines, op.Path, op.BeforeHash, op.AfterHash)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	content := strings.Join(blocks, "\n\n") + "\n"
	if err := os.WriteFile(m.statePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("could not write state file: %w", err)
	}
	return nil
}

// Store saves content in the object store and returns its digest.
func (m *Manager) Store(content []byte) (string, error) {
	hash := fs.HashBytes(content)
	path := m.objectPath(hash)
	if _, err := os.Stat(path); err == nil {
		return hash, nil
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("could not store object %s: %w", hash, err)
	}
	return hash, nil
}

// Load returns the content stored under hash.
func (m *Manager) Load(hash string) ([]byte, error) {
	data, err := os.ReadFile(m.objectPath(hash))
	if err != nil {
		return nil, fmt.Errorf("could not load object %s: %w", hash, err)
	}
	return data, nil
}

func (m *Manager) objectPath(hash string) string {
	return filepath.Join(m.StateDir, ObjectsDir, hash)
}

// Write adds a new set of operations to the history, discarding any
// entries that were reverted and not redone.
func (m *Manager) Write(operations []Operation) error {
	if len(operations) == 0 {
		return nil
	}
	if m.state.CurrentIndex < len(m.state.History)-1 {
		m.state.History = m.state.History[:m.state.CurrentIndex+1]
	}

	m.state.History = append(m.state.History, HistoryEntry{
		Timestamp:  time.Now().UTC().Unix(),
		Operations: operations,
	})
	m.state.CurrentIndex++
	return m.save()
}

// GetOperationsToRevert returns the operations of the current entry. The
// history pointer only moves on CommitRevert.
func (m *Manager) GetOperationsToRevert() ([]Operation, error) {
	if m.state.CurrentIndex < 0 {
		return nil, ErrNothingToRevert
	}
	return m.state.History[m.state.CurrentIndex].Operations, nil
}

// CommitRevert moves the history pointer back past the current entry.
func (m *Manager) CommitRevert() error {
	if m.state.CurrentIndex < 0 {
		return ErrNothingToRevert
	}
	m.state.CurrentIndex--
	return m.save()
}

// GetOperationsToRedo returns the operations of the next entry. The history
// pointer only moves on CommitRedo.
func (m *Manager) GetOperationsToRedo() ([]Operation, error) {
	nextIndex := m.state.CurrentIndex + 1
	if nextIndex >= len(m.state.History) {
		return nil, ErrNothingToRedo
	}
	return m.state.History[nextIndex].Operations, nil
}

// CommitRedo moves the history pointer forward to the next entry.
func (m *Manager) CommitRedo() error {
	if m.state.CurrentIndex+1 >= len(m.state.History) {
		return ErrNothingToRedo
	}
	m.state.CurrentIndex++
	return m.save()
}
