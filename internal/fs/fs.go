package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// BackupSuffix is appended to a fixture's name to form its backup copy.
const BackupSuffix = ".bak"

// CompileGlobs compiles exclude patterns matched against entry names.
func CompileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// ListFixtures returns the names of the immediate entries of dir whose name
// ends with suffix, in directory listing order. Subdirectories are not
// walked, and a directory whose own name ends with suffix is still listed.
func ListFixtures(dir, suffix string, exclude []glob.Glob) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not list directory '%s': %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, suffix) || isExcluded(name, exclude) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func isExcluded(name string, exclude []glob.Glob) bool {
	for _, g := range exclude {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// HashBytes returns the hex SHA-256 digest of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Writer replaces file contents on disk.
type Writer struct {
	// Atomic writes a temporary file next to the target and renames it over
	// the original instead of truncating the original in place.
	Atomic bool
	// Backup keeps the previous content in "<name>.bak" before writing.
	Backup bool
}

// Write replaces the content of path with data. original is the content
// being replaced and is only used for the backup copy. It returns the
// backup path, or "" when no backup was taken.
func (w Writer) Write(path string, original, data []byte) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	perm := info.Mode().Perm()

	var backupPath string
	if w.Backup {
		backupPath = path + BackupSuffix
		if err := os.WriteFile(backupPath, original, perm); err != nil {
			return "", fmt.Errorf("could not write backup '%s': %w", backupPath, err)
		}
	}

	if w.Atomic {
		err = writeAtomic(path, data, perm)
	} else {
		err = os.WriteFile(path, data, perm)
	}
	return backupPath, err
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temp file for '%s': %w", path, err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	committed = true
	return nil
}
