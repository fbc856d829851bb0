package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestListFixtures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.asm", "")
	writeFile(t, dir, "a.asm", "")
	writeFile(t, dir, "foo.txt", "")
	writeFile(t, dir, "foo.asmx", "")
	writeFile(t, dir, "a.asm.bak", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.asm"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	writeFile(t, filepath.Join(dir, "sub"), "nested.asm", "")

	names, err := ListFixtures(dir, ".asm", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.asm", "b.asm", "dir.asm"}, names)
}

func TestListFixturesExclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.asm", "")
	writeFile(t, dir, "gen_1.asm", "")
	writeFile(t, dir, "gen_2.asm", "")

	globs, err := CompileGlobs([]string{"gen_*"})
	require.NoError(t, err)

	names, err := ListFixtures(dir, ".asm", globs)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.asm"}, names)
}

func TestListFixturesMissingDir(t *testing.T) {
	_, err := ListFixtures(filepath.Join(t.TempDir(), "missing"), ".asm", nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompileGlobsInvalid(t *testing.T) {
	_, err := CompileGlobs([]string{"[unterminated"})
	assert.Error(t, err)
}

func TestWriter(t *testing.T) {
	tests := []struct {
		name   string
		writer Writer
	}{
		{"direct", Writer{}},
		{"atomic", Writer{Atomic: true}},
		{"direct with backup", Writer{Backup: true}},
		{"atomic with backup", Writer{Atomic: true, Backup: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "a.asm", "  OLD $1  \n")
			require.NoError(t, os.Chmod(path, 0600))

			backup, err := tc.writer.Write(path, []byte("  OLD $1  \n"), []byte("NEW 1\n"))
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "NEW 1\n", string(data))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

			if tc.writer.Backup {
				assert.Equal(t, path+BackupSuffix, backup)
				old, err := os.ReadFile(backup)
				require.NoError(t, err)
				assert.Equal(t, "  OLD $1  \n", string(old))
			} else {
				assert.Empty(t, backup)
				assert.NoFileExists(t, path+BackupSuffix)
			}

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			for _, e := range entries {
				assert.NotContains(t, e.Name(), ".tmp-")
			}
		})
	}
}

func TestWriterTruncates(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.asm", "a much longer original body\n")
	_, err := Writer{}.Write(path, nil, []byte("x"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestHashBytes(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashBytes(nil))
	assert.NotEqual(t, HashBytes([]byte("NOP\n")), HashBytes([]byte("NOP")))
}
