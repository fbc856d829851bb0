package source

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/asmfix/internal/ui"
)

func TestGetContentFromPipe(t *testing.T) {
	ui.Output = io.Discard
	t.Cleanup(func() { ui.Output = os.Stderr })

	path := filepath.Join(t.TempDir(), "in.asm")
	require.NoError(t, os.WriteFile(path, []byte("  MOV $1, $2  \n"), 0644))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	content, err := NewFrom(f).GetContent()
	require.NoError(t, err)
	assert.Equal(t, "  MOV $1, $2  \n", content)
}
