package nvim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReloadBuffersWithoutInstance(t *testing.T) {
	t.Setenv(AddressEnv, "")
	assert.ErrorIs(t, ReloadBuffers(), ErrNoInstance)
}

func TestReloadBuffersUnreachable(t *testing.T) {
	err := ReloadBuffersAt(filepath.Join(t.TempDir(), "nvim.sock"))
	assert.ErrorContains(t, err, "failed to connect to nvim")
}
