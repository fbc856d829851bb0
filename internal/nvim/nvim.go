package nvim

import (
	"errors"
	"fmt"
	"os"

	"github.com/neovim/go-client/nvim"
)

// AddressEnv names the socket of a running Neovim.
const AddressEnv = "NVIM_LISTEN_ADDRESS"

// ErrNoInstance is returned when no running Neovim is advertised.
var ErrNoInstance = errors.New(AddressEnv + " is not set")

// ReloadBuffers asks the running Neovim to re-read buffers whose files
// changed on disk.
func ReloadBuffers() error {
	addr := os.Getenv(AddressEnv)
	if addr == "" {
		return ErrNoInstance
	}
	return ReloadBuffersAt(addr)
}

// ReloadBuffersAt is ReloadBuffers for an explicit socket address.
func ReloadBuffersAt(addr string) error {
	v, err := nvim.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to nvim at %s: %w", addr, err)
	}
	defer v.Close()

	if err := v.Command("checktime"); err != nil {
		return fmt.Errorf("checktime failed: %w", err)
	}
	return nil
}
