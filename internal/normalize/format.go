package normalize

import (
	"bytes"
	"fmt"

	"github.com/klauspost/asmfmt"
)

// Format runs content through asmfmt. Only Go assembler syntax is
// understood; other dialects may be rejected or reflowed.
func Format(content []byte) ([]byte, error) {
	out, err := asmfmt.Format(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("asmfmt failed: %w", err)
	}
	return out, nil
}
