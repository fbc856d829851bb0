package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.Add(FileResult{Name: "a.asm", Status: StatusModified})
	s.Add(FileResult{Name: "b.asm", Status: StatusUnchanged})
	s.Add(FileResult{Name: "c.asm", Status: StatusFailed, Err: errors.New("denied")})
	s.Add(FileResult{Name: "d.asm", Status: StatusWouldModify})

	assert.Equal(t, []string{"a.asm", "d.asm"}, s.Modified)
	assert.Equal(t, []string{"b.asm"}, s.Unchanged)
	assert.Equal(t, []string{"c.asm"}, s.Failed)
	assert.Len(t, s.Results, 4)
	assert.Equal(t, "would modify", StatusWouldModify.String())
}
