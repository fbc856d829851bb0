package errors

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithStackTrace(t *testing.T) {
	assert.Nil(t, WithStackTrace(nil))

	err := WithStackTrace(fs.ErrPermission)
	assert.True(t, Is(err, fs.ErrPermission))
	assert.Contains(t, ErrorWithStackTrace(err), "errors_test.go")

	assert.Same(t, err, WithStackTrace(err))
}

func TestErrorWithStackTracePlain(t *testing.T) {
	assert.Equal(t, "boom", ErrorWithStackTrace(fmt.Errorf("boom")))
	assert.Equal(t, "", ErrorWithStackTrace(nil))
}

func TestRecover(t *testing.T) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = Recover(r)
			}
		}()
		panic("bad fixture")
	}()
	assert.EqualError(t, err, "internal panic: bad fixture")
}
