package apperr

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSample = &Error{
	Message: "unknown task: %s",
}

func TestFmtMatchesSentinel(t *testing.T) {
	err := errSample.Fmt("abc")

	assert.Equal(t, "unknown task: abc", err.Error())
	assert.ErrorIs(t, err, errSample)
}

func TestWrap(t *testing.T) {
	err := errSample.Fmt("abc").Wrap(io.EOF)

	assert.Equal(t, "unknown task: abc: EOF", err.Error())
	assert.ErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, err, errSample)
	assert.False(t, errors.Is(err, &Error{Message: "other"}))
}
