package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrKeyLoad, "could not load key")
	assert.Equal(t, errors.ErrKeyLoad, err.Code)
	assert.Equal(t, "[KEY_LOAD] could not load key", err.Error())
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("permission denied")
	err := errors.Wrap(inner, errors.ErrFileAccess, "reading key file")

	require.NotNil(t, err)
	assert.Equal(t, "[FILE_ACCESS] reading key file: permission denied", err.Error())
	assert.Equal(t, inner, stderrors.Unwrap(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "should be nil"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "should be %s", "nil"))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrAgentUnreachable, "no agent at %s", "/tmp/sock")
	wrapped := fmt.Errorf("outer: %w", err)

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrAgentUnreachable))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrKeyLoad))
	assert.False(t, errors.IsErrorCode(fmt.Errorf("plain"), errors.ErrAgentUnreachable))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrStepFailed, errors.GetErrorCode(errors.New(errors.ErrStepFailed, "boom")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(fmt.Errorf("plain")))
}

func TestErrorsIs(t *testing.T) {
	a := errors.New(errors.ErrKeyLoad, "first")
	b := errors.New(errors.ErrKeyLoad, "second")
	c := errors.New(errors.ErrKeyParse, "other")

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrKeyLoad, "could not load key").
		WithDetail("path", "/home/user/.ssh/id_rsa")
	assert.Equal(t, "/home/user/.ssh/id_rsa", err.Details["path"])
}
