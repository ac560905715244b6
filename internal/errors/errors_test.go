package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codeError struct {
	code string
}

func (e *codeError) Error() string {
	return e.code
}

func TestWrapKeepsChain(t *testing.T) {
	base := New("connection refused")

	wrapped := Wrap(base, "failed to ping PostgreSQL")

	require.Error(t, wrapped)
	assert.Equal(t, "failed to ping PostgreSQL: connection refused", wrapped.Error())
	assert.True(t, Is(wrapped, base))
	assert.Contains(t, fmt.Sprintf("%+v", wrapped), "TestWrapKeepsChain")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, WithStack(nil))
}

func TestAsFindsTypedError(t *testing.T) {
	err := WithStack(Wrap(&codeError{code: "23505"}, "insert account"))

	var target *codeError
	require.True(t, As(err, &target))
	assert.Equal(t, "23505", target.code)
}
