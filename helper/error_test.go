package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	t.Run("Wraps original error with trace", func(t *testing.T) {
		original := errors.New("boom")
		err := NewError("index chunks", original)

		assert.EqualError(t, err, "index chunks: boom")
		assert.True(t, errors.Is(err, original), "Expected errors.Is to find the original error")

		var traced *Error
		assert.True(t, errors.As(err, &traced))
		assert.Equal(t, "index chunks", traced.Trace)
	})

	t.Run("Nil original returns nil", func(t *testing.T) {
		assert.NoError(t, NewError("noop", nil))
	})
}
