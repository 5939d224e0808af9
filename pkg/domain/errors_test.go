package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KindAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewError(KindTransport, "merge", "remote call failed", cause)

	t.Run("ラップされても Kind を取り出せる", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", err)
		assert.Equal(t, KindTransport, KindOf(wrapped))
		assert.True(t, IsKind(wrapped, KindTransport))
		assert.False(t, IsKind(wrapped, KindValidation))
	})

	t.Run("原因エラーまで辿れる", func(t *testing.T) {
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "merge: remote call failed: connection reset", err.Error())
	})

	t.Run("Kind なしのエラーは unknown", func(t *testing.T) {
		assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
		assert.False(t, IsKind(nil, KindUnknown))
	})
}
