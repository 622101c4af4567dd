package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapAndClassify(t *testing.T) {
	t.Run("wrap nil returns nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		base := New(CodeInviteExpired, "invite has expired")
		wrapped := fmt.Errorf("accept: %w", base)

		assert.True(t, HasCode(wrapped, CodeInviteExpired))
		assert.Equal(t, CodeInviteExpired, CodeOf(wrapped))
	})

	t.Run("wrapped cause stays reachable", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeInternal, "failed to load customer")

		require.ErrorIs(t, err, cause)
		assert.Equal(t, "failed to load customer: connection refused", err.Error())
	})

	t.Run("plain errors classify as internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
		assert.False(t, Is(errors.New("boom"), CodeNotFound))
	})
}
