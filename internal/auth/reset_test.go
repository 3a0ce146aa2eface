package auth

import (
	"context"
	"testing"
	"time"

	"MindTrace/pkg/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthBackend struct {
	forgotCalls int
	resetCalls  int
	resetErr    error
}

func (f *fakeAuthBackend) ForgotPassword(ctx context.Context, email string) error {
	f.forgotCalls++
	return nil
}

func (f *fakeAuthBackend) ResetPassword(ctx context.Context, token, newPassword string) error {
	f.resetCalls++
	return f.resetErr
}

func TestPasswordResetSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("mismatch stops before network", func(t *testing.T) {
		backend := &fakeAuthBackend{}
		r := NewPasswordReset(backend, nil)
		err := r.Submit(ctx, "tok", "abcdef", "abcdeg")
		require.Error(t, err)
		assert.Equal(t, "Passwords do not match", err.Error())
		assert.Zero(t, backend.resetCalls)
	})

	t.Run("short password stops before network", func(t *testing.T) {
		backend := &fakeAuthBackend{}
		r := NewPasswordReset(backend, nil)
		err := r.Submit(ctx, "tok", "abcde", "abcde")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 6 characters")
		assert.Zero(t, backend.resetCalls)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		backend := &fakeAuthBackend{}
		r := NewPasswordReset(backend, nil)
		require.Error(t, r.Submit(ctx, "", "abcdef", "abcdef"))
		assert.Zero(t, backend.resetCalls)
	})

	t.Run("valid submission reaches backend", func(t *testing.T) {
		backend := &fakeAuthBackend{}
		notices := notification.NewCenter(time.Minute)
		r := NewPasswordReset(backend, notices)
		require.NoError(t, r.Submit(ctx, "tok", "abcdef", "abcdef"))
		assert.Equal(t, 1, backend.resetCalls)
		require.Len(t, notices.Active(), 1)
		assert.Equal(t, notification.LevelSuccess, notices.Active()[0].Level)
	})
}

func TestPasswordResetRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid email rejected locally", func(t *testing.T) {
		backend := &fakeAuthBackend{}
		r := NewPasswordReset(backend, nil)
		require.Error(t, r.Request(ctx, "not-an-email"))
		assert.Zero(t, backend.forgotCalls)
	})

	t.Run("valid email forwarded", func(t *testing.T) {
		backend := &fakeAuthBackend{}
		r := NewPasswordReset(backend, nil)
		require.NoError(t, r.Request(ctx, "ada@example.com"))
		assert.Equal(t, 1, backend.forgotCalls)
	})
}
