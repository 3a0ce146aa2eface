package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeLifecycle(t *testing.T) {
	t.Run("success auto-clears", func(t *testing.T) {
		c := NewCenter(20 * time.Millisecond)
		c.Success("Profile updated")
		require.Len(t, c.Active(), 1)

		assert.Eventually(t, func() bool { return len(c.Active()) == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("errors persist", func(t *testing.T) {
		c := NewCenter(20 * time.Millisecond)
		c.Error("Something went wrong")
		time.Sleep(60 * time.Millisecond)
		require.Len(t, c.Active(), 1)
		assert.Equal(t, LevelError, c.Active()[0].Level)
	})

	t.Run("new error replaces the old one", func(t *testing.T) {
		c := NewCenter(time.Minute)
		c.Error("first")
		c.Error("second")
		active := c.Active()
		require.Len(t, active, 1)
		assert.Equal(t, "second", active[0].Message)
	})

	t.Run("dismiss removes a notice", func(t *testing.T) {
		c := NewCenter(time.Minute)
		id := c.Error("oops")
		c.Dismiss(id)
		assert.Empty(t, c.Active())
	})

	t.Run("clear errors keeps successes", func(t *testing.T) {
		c := NewCenter(time.Minute)
		c.Error("oops")
		c.Success("saved")
		c.ClearErrors()
		active := c.Active()
		require.Len(t, active, 1)
		assert.Equal(t, LevelSuccess, active[0].Level)
	})
}

func TestSubscribe(t *testing.T) {
	c := NewCenter(time.Minute)
	ch := c.Subscribe()
	c.Success("saved")

	select {
	case n := <-ch:
		assert.Equal(t, "saved", n.Message)
		assert.Equal(t, LevelSuccess, n.Level)
	case <-time.After(time.Second):
		t.Fatal("no notice delivered")
	}
}
