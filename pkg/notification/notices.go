package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice is one user-facing feedback item. Success notices auto-clear
// after the configured TTL; error notices stay until dismissed or replaced
// by the next action.
type Notice struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Created time.Time `json:"created"`
}

// Center holds the currently visible notices and fans new ones out to
// subscribers.
type Center struct {
	mu         sync.Mutex
	successTTL time.Duration
	notices    map[string]Notice
	timers     map[string]*time.Timer
	subs       []chan Notice
}

func NewCenter(successTTL time.Duration) *Center {
	if successTTL <= 0 {
		successTTL = 4 * time.Second
	}
	return &Center{
		successTTL: successTTL,
		notices:    make(map[string]Notice),
		timers:     make(map[string]*time.Timer),
	}
}

// Subscribe returns a channel receiving every pushed notice. Slow
// subscribers drop pushes rather than block the caller.
func (c *Center) Subscribe() <-chan Notice {
	ch := make(chan Notice, 16)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

func (c *Center) Success(message string) string { return c.push(LevelSuccess, message) }
func (c *Center) Info(message string) string    { return c.push(LevelInfo, message) }

// Errorf replaces any existing error notice; only the latest failure is
// shown.
func (c *Center) Error(message string) string {
	c.mu.Lock()
	for id, n := range c.notices {
		if n.Level == LevelError {
			c.removeLocked(id)
		}
	}
	c.mu.Unlock()
	return c.push(LevelError, message)
}

func (c *Center) push(level Level, message string) string {
	n := Notice{ID: uuid.NewString(), Level: level, Message: message, Created: time.Now()}
	c.mu.Lock()
	c.notices[n.ID] = n
	if level != LevelError {
		id := n.ID
		c.timers[id] = time.AfterFunc(c.successTTL, func() { c.Dismiss(id) })
	}
	subs := make([]chan Notice, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- n:
		default:
		}
	}
	return n.ID
}

func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	c.removeLocked(id)
	c.mu.Unlock()
}

// ClearErrors removes error notices, called when a new user action starts.
func (c *Center) ClearErrors() {
	c.mu.Lock()
	for id, n := range c.notices {
		if n.Level == LevelError {
			c.removeLocked(id)
		}
	}
	c.mu.Unlock()
}

func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, 0, len(c.notices))
	for _, n := range c.notices {
		out = append(out, n)
	}
	return out
}

func (c *Center) removeLocked(id string) {
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	delete(c.notices, id)
}
