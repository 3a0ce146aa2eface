package util

import "sync"

// SignalHandler receives the emitting object plus signal-specific params.
type SignalHandler func(sender any, params ...any)

// Signals is a process-scoped signal bus. Handlers run synchronously in
// emit order; anything slow should spawn its own goroutine.
type Signals struct {
	mu       sync.RWMutex
	handlers map[string][]SignalHandler
}

var (
	sigOnce sync.Once
	sigBus  *Signals
)

// Sig returns the global signal bus.
func Sig() *Signals {
	sigOnce.Do(func() {
		sigBus = &Signals{handlers: make(map[string][]SignalHandler)}
	})
	return sigBus
}

func (s *Signals) Connect(name string, h SignalHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[name] = append(s.handlers[name], h)
}

func (s *Signals) Emit(name string, sender any, params ...any) {
	s.mu.RLock()
	hs := make([]SignalHandler, len(s.handlers[name]))
	copy(hs, s.handlers[name])
	s.mu.RUnlock()
	for _, h := range hs {
		h(sender, params...)
	}
}

// Disconnect removes every handler for the named signal. Mostly for tests.
func (s *Signals) Disconnect(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handlers, name)
}
