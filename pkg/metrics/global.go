package metrics

import "sync"

var (
	globalOnce sync.Once
	global     *Metrics
)

// Global returns the process-wide metrics instance.
func Global() *Metrics {
	globalOnce.Do(func() { global = New() })
	return global
}
