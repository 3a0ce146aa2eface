package scheduler

import (
	"context"
	"math/rand"
	"time"
)

type Job interface{ Run(ctx context.Context) }

type FuncJob func(ctx context.Context)

func (f FuncJob) Run(ctx context.Context) { f(ctx) }

type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

func (s *Scheduler) Stop() { s.cancel() }

func (s *Scheduler) Every(d time.Duration, job Job) { go s.loopEvery(d, job) }

func (s *Scheduler) OnceAfter(d time.Duration, job Job) { go s.onceAfter(d, job) }

func (s *Scheduler) loopEvery(d time.Duration, job Job) {
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-t.C:
			job.Run(s.ctx)
		}
	}
}

func (s *Scheduler) onceAfter(d time.Duration, job Job) {
	select {
	case <-s.ctx.Done():
		return
	case <-time.After(d):
		job.Run(s.ctx)
	}
}

// PollJob runs once per tick and reports whether the tick succeeded.
type PollJob func(ctx context.Context) bool

// Poll runs job at base intervals with up to 10% jitter. Consecutive
// failures double the wait up to max; the first success snaps back to
// base. Blocks until ctx is cancelled.
func Poll(ctx context.Context, base, max time.Duration, job PollJob) {
	if max < base {
		max = base
	}
	wait := base
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(jittered(wait)):
		}
		if job(ctx) {
			wait = base
			continue
		}
		wait *= 2
		if wait > max {
			wait = max
		}
	}
}

func jittered(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	spread := int64(d / 10)
	if spread == 0 {
		return d
	}
	return d + time.Duration(rand.Int63n(2*spread)-spread)
}
