package schedule

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler arms in-process reminder timers. Nothing survives a restart;
// reminders are best-effort by contract.
type Scheduler struct {
	log *zap.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// NewScheduler returns a ready Scheduler.
func NewScheduler(log *zap.Logger) *Scheduler {
	return &Scheduler{log: log, timers: make(map[string]*time.Timer)}
}

// Arm schedules fire at the given time, replacing any pending timer with the
// same key. Times in the past fire immediately.
func (s *Scheduler) Arm(key string, at time.Time, fire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if old, ok := s.timers[key]; ok {
		old.Stop()
	}

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}
	s.timers[key] = time.AfterFunc(delay, func() {
		fire()
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()
	})
	s.log.Info("reminder armed", zap.String("key", key), zap.Time("at", at))
}

// Pending returns the number of armed reminders.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close stops every pending timer. Arm becomes a no-op afterwards.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}
