// File: utils/scheduler.go
package utils

import (
	"sync"
	"time"
)

// Task is a cancellable handle to a scheduled callback. Every timer in the
// app goes through a Task so owners can tear down uniformly: a screen that
// is navigated away from cancels its tasks, and a cancelled task never
// fires again. Cancel is idempotent and safe from any goroutine.
type Task struct {
	mu       sync.Mutex
	timer    *time.Timer
	stop     chan struct{}
	canceled bool
	onDone   func()
}

// Cancel stops the task. A pending one-shot callback that has not started
// yet will not run; a repeating task stops ticking.
func (t *Task) Cancel() {
	t.mu.Lock()
	if t.canceled {
		t.mu.Unlock()
		return
	}
	t.canceled = true
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.stop != nil {
		close(t.stop)
	}
	t.mu.Unlock()
	if t.onDone != nil {
		t.onDone()
	}
}

func (t *Task) isCanceled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canceled
}

// Scheduler creates tasks and remembers them so an owner can cancel the
// whole set at once.
type Scheduler struct {
	mu    sync.Mutex
	tasks []*Task
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) track(t *Task) *Task {
	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()
	return t
}

// forget drops a finished task so the tracked set does not grow for the
// lifetime of the scheduler.
func (s *Scheduler) forget(t *Task) {
	s.mu.Lock()
	for i, cur := range s.tasks {
		if cur == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
}

// After runs fn once after d unless the task is cancelled first.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	t := &Task{}
	t.onDone = func() { s.forget(t) }
	t.timer = time.AfterFunc(d, func() {
		defer s.forget(t)
		if t.isCanceled() {
			return
		}
		fn()
	})
	return s.track(t)
}

// Every runs fn once per interval until the task is cancelled.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Task {
	t := &Task{stop: make(chan struct{})}
	t.onDone = func() { s.forget(t) }
	go func() {
		defer s.forget(t)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				if t.isCanceled() {
					return
				}
				fn()
			}
		}
	}()
	return s.track(t)
}

// CancelAll cancels every task created through this scheduler.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()
	for _, t := range tasks {
		t.Cancel()
	}
}
