package suika

import (
	"sort"
	"time"
)

// Task is a deferred callback on a Scheduler.
type Task struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
	fired     bool
}

// Cancel prevents the task from firing. Safe to call repeatedly and on nil.
func (t *Task) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Pending reports whether the task will still fire.
func (t *Task) Pending() bool {
	return t != nil && !t.cancelled && !t.fired
}

// Due returns the clock time at which the task fires.
func (t *Task) Due() time.Duration {
	return t.due
}

// Scheduler runs callbacks against a simulated monotonic clock. Tasks fire
// from Advance, never concurrently with the game step.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	tasks []*Task
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current simulated time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once the clock has advanced by d.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Task{due: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d and fires every task that is due,
// earliest first. Tasks scheduled by a firing task run in the same call
// when they are already due. Returns the number of tasks fired.
func (s *Scheduler) Advance(d time.Duration) int {
	if d > 0 {
		s.now += d
	}

	fired := 0
	for {
		t := s.popDue()
		if t == nil {
			return fired
		}
		t.fired = true
		fired++
		t.fn()
	}
}

func (s *Scheduler) popDue() *Task {
	s.compact()
	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	head := s.tasks[0]
	if head.due > s.now {
		return nil
	}
	s.tasks = s.tasks[1:]
	return head
}

// compact drops cancelled tasks.
func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Pending() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// Pending returns how many tasks are still waiting.
func (s *Scheduler) Pending() int {
	s.compact()
	return len(s.tasks)
}

// CancelAll cancels every waiting task. The clock is not rewound.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.Cancel()
	}
	s.tasks = nil
}
