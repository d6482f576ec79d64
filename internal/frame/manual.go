package frame

import (
	"sort"
	"time"
)

type task struct {
	id      uint64
	at      time.Time
	isFrame bool
	frameFn func(time.Time)
	fn      func()
}

// Manual is a virtual clock scheduler. Nothing runs until Advance is called,
// which makes gesture and animation timing fully deterministic.
type Manual struct {
	now    time.Time
	nextID uint64
	tasks  map[uint64]*task
}

// NewManual creates a manual scheduler starting at the given time
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:   start,
		tasks: make(map[uint64]*task),
	}
}

// Now returns the virtual time
func (m *Manual) Now() time.Time {
	return m.now
}

// RequestFrame schedules fn on the next frame boundary after now
func (m *Manual) RequestFrame(fn func(now time.Time)) Cancel {
	return m.add(&task{at: m.nextFrame(), isFrame: true, frameFn: fn})
}

// AfterFunc schedules fn after d of virtual time
func (m *Manual) AfterFunc(d time.Duration, fn func()) Cancel {
	if d < 0 {
		d = 0
	}
	return m.add(&task{at: m.now.Add(d), fn: fn})
}

// Advance moves the clock forward by d, running everything that becomes due
// in time order. Work scheduled by a callback runs in the same Advance if it
// falls inside the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		delete(m.tasks, t.id)
		if t.at.After(m.now) {
			m.now = t.at
		}
		if t.isFrame {
			t.frameFn(m.now)
		} else {
			t.fn()
		}
	}
	m.now = target
}

// Flush advances frame by frame until no work is pending or limit is reached.
// It returns the number of frames advanced.
func (m *Manual) Flush(limit int) int {
	n := 0
	for m.Pending() > 0 && n < limit {
		m.Advance(FrameInterval)
		n++
	}
	return n
}

// Pending returns the number of callbacks waiting to run
func (m *Manual) Pending() int {
	return len(m.tasks)
}

func (m *Manual) add(t *task) Cancel {
	m.nextID++
	t.id = m.nextID
	m.tasks[t.id] = t
	id := t.id
	return func() {
		delete(m.tasks, id)
	}
}

// nextFrame returns the first frame boundary strictly after now
func (m *Manual) nextFrame() time.Time {
	elapsed := m.now.UnixNano() % int64(FrameInterval)
	return m.now.Add(FrameInterval - time.Duration(elapsed))
}

// nextDue picks the earliest task due at or before target; ties run in
// scheduling order
func (m *Manual) nextDue(target time.Time) *task {
	due := make([]*task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if !t.at.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].at.Equal(due[j].at) {
			return due[i].at.Before(due[j].at)
		}
		return due[i].id < due[j].id
	})
	return due[0]
}
