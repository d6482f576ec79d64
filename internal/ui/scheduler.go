package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scrollgrip/internal/frame"
)

// teaScheduler drives engine frames and timers through the bubbletea event
// loop so every callback runs inside Update
type teaScheduler struct {
	clock func() time.Time

	frames     []*frameRequest
	frameArmed bool

	timers map[uint64]*timer
	nextID uint64

	pending []tea.Cmd
}

type timer struct {
	due time.Time
	fn  func()
}

type frameRequest struct {
	fn       func(now time.Time)
	canceled bool
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{
		clock:  time.Now,
		timers: make(map[uint64]*timer),
	}
}

func (s *teaScheduler) Now() time.Time {
	return s.clock()
}

func (s *teaScheduler) RequestFrame(fn func(now time.Time)) frame.Cancel {
	req := &frameRequest{fn: fn}
	s.frames = append(s.frames, req)
	if !s.frameArmed {
		s.frameArmed = true
		s.pending = append(s.pending, tea.Tick(frame.FrameInterval, func(t time.Time) tea.Msg {
			return frameMsg(t)
		}))
	}
	return func() { req.canceled = true }
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) frame.Cancel {
	s.nextID++
	id := s.nextID
	s.timers[id] = &timer{due: s.clock().Add(d), fn: fn}
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
	return func() { delete(s.timers, id) }
}

// Handle runs the callbacks a scheduler message is due for. It reports false
// for messages the scheduler does not own.
func (s *teaScheduler) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case frameMsg:
		s.frameArmed = false
		batch := s.frames
		s.frames = nil
		for _, req := range batch {
			if !req.canceled {
				req.fn(time.Time(msg))
			}
		}
		return true
	case timerMsg:
		t, ok := s.timers[msg.id]
		if ok {
			delete(s.timers, msg.id)
			t.fn()
		}
		return true
	}
	return false
}

// Cmd drains the ticks scheduled since the last call
func (s *teaScheduler) Cmd() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Idle reports whether no frame or timer is outstanding
func (s *teaScheduler) Idle() bool {
	return len(s.frames) == 0 && len(s.timers) == 0
}
