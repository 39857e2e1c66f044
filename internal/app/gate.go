package app

import "time"

// Schedule is anything with a participation window and a live status.
// Quizzes are live when published, events when active.
type Schedule interface {
	Window() (start, end time.Time)
	Live() bool
}

// Active reports whether the entity is open for participation at now.
// Status gates before the time window: a draft quiz inside its window is
// still closed.
func Active(s Schedule, now time.Time) bool {
	if !s.Live() {
		return false
	}
	start, end := s.Window()
	return !now.Before(start) && !now.After(end)
}

// HasStarted reports whether now is at or past the start of the window.
func HasStarted(s Schedule, now time.Time) bool {
	start, _ := s.Window()
	return !now.Before(start)
}

// HasEnded reports whether now is strictly past the end of the window.
func HasEnded(s Schedule, now time.Time) bool {
	_, end := s.Window()
	return now.After(end)
}
