package app_test

import (
	"testing"
	"time"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

func TestActiveWindowBoundsInclusive(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	quiz := &domain.Quiz{Status: domain.QuizPublished, StartTime: start, EndTime: end}

	cases := []struct {
		now  time.Time
		want bool
	}{
		{start.Add(-time.Second), false},
		{start, true},
		{start.Add(30 * time.Minute), true},
		{end, true},
		{end.Add(time.Second), false},
	}
	for _, tc := range cases {
		if got := app.Active(quiz, tc.now); got != tc.want {
			t.Fatalf("Active at %v = %v, want %v", tc.now, got, tc.want)
		}
	}
}

func TestActiveRequiresPublished(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	quiz := &domain.Quiz{
		Status:    domain.QuizDraft,
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
	}
	if app.Active(quiz, now) {
		t.Fatal("a draft quiz must not be active inside its window")
	}
	quiz.Status = domain.QuizArchived
	if app.Active(quiz, now) {
		t.Fatal("an archived quiz must not be active inside its window")
	}
}

func TestStartedAndEnded(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	event := &domain.Event{Status: domain.EventActive, StartDate: start, EndDate: end}

	if app.HasStarted(event, start.Add(-time.Minute)) {
		t.Fatal("not started before the window")
	}
	if !app.HasStarted(event, start) {
		t.Fatal("started at the boundary")
	}
	if app.HasEnded(event, end) {
		t.Fatal("not ended at the end boundary")
	}
	if !app.HasEnded(event, end.Add(time.Second)) {
		t.Fatal("ended after the window")
	}
}
