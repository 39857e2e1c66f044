package app_test

import (
	"testing"
	"time"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

func TestApplyAnswerRecomputesCounters(t *testing.T) {
	now := time.Now()
	p := &domain.Participation{Status: domain.ParticipationInProgress, StartTime: now}

	key1 := domain.AnswerKey{QuestionID: "q1", Type: domain.MultipleChoice, CorrectAnswer: "4", Marks: 2}
	key2 := domain.AnswerKey{QuestionID: "q2", Type: domain.MultipleChoice, CorrectAnswer: "blue", Marks: 2}

	app.ApplyAnswer(p, key1, "q1", "4", now)
	app.ApplyAnswer(p, key2, "q2", "red", now)

	if p.AttemptedQuestions != 2 || p.CorrectAnswers != 1 || p.WrongAnswers != 1 {
		t.Fatalf("unexpected counters: %+v", p)
	}
	if p.ObtainedMarks != 2 {
		t.Fatalf("expected 2 obtained marks, got %v", p.ObtainedMarks)
	}
}

func TestApplyAnswerOverwritesResubmission(t *testing.T) {
	now := time.Now()
	p := &domain.Participation{Status: domain.ParticipationInProgress, StartTime: now}
	key := domain.AnswerKey{QuestionID: "q1", Type: domain.MultipleChoice, CorrectAnswer: "4", Marks: 2}

	if correct, _ := app.ApplyAnswer(p, key, "q1", "3", now); correct {
		t.Fatal("first submission should be wrong")
	}
	if correct, _ := app.ApplyAnswer(p, key, "q1", "4", now.Add(time.Second)); !correct {
		t.Fatal("second submission should be correct")
	}

	if len(p.Answers) != 1 {
		t.Fatalf("resubmission must overwrite, got %d answers", len(p.Answers))
	}
	if p.AttemptedQuestions != 1 || p.CorrectAnswers != 1 || p.WrongAnswers != 0 {
		t.Fatalf("counters not recomputed after overwrite: %+v", p)
	}
	if p.ObtainedMarks != 2 {
		t.Fatalf("expected 2 obtained marks, got %v", p.ObtainedMarks)
	}
}

func TestFinalizeStampsAndTotals(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(95 * time.Second)
	p := &domain.Participation{
		Status:    domain.ParticipationInProgress,
		StartTime: start,
		Answers: []domain.Answer{
			{QuestionID: "q1", IsCorrect: true, MarksObtained: 2},
			{QuestionID: "q2", IsCorrect: false, MarksObtained: 0.5},
		},
	}

	app.Finalize(p, end)

	if p.Status != domain.ParticipationCompleted {
		t.Fatalf("expected completed, got %s", p.Status)
	}
	if p.EndTime == nil || !p.EndTime.Equal(end) || p.SubmittedAt == nil || !p.SubmittedAt.Equal(end) {
		t.Fatal("end timestamps not stamped")
	}
	if p.TimeSpent != 95 {
		t.Fatalf("expected 95s spent, got %d", p.TimeSpent)
	}
	if p.TotalMarks != 2.5 {
		t.Fatalf("expected total 2.5, got %v", p.TotalMarks)
	}
}
