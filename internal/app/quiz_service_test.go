package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
	"quiz-contest-service/internal/infra/memory"
)

func newQuizService() (*app.QuizService, *memory.ParticipationRepository) {
	participations := memory.NewParticipationRepository()
	return app.NewQuizService(memory.NewQuizRepository(), memory.NewQuestionRepository(), participations), participations
}

func quizInput() app.CreateQuizInput {
	now := time.Now()
	return app.CreateQuizInput{
		Title:          "Weekly Round",
		Instructions:   "Answer every question.",
		Duration:       30,
		TotalQuestions: 10,
		StartTime:      now.Add(time.Hour),
		EndTime:        now.Add(2 * time.Hour),
	}
}

func TestQuizCreateDefaults(t *testing.T) {
	ctx := context.Background()
	service, _ := newQuizService()

	quiz, err := service.Create(ctx, "admin-1", quizInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if quiz.Status != domain.QuizDraft {
		t.Fatalf("new quizzes start as drafts, got %s", quiz.Status)
	}
	if quiz.MarksPerQuestion != 1 || quiz.QuestionsPerPage != 1 {
		t.Fatalf("unexpected defaults: %+v", quiz)
	}
	if !quiz.ShuffleQuestions || !quiz.IsPublic || !quiz.ShowResults {
		t.Fatalf("boolean defaults not applied: %+v", quiz)
	}
	if quiz.CreatedBy != "admin-1" {
		t.Fatalf("creator not recorded: %s", quiz.CreatedBy)
	}
	if quiz.TotalMarks() != 10 {
		t.Fatalf("expected total marks 10, got %v", quiz.TotalMarks())
	}
}

func TestQuizCreateRejectsInvertedWindow(t *testing.T) {
	ctx := context.Background()
	service, _ := newQuizService()

	in := quizInput()
	in.EndTime = in.StartTime.Add(-time.Minute)
	_, err := service.Create(ctx, "admin-1", in)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["endTime"]; !ok {
		t.Fatalf("expected endTime failure, got %v", verr.Fields)
	}
}

func TestQuizUpdateAllowList(t *testing.T) {
	ctx := context.Background()
	service, _ := newQuizService()

	quiz, err := service.Create(ctx, "admin-1", quizInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	published := domain.QuizPublished
	title := "Weekly Round 2"
	updated, err := service.Update(ctx, quiz.ID, &domain.QuizUpdate{Status: &published, Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.QuizPublished || updated.Title != "Weekly Round 2" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.CreatedBy != "admin-1" {
		t.Fatal("creator must survive updates")
	}

	badEnd := quiz.StartTime.Add(-time.Hour)
	if _, err := service.Update(ctx, quiz.ID, &domain.QuizUpdate{EndTime: &badEnd}); err == nil {
		t.Fatal("expected rejection of inverted window on update")
	}
}

func TestQuizStats(t *testing.T) {
	ctx := context.Background()
	service, participations := newQuizService()

	quiz, err := service.Create(ctx, "admin-1", quizInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rows := []*domain.Participation{
		{UserID: "u1", QuizID: quiz.ID, Status: domain.ParticipationCompleted, ObtainedMarks: 8},
		{UserID: "u2", QuizID: quiz.ID, Status: domain.ParticipationCompleted, ObtainedMarks: 4},
		{UserID: "u3", QuizID: quiz.ID, Status: domain.ParticipationInProgress, ObtainedMarks: 2},
	}
	for _, p := range rows {
		if err := participations.Create(ctx, p); err != nil {
			t.Fatalf("seed participation: %v", err)
		}
	}

	stats, err := service.Stats(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalParticipants != 3 || stats.Completed != 2 || stats.InProgress != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.AverageScore != 6 || stats.HighestScore != 8 || stats.LowestScore != 4 {
		t.Fatalf("unexpected score aggregates: %+v", stats)
	}
}

func TestQuizDeleteMissing(t *testing.T) {
	ctx := context.Background()
	service, _ := newQuizService()
	if err := service.Delete(ctx, "missing"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz-not-found, got %v", err)
	}
}
