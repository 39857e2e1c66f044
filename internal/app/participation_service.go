package app

import (
	"context"
	"errors"
	"log"
	"time"

	"quiz-contest-service/internal/domain"
)

// ParticipationService owns the attempt workflow: start, submit answers,
// complete, and the read paths around them.
type ParticipationService struct {
	participations ParticipationRepository
	quizzes        QuizRepository
	questions      QuestionRepository
	keys           AnswerKeySource
	board          *LeaderboardHub
	now            func() time.Time
}

func NewParticipationService(
	participations ParticipationRepository,
	quizzes QuizRepository,
	questions QuestionRepository,
	keys AnswerKeySource,
	board *LeaderboardHub,
) *ParticipationService {
	return NewParticipationServiceWithClock(participations, quizzes, questions, keys, board, time.Now)
}

// NewParticipationServiceWithClock is for deterministic timestamps in tests.
func NewParticipationServiceWithClock(
	participations ParticipationRepository,
	quizzes QuizRepository,
	questions QuestionRepository,
	keys AnswerKeySource,
	board *LeaderboardHub,
	now func() time.Time,
) *ParticipationService {
	return &ParticipationService{
		participations: participations,
		quizzes:        quizzes,
		questions:      questions,
		keys:           keys,
		board:          board,
		now:            now,
	}
}

// Start creates the one participation a user may hold for a quiz. The quiz
// must be open per the gate, and the existence lookup is only a best-effort
// pre-check: the unique (user, quiz) constraint at the storage layer decides
// the race, failing the second of two concurrent starts with a conflict.
func (s *ParticipationService) Start(ctx context.Context, userID, quizID string) (*domain.Participation, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !Active(quiz, now) {
		return nil, domain.ErrQuizNotActive
	}

	if existing, err := s.participations.GetByUserQuiz(ctx, userID, quizID); err == nil && existing != nil {
		return nil, domain.ErrDuplicateParticipation
	} else if err != nil && !errors.Is(err, domain.ErrParticipationNotFound) {
		return nil, err
	}

	total, err := s.questions.CountByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	remaining := quiz.Duration * 60
	p := &domain.Participation{
		UserID:         userID,
		QuizID:         quizID,
		StartTime:      now,
		Answers:        []domain.Answer{},
		TotalQuestions: total,
		Status:         domain.ParticipationInProgress,
		TimeRemaining:  &remaining,
	}
	if err := s.participations.Create(ctx, p); err != nil {
		return nil, err
	}

	s.publishStandings(ctx, quizID)
	return p, nil
}

// SubmitResult is the outcome of one answer submission.
type SubmitResult struct {
	IsCorrect     bool                        `json:"isCorrect"`
	MarksObtained float64                     `json:"marksObtained"`
	Participation domain.ParticipationSummary `json:"participation"`
}

// SubmitAnswer evaluates and records one answer, then persists the updated
// record and bumps the question's attempt statistics as a separate step.
// Resubmitting the same question overwrites the earlier answer, which makes
// the operation idempotent per question. The question is not checked against
// the participation's quiz; an answer for a foreign question is recorded
// like any other.
func (s *ParticipationService) SubmitAnswer(ctx context.Context, participationID, questionID, answer string) (SubmitResult, error) {
	p, err := s.participations.GetByID(ctx, participationID)
	if err != nil {
		return SubmitResult{}, err
	}

	key, err := s.keys.Key(ctx, questionID)
	if err != nil {
		return SubmitResult{}, err
	}

	correct, marks := ApplyAnswer(p, key, questionID, answer, s.now())

	if err := s.participations.Update(ctx, p); err != nil {
		return SubmitResult{}, err
	}
	if err := s.questions.IncrementStats(ctx, questionID, correct); err != nil {
		log.Printf("increment question stats %s: %v", questionID, err)
	}

	s.publishStandings(ctx, p.QuizID)
	return SubmitResult{
		IsCorrect:     correct,
		MarksObtained: marks,
		Participation: p.Summary(),
	}, nil
}

// Complete finalizes the participation exactly once. A record that has
// already left the in-progress state is rejected with a conflict rather than
// silently re-stamped.
func (s *ParticipationService) Complete(ctx context.Context, participationID string) (domain.ParticipationSummary, error) {
	p, err := s.participations.GetByID(ctx, participationID)
	if err != nil {
		return domain.ParticipationSummary{}, err
	}
	if p.Status != domain.ParticipationInProgress {
		return domain.ParticipationSummary{}, domain.ErrParticipationCompleted
	}

	Finalize(p, s.now())
	if err := s.participations.Update(ctx, p); err != nil {
		return domain.ParticipationSummary{}, err
	}

	s.publishStandings(ctx, p.QuizID)
	return p.Summary(), nil
}

// CheckResult reports whether a (user, quiz) pair already holds an attempt.
type CheckResult struct {
	Exists        bool                  `json:"exists"`
	Participation *domain.Participation `json:"participation"`
}

// Check looks up the participation for a (user, quiz) pair.
func (s *ParticipationService) Check(ctx context.Context, userID, quizID string) (CheckResult, error) {
	p, err := s.participations.GetByUserQuiz(ctx, userID, quizID)
	if errors.Is(err, domain.ErrParticipationNotFound) {
		return CheckResult{Exists: false}, nil
	}
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{Exists: true, Participation: p}, nil
}

// Get fetches one participation by ID.
func (s *ParticipationService) Get(ctx context.Context, id string) (*domain.Participation, error) {
	return s.participations.GetByID(ctx, id)
}

// List returns participations matching the filter, newest first.
func (s *ParticipationService) List(ctx context.Context, filter ParticipationFilter) ([]domain.Participation, error) {
	return s.participations.List(ctx, filter)
}

// ListByQuiz returns a quiz's participations ordered by obtained marks
// descending, optionally filtered by status.
func (s *ParticipationService) ListByQuiz(ctx context.Context, quizID string, status domain.ParticipationStatus) ([]domain.Participation, error) {
	return s.participations.ListByQuiz(ctx, quizID, status)
}

// AdminUpdate applies an allow-listed partial update. This is the only path
// to the abandoned and timeout states.
func (s *ParticipationService) AdminUpdate(ctx context.Context, id string, update *domain.ParticipationUpdate) (*domain.Participation, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown participation status"})
	}
	p, err := s.participations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(p)
	if err := s.participations.Update(ctx, p); err != nil {
		return nil, err
	}
	s.publishStandings(ctx, p.QuizID)
	return p, nil
}

// Delete removes a participation record.
func (s *ParticipationService) Delete(ctx context.Context, id string) error {
	return s.participations.Delete(ctx, id)
}

// Subscribe attaches a live standings feed for a quiz.
func (s *ParticipationService) Subscribe(quizID string) (<-chan domain.Leaderboard, func(), error) {
	if s.board == nil {
		return nil, nil, domain.ErrQuizNotFound
	}
	ch, cancel := s.board.Subscribe(quizID)
	return ch, cancel, nil
}

// Standings builds the current ordered snapshot for a quiz.
func (s *ParticipationService) Standings(ctx context.Context, quizID string) (domain.Leaderboard, error) {
	rows, err := s.participations.ListByQuiz(ctx, quizID, "")
	if err != nil {
		return domain.Leaderboard{}, err
	}
	entries := make([]domain.Standing, 0, len(rows))
	for _, p := range rows {
		entries = append(entries, domain.Standing{
			ParticipationID: p.ID,
			UserID:          p.UserID,
			ObtainedMarks:   p.ObtainedMarks,
			CorrectAnswers:  p.CorrectAnswers,
			TimeSpent:       p.TimeSpent,
			Status:          p.Status,
		})
	}
	return domain.Leaderboard{QuizID: quizID, Entries: entries, UpdatedAt: s.now()}, nil
}

func (s *ParticipationService) publishStandings(ctx context.Context, quizID string) {
	if s.board == nil || s.board.SubscriberCount(quizID) == 0 {
		return
	}
	lb, err := s.Standings(ctx, quizID)
	if err != nil {
		log.Printf("build standings for quiz %s: %v", quizID, err)
		return
	}
	s.board.Publish(lb)
}
