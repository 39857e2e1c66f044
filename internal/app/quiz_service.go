package app

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"quiz-contest-service/internal/domain"
)

// QuizService contains the quiz CRUD use cases.
type QuizService struct {
	quizzes        QuizRepository
	questions      QuestionRepository
	participations ParticipationRepository
	validate       *validator.Validate
	now            func() time.Time
}

func NewQuizService(quizzes QuizRepository, questions QuestionRepository, participations ParticipationRepository) *QuizService {
	return &QuizService{
		quizzes:        quizzes,
		questions:      questions,
		participations: participations,
		validate:       newValidator(),
		now:            time.Now,
	}
}

// CreateQuizInput carries the admin quiz form.
type CreateQuizInput struct {
	Title              string    `json:"title" validate:"required"`
	Description        string    `json:"description"`
	Instructions       string    `json:"instructions" validate:"required"`
	Duration           int       `json:"duration" validate:"required,min=1,max=300"`
	TotalQuestions     int       `json:"totalQuestions" validate:"required,min=1"`
	QuestionsPerPage   int       `json:"questionsPerPage" validate:"omitempty,min=1"`
	MarksPerQuestion   float64   `json:"marksPerQuestion" validate:"omitempty,min=0.5"`
	NegativeMarking    bool      `json:"negativeMarking"`
	NegativeMarks      float64   `json:"negativeMarks" validate:"omitempty,min=0"`
	ShuffleQuestions   *bool     `json:"shuffleQuestions"`
	ShuffleOptions     *bool     `json:"shuffleOptions"`
	AllowReview        *bool     `json:"allowReview"`
	ShowCorrectAnswers *bool     `json:"showCorrectAnswers"`
	ShowResults        *bool     `json:"showResults"`
	IsPublic           *bool     `json:"isPublic"`
	Password           string    `json:"password"`
	StartTime          time.Time `json:"startTime" validate:"required"`
	EndTime            time.Time `json:"endTime" validate:"required"`
	EventID            string    `json:"eventId"`
}

// Create validates and stores a quiz in draft state; publication happens
// through Update. The end of the window must come after its start.
func (s *QuizService) Create(ctx context.Context, createdBy string, in CreateQuizInput) (*domain.Quiz, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, domain.NewValidationError(map[string]string{"endTime": "must be after startTime"})
	}

	quiz := &domain.Quiz{
		Title:              in.Title,
		Description:        in.Description,
		Instructions:       in.Instructions,
		Duration:           in.Duration,
		TotalQuestions:     in.TotalQuestions,
		QuestionsPerPage:   orInt(in.QuestionsPerPage, 1),
		MarksPerQuestion:   orFloat(in.MarksPerQuestion, 1),
		NegativeMarking:    in.NegativeMarking,
		NegativeMarks:      in.NegativeMarks,
		ShuffleQuestions:   orBool(in.ShuffleQuestions, true),
		ShuffleOptions:     orBool(in.ShuffleOptions, true),
		AllowReview:        orBool(in.AllowReview, true),
		ShowCorrectAnswers: orBool(in.ShowCorrectAnswers, true),
		ShowResults:        orBool(in.ShowResults, true),
		IsPublic:           orBool(in.IsPublic, true),
		Password:           in.Password,
		Status:             domain.QuizDraft,
		StartTime:          in.StartTime,
		EndTime:            in.EndTime,
		EventID:            in.EventID,
		CreatedBy:          createdBy,
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Get fetches one quiz.
func (s *QuizService) Get(ctx context.Context, id string) (*domain.Quiz, error) {
	return s.quizzes.GetByID(ctx, id)
}

// List returns quizzes matching the filter.
func (s *QuizService) List(ctx context.Context, filter QuizFilter) ([]domain.Quiz, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown quiz status"})
	}
	return s.quizzes.List(ctx, filter)
}

// ListByEvent returns the quizzes grouped under an event.
func (s *QuizService) ListByEvent(ctx context.Context, eventID string) ([]domain.Quiz, error) {
	return s.quizzes.List(ctx, QuizFilter{EventID: eventID})
}

// Update applies an allow-listed partial update and re-checks the window
// invariant against the merged record.
func (s *QuizService) Update(ctx context.Context, id string, update *domain.QuizUpdate) (*domain.Quiz, error) {
	if err := validateStruct(s.validate, update); err != nil {
		return nil, err
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown quiz status"})
	}

	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(quiz)
	if !quiz.EndTime.After(quiz.StartTime) {
		return nil, domain.NewValidationError(map[string]string{"endTime": "must be after startTime"})
	}
	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Delete removes a quiz.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	return s.quizzes.Delete(ctx, id)
}

// QuizStats aggregates participation outcomes for one quiz.
type QuizStats struct {
	QuizID            string  `json:"quizId"`
	TotalMarks        float64 `json:"totalMarks"`
	TotalParticipants int     `json:"totalParticipants"`
	Completed         int     `json:"completed"`
	InProgress        int     `json:"inProgress"`
	AverageScore      float64 `json:"averageScore"`
	HighestScore      float64 `json:"highestScore"`
	LowestScore       float64 `json:"lowestScore"`
}

// Stats reduces the quiz's participations into headline numbers. Score
// aggregates cover completed attempts only.
func (s *QuizService) Stats(ctx context.Context, quizID string) (QuizStats, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return QuizStats{}, err
	}
	rows, err := s.participations.ListByQuiz(ctx, quizID, "")
	if err != nil {
		return QuizStats{}, err
	}

	stats := QuizStats{QuizID: quizID, TotalMarks: quiz.TotalMarks(), TotalParticipants: len(rows)}
	sum := 0.0
	for _, p := range rows {
		switch p.Status {
		case domain.ParticipationCompleted:
			stats.Completed++
			sum += p.ObtainedMarks
			if stats.Completed == 1 || p.ObtainedMarks > stats.HighestScore {
				stats.HighestScore = p.ObtainedMarks
			}
			if stats.Completed == 1 || p.ObtainedMarks < stats.LowestScore {
				stats.LowestScore = p.ObtainedMarks
			}
		case domain.ParticipationInProgress:
			stats.InProgress++
		}
	}
	if stats.Completed > 0 {
		stats.AverageScore = sum / float64(stats.Completed)
	}
	return stats, nil
}

func orInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func orFloat(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func orBool(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
