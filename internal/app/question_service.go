package app

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"quiz-contest-service/internal/domain"
)

// QuestionService contains the question CRUD use cases plus the standalone
// answer check used by practice mode.
type QuestionService struct {
	questions QuestionRepository
	quizzes   QuizRepository
	keys      AnswerKeySource
	validate  *validator.Validate
	now       func() time.Time
}

// NewQuestionService wires the question use cases. keys may be nil when no
// answer-key cache sits in front of the repository.
func NewQuestionService(questions QuestionRepository, quizzes QuizRepository, keys AnswerKeySource) *QuestionService {
	return &QuestionService{
		questions: questions,
		quizzes:   quizzes,
		keys:      keys,
		validate:  newValidator(),
		now:       time.Now,
	}
}

// dropCachedKey evicts a question's answer key so grading never sees a stale
// correct answer after an edit or delete.
func (s *QuestionService) dropCachedKey(ctx context.Context, questionID string) {
	if s.keys != nil {
		s.keys.Invalidate(ctx, questionID)
	}
}

// CreateQuestionInput carries the admin question form.
type CreateQuestionInput struct {
	QuizID        string              `json:"quizId" validate:"required"`
	QuestionText  string              `json:"questionText" validate:"required"`
	QuestionImage string              `json:"questionImage"`
	Type          domain.QuestionType `json:"type"`
	Options       []domain.Option     `json:"options"`
	CorrectAnswer string              `json:"correctAnswer"`
	Explanation   string              `json:"explanation"`
	Difficulty    string              `json:"difficulty"`
	Marks         float64             `json:"marks" validate:"omitempty,min=0.5"`
	NegativeMarks float64             `json:"negativeMarks" validate:"omitempty,min=0"`
	Subject       string              `json:"subject"`
	Category      string              `json:"category"`
	Tags          []string            `json:"tags"`
	Order         int                 `json:"order"`
}

// Create validates and stores one question. Choice questions need at least
// two options with one flagged correct; every other type needs a correct
// answer string.
func (s *QuestionService) Create(ctx context.Context, createdBy string, in CreateQuestionInput) (*domain.Question, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	question := s.build(createdBy, in)
	if err := checkAnswerDefinition(question); err != nil {
		return nil, err
	}
	if _, err := s.quizzes.GetByID(ctx, in.QuizID); err != nil {
		return nil, err
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// CreateBatch validates and stores a batch of questions for one quiz.
// Failures are itemized by position; nothing is stored unless every entry
// passes.
func (s *QuestionService) CreateBatch(ctx context.Context, createdBy, quizID string, inputs []CreateQuestionInput) ([]*domain.Question, error) {
	if len(inputs) == 0 {
		return nil, domain.NewValidationError(map[string]string{"questions": "at least one question is required"})
	}
	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		return nil, err
	}

	questions := make([]*domain.Question, 0, len(inputs))
	fields := map[string]string{}
	for i, in := range inputs {
		in.QuizID = quizID
		if err := validateStruct(s.validate, in); err != nil {
			fields[indexedField(i)] = err.Error()
			continue
		}
		q := s.build(createdBy, in)
		if err := checkAnswerDefinition(q); err != nil {
			fields[indexedField(i)] = err.Error()
			continue
		}
		questions = append(questions, q)
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}
	if err := s.questions.CreateBatch(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Get fetches one question.
func (s *QuestionService) Get(ctx context.Context, id string) (*domain.Question, error) {
	return s.questions.GetByID(ctx, id)
}

// ListByQuiz returns a quiz's questions in order.
func (s *QuestionService) ListByQuiz(ctx context.Context, quizID string) ([]domain.Question, error) {
	return s.questions.ListByQuiz(ctx, quizID)
}

// ListByType returns questions of one type across quizzes.
func (s *QuestionService) ListByType(ctx context.Context, t domain.QuestionType) ([]domain.Question, error) {
	if !t.Valid() {
		return nil, domain.NewValidationError(map[string]string{"type": "unknown question type"})
	}
	return s.questions.ListByType(ctx, t)
}

// Update applies an allow-listed partial update, re-checking the answer
// definition invariant on the merged record.
func (s *QuestionService) Update(ctx context.Context, id string, update *domain.QuestionUpdate) (*domain.Question, error) {
	if err := validateStruct(s.validate, update); err != nil {
		return nil, err
	}
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(question)
	if err := checkAnswerDefinition(question); err != nil {
		return nil, err
	}
	if err := s.questions.Update(ctx, question); err != nil {
		return nil, err
	}
	s.dropCachedKey(ctx, id)
	return question, nil
}

// Delete removes one question.
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}
	s.dropCachedKey(ctx, id)
	return nil
}

// DeleteBatch removes questions by ID and reports how many went away. This
// is the only path that physically removes answered questions.
func (s *QuestionService) DeleteBatch(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, domain.NewValidationError(map[string]string{"ids": "at least one question id is required"})
	}
	deleted, err := s.questions.DeleteBatch(ctx, ids)
	if err != nil {
		return deleted, err
	}
	for _, id := range ids {
		s.dropCachedKey(ctx, id)
	}
	return deleted, nil
}

// CheckAnswer evaluates a submission outside any participation and bumps the
// question's attempt statistics.
func (s *QuestionService) CheckAnswer(ctx context.Context, questionID, answer string) (bool, float64, error) {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return false, 0, err
	}
	correct, marks := Evaluate(question.Key(), answer)
	if err := s.questions.IncrementStats(ctx, questionID, correct); err != nil {
		log.Printf("increment question stats %s: %v", questionID, err)
	}
	return correct, marks, nil
}

func (s *QuestionService) build(createdBy string, in CreateQuestionInput) *domain.Question {
	t := in.Type
	if t == "" {
		t = domain.MultipleChoice
	}
	return &domain.Question{
		QuizID:        in.QuizID,
		QuestionText:  in.QuestionText,
		QuestionImage: in.QuestionImage,
		Type:          t,
		Options:       in.Options,
		CorrectAnswer: in.CorrectAnswer,
		Explanation:   in.Explanation,
		Difficulty:    orString(in.Difficulty, "medium"),
		Marks:         orFloat(in.Marks, 1),
		NegativeMarks: in.NegativeMarks,
		Subject:       in.Subject,
		Category:      in.Category,
		Tags:          in.Tags,
		Status:        domain.QuestionDraft,
		Order:         in.Order,
		CreatedBy:     createdBy,
	}
}

// checkAnswerDefinition enforces the per-type answer invariant.
func checkAnswerDefinition(q *domain.Question) error {
	if !q.Type.Valid() {
		return domain.NewValidationError(map[string]string{"type": "unknown question type"})
	}
	if q.Type == domain.MultipleChoice {
		if len(q.Options) < 2 {
			return domain.NewValidationError(map[string]string{"options": "multiple-choice questions need at least 2 options"})
		}
		if q.CorrectOption() == nil {
			return domain.NewValidationError(map[string]string{"options": "at least one option must be flagged correct"})
		}
		return nil
	}
	if q.CorrectAnswer == "" {
		return domain.NewValidationError(map[string]string{"correctAnswer": "required for non-choice questions"})
	}
	return nil
}

func indexedField(i int) string {
	return "questions[" + strconv.Itoa(i) + "]"
}

func orString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
