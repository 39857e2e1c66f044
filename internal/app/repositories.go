package app

import (
	"context"

	"quiz-contest-service/internal/domain"
)

// UserRepository stores registered users. Create must map a duplicate contact
// to domain.ErrContactTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByContact(ctx context.Context, contact string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}

// QuizFilter narrows quiz listings.
type QuizFilter struct {
	Status    domain.QuizStatus
	EventID   string
	CreatedBy string
}

// QuizRepository stores quizzes.
type QuizRepository interface {
	Create(ctx context.Context, quiz *domain.Quiz) error
	GetByID(ctx context.Context, id string) (*domain.Quiz, error)
	Update(ctx context.Context, quiz *domain.Quiz) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter QuizFilter) ([]domain.Quiz, error)
}

// QuestionRepository stores questions. IncrementStats is the explicit,
// separate step that bumps attempt counters after an evaluation.
type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	CreateBatch(ctx context.Context, questions []*domain.Question) error
	GetByID(ctx context.Context, id string) (*domain.Question, error)
	Update(ctx context.Context, question *domain.Question) error
	Delete(ctx context.Context, id string) error
	DeleteBatch(ctx context.Context, ids []string) (int, error)
	ListByQuiz(ctx context.Context, quizID string) ([]domain.Question, error)
	ListByType(ctx context.Context, t domain.QuestionType) ([]domain.Question, error)
	CountByQuiz(ctx context.Context, quizID string) (int, error)
	IncrementStats(ctx context.Context, id string, correct bool) error
}

// ParticipationFilter narrows participation listings.
type ParticipationFilter struct {
	UserID string
	QuizID string
	Status domain.ParticipationStatus
}

// ParticipationRepository stores attempt records. Create must map a unique
// (user, quiz) violation to domain.ErrDuplicateParticipation; that constraint
// is the authoritative guard against racing starts. ListByQuiz orders by
// obtained marks descending.
type ParticipationRepository interface {
	Create(ctx context.Context, p *domain.Participation) error
	GetByID(ctx context.Context, id string) (*domain.Participation, error)
	GetByUserQuiz(ctx context.Context, userID, quizID string) (*domain.Participation, error)
	Update(ctx context.Context, p *domain.Participation) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ParticipationFilter) ([]domain.Participation, error)
	ListByQuiz(ctx context.Context, quizID string, status domain.ParticipationStatus) ([]domain.Participation, error)
}

// EventRepository stores contest events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status domain.EventStatus) ([]domain.Event, error)
}

// ContentRepository stores the ancillary admin content types.
type ContentRepository interface {
	CreateBanner(ctx context.Context, b *domain.Banner) error
	GetBanner(ctx context.Context, id string) (*domain.Banner, error)
	UpdateBanner(ctx context.Context, b *domain.Banner) error
	DeleteBanner(ctx context.Context, id string) error
	ListBanners(ctx context.Context, status domain.ContentStatus) ([]domain.Banner, error)

	CreateOffer(ctx context.Context, o *domain.Offer) error
	GetOffer(ctx context.Context, id string) (*domain.Offer, error)
	UpdateOffer(ctx context.Context, o *domain.Offer) error
	DeleteOffer(ctx context.Context, id string) error
	ListOffers(ctx context.Context, status domain.ContentStatus) ([]domain.Offer, error)

	CreateJudgePanel(ctx context.Context, j *domain.JudgePanel) error
	GetJudgePanel(ctx context.Context, id string) (*domain.JudgePanel, error)
	UpdateJudgePanel(ctx context.Context, j *domain.JudgePanel) error
	DeleteJudgePanel(ctx context.Context, id string) error
	ListJudgePanels(ctx context.Context) ([]domain.JudgePanel, error)

	CreateFAQ(ctx context.Context, f *domain.FAQ) error
	GetFAQ(ctx context.Context, id string) (*domain.FAQ, error)
	UpdateFAQ(ctx context.Context, f *domain.FAQ) error
	DeleteFAQ(ctx context.Context, id string) error
	ListFAQs(ctx context.Context, status domain.ContentStatus) ([]domain.FAQ, error)

	CreateTimeInstruction(ctx context.Context, t *domain.TimeInstruction) error
	GetTimeInstruction(ctx context.Context, id string) (*domain.TimeInstruction, error)
	UpdateTimeInstruction(ctx context.Context, t *domain.TimeInstruction) error
	DeleteTimeInstruction(ctx context.Context, id string) error
	ListTimeInstructions(ctx context.Context) ([]domain.TimeInstruction, error)
}

// MessageRepository stores bulk-message records.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	Update(ctx context.Context, m *domain.Message) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, sentBy string, status domain.MessageStatus) ([]domain.Message, error)
}

// AnswerKeySource resolves the evaluation record for a question, typically
// through a cache with a storage-backed loader. A missing question yields
// domain.ErrQuestionNotFound.
type AnswerKeySource interface {
	Key(ctx context.Context, questionID string) (domain.AnswerKey, error)
	Invalidate(ctx context.Context, questionID string)
}

// MessagePublisher hands bulk-message payloads to the broker.
type MessagePublisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}
