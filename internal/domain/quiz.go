package domain

import (
	"time"

	"github.com/uptrace/bun"
)

// QuizStatus is the lifecycle state of a quiz.
type QuizStatus string

const (
	QuizDraft     QuizStatus = "draft"
	QuizPublished QuizStatus = "published"
	QuizArchived  QuizStatus = "archived"
)

func (s QuizStatus) Valid() bool {
	switch s {
	case QuizDraft, QuizPublished, QuizArchived:
		return true
	default:
		return false
	}
}

// Quiz is a scheduled contest round.
type Quiz struct {
	bun.BaseModel `bun:"table:quizzes" json:"-"`

	ID           string `bun:"id,pk" json:"id"`
	Title        string `bun:"title" json:"title"`
	Description  string `bun:"description" json:"description,omitempty"`
	Instructions string `bun:"instructions" json:"instructions"`

	// Duration is in minutes, 1 to 300.
	Duration         int  `bun:"duration" json:"duration"`
	TotalQuestions   int  `bun:"total_questions" json:"totalQuestions"`
	QuestionsPerPage int  `bun:"questions_per_page" json:"questionsPerPage"`

	MarksPerQuestion float64 `bun:"marks_per_question" json:"marksPerQuestion"`
	NegativeMarking  bool    `bun:"negative_marking" json:"negativeMarking"`
	NegativeMarks    float64 `bun:"negative_marks" json:"negativeMarks"`

	ShuffleQuestions   bool `bun:"shuffle_questions" json:"shuffleQuestions"`
	ShuffleOptions     bool `bun:"shuffle_options" json:"shuffleOptions"`
	AllowReview        bool `bun:"allow_review" json:"allowReview"`
	ShowCorrectAnswers bool `bun:"show_correct_answers" json:"showCorrectAnswers"`
	ShowResults        bool `bun:"show_results" json:"showResults"`

	IsPublic bool   `bun:"is_public" json:"isPublic"`
	Password string `bun:"password" json:"-"`

	Status    QuizStatus `bun:"status" json:"status"`
	StartTime time.Time  `bun:"start_time" json:"startTime"`
	EndTime   time.Time  `bun:"end_time" json:"endTime"`

	TotalAttempts int     `bun:"total_attempts" json:"totalAttempts"`
	AverageScore  float64 `bun:"average_score" json:"averageScore"`

	EventID   string    `bun:"event_id" json:"eventId,omitempty"`
	CreatedBy string    `bun:"created_by" json:"createdBy"`
	CreatedAt time.Time `bun:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at" json:"updatedAt"`
}

// TotalMarks is the maximum achievable score for the quiz.
func (q *Quiz) TotalMarks() float64 {
	return float64(q.TotalQuestions) * q.MarksPerQuestion
}

// Window returns the scheduled participation window.
func (q *Quiz) Window() (time.Time, time.Time) { return q.StartTime, q.EndTime }

// Live reports whether the quiz status admits participation.
func (q *Quiz) Live() bool { return q.Status == QuizPublished }

// QuizUpdate is the allow-list of fields mutable after creation. Nil fields
// are left untouched.
type QuizUpdate struct {
	Title              *string     `json:"title,omitempty"`
	Description        *string     `json:"description,omitempty"`
	Instructions       *string     `json:"instructions,omitempty"`
	Duration           *int        `json:"duration,omitempty" validate:"omitempty,min=1,max=300"`
	TotalQuestions     *int        `json:"totalQuestions,omitempty" validate:"omitempty,min=1"`
	QuestionsPerPage   *int        `json:"questionsPerPage,omitempty" validate:"omitempty,min=1"`
	MarksPerQuestion   *float64    `json:"marksPerQuestion,omitempty" validate:"omitempty,min=0.5"`
	NegativeMarking    *bool       `json:"negativeMarking,omitempty"`
	NegativeMarks      *float64    `json:"negativeMarks,omitempty" validate:"omitempty,min=0"`
	ShuffleQuestions   *bool       `json:"shuffleQuestions,omitempty"`
	ShuffleOptions     *bool       `json:"shuffleOptions,omitempty"`
	AllowReview        *bool       `json:"allowReview,omitempty"`
	ShowCorrectAnswers *bool       `json:"showCorrectAnswers,omitempty"`
	ShowResults        *bool       `json:"showResults,omitempty"`
	IsPublic           *bool       `json:"isPublic,omitempty"`
	Status             *QuizStatus `json:"status,omitempty"`
	StartTime          *time.Time  `json:"startTime,omitempty"`
	EndTime            *time.Time  `json:"endTime,omitempty"`
}

// Apply copies the set fields onto the quiz.
func (u *QuizUpdate) Apply(q *Quiz) {
	if u.Title != nil {
		q.Title = *u.Title
	}
	if u.Description != nil {
		q.Description = *u.Description
	}
	if u.Instructions != nil {
		q.Instructions = *u.Instructions
	}
	if u.Duration != nil {
		q.Duration = *u.Duration
	}
	if u.TotalQuestions != nil {
		q.TotalQuestions = *u.TotalQuestions
	}
	if u.QuestionsPerPage != nil {
		q.QuestionsPerPage = *u.QuestionsPerPage
	}
	if u.MarksPerQuestion != nil {
		q.MarksPerQuestion = *u.MarksPerQuestion
	}
	if u.NegativeMarking != nil {
		q.NegativeMarking = *u.NegativeMarking
	}
	if u.NegativeMarks != nil {
		q.NegativeMarks = *u.NegativeMarks
	}
	if u.ShuffleQuestions != nil {
		q.ShuffleQuestions = *u.ShuffleQuestions
	}
	if u.ShuffleOptions != nil {
		q.ShuffleOptions = *u.ShuffleOptions
	}
	if u.AllowReview != nil {
		q.AllowReview = *u.AllowReview
	}
	if u.ShowCorrectAnswers != nil {
		q.ShowCorrectAnswers = *u.ShowCorrectAnswers
	}
	if u.ShowResults != nil {
		q.ShowResults = *u.ShowResults
	}
	if u.IsPublic != nil {
		q.IsPublic = *u.IsPublic
	}
	if u.Status != nil {
		q.Status = *u.Status
	}
	if u.StartTime != nil {
		q.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		q.EndTime = *u.EndTime
	}
}
