package domain

import (
	"time"

	"github.com/uptrace/bun"
)

// QuestionType determines how an answer is evaluated.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	TrueFalse      QuestionType = "true-false"
	FillInTheBlank QuestionType = "fill-in-the-blank"
	Essay          QuestionType = "essay"
)

func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoice, TrueFalse, FillInTheBlank, Essay:
		return true
	default:
		return false
	}
}

// Option is a possible answer for a choice question.
type Option struct {
	Text      string `json:"text"`
	Image     string `json:"image,omitempty"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionStatus is the lifecycle state of a question.
type QuestionStatus string

const (
	QuestionDraft     QuestionStatus = "draft"
	QuestionPublished QuestionStatus = "published"
	QuestionArchived  QuestionStatus = "archived"
)

// Question belongs to one quiz. Choice questions carry options with exactly
// the correct ones flagged; other types store the correct answer as text.
type Question struct {
	bun.BaseModel `bun:"table:questions" json:"-"`

	ID            string       `bun:"id,pk" json:"id"`
	QuizID        string       `bun:"quiz_id" json:"quizId"`
	QuestionText  string       `bun:"question_text" json:"questionText"`
	QuestionImage string       `bun:"question_image" json:"questionImage,omitempty"`
	Type          QuestionType `bun:"type" json:"type"`
	Options       []Option     `bun:"options,type:jsonb" json:"options,omitempty"`
	CorrectAnswer string       `bun:"correct_answer" json:"correctAnswer,omitempty"`
	Explanation   string       `bun:"explanation" json:"explanation,omitempty"`
	Difficulty    string       `bun:"difficulty" json:"difficulty,omitempty"`

	Marks         float64 `bun:"marks" json:"marks"`
	NegativeMarks float64 `bun:"negative_marks" json:"negativeMarks"`

	Subject  string   `bun:"subject" json:"subject,omitempty"`
	Category string   `bun:"category" json:"category,omitempty"`
	Tags     []string `bun:"tags,type:jsonb" json:"tags,omitempty"`

	Status QuestionStatus `bun:"status" json:"status"`
	Order  int            `bun:"question_order" json:"order"`

	TotalAttempts   int `bun:"total_attempts" json:"totalAttempts"`
	CorrectAttempts int `bun:"correct_attempts" json:"correctAttempts"`

	CreatedBy string    `bun:"created_by" json:"createdBy"`
	CreatedAt time.Time `bun:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at" json:"updatedAt"`
}

// CorrectOption returns the first option flagged correct, or nil.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// AnswerKey is the minimal evaluation record for a question. It is what the
// cache layer stores per question; the full question document is not needed
// to score an answer.
type AnswerKey struct {
	QuestionID    string       `json:"questionId"`
	Type          QuestionType `json:"type"`
	CorrectAnswer string       `json:"correctAnswer"`
	Marks         float64      `json:"marks"`
	NegativeMarks float64      `json:"negativeMarks"`
}

// Key derives the answer key. For choice questions the correct answer is the
// text of the flagged option; an empty correct answer makes the question
// unanswerable-correctly.
func (q *Question) Key() AnswerKey {
	key := AnswerKey{
		QuestionID:    q.ID,
		Type:          q.Type,
		CorrectAnswer: q.CorrectAnswer,
		Marks:         q.Marks,
		NegativeMarks: q.NegativeMarks,
	}
	if q.Type == MultipleChoice {
		key.CorrectAnswer = ""
		if opt := q.CorrectOption(); opt != nil {
			key.CorrectAnswer = opt.Text
		}
	}
	return key
}

// QuestionUpdate is the allow-list of mutable question fields.
type QuestionUpdate struct {
	QuestionText  *string         `json:"questionText,omitempty"`
	QuestionImage *string         `json:"questionImage,omitempty"`
	Type          *QuestionType   `json:"type,omitempty"`
	Options       []Option        `json:"options,omitempty"`
	CorrectAnswer *string         `json:"correctAnswer,omitempty"`
	Explanation   *string         `json:"explanation,omitempty"`
	Difficulty    *string         `json:"difficulty,omitempty"`
	Marks         *float64        `json:"marks,omitempty" validate:"omitempty,min=0.5"`
	NegativeMarks *float64        `json:"negativeMarks,omitempty" validate:"omitempty,min=0"`
	Subject       *string         `json:"subject,omitempty"`
	Category      *string         `json:"category,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Status        *QuestionStatus `json:"status,omitempty"`
	Order         *int            `json:"order,omitempty"`
}

func (u *QuestionUpdate) Apply(q *Question) {
	if u.QuestionText != nil {
		q.QuestionText = *u.QuestionText
	}
	if u.QuestionImage != nil {
		q.QuestionImage = *u.QuestionImage
	}
	if u.Type != nil {
		q.Type = *u.Type
	}
	if u.Options != nil {
		q.Options = u.Options
	}
	if u.CorrectAnswer != nil {
		q.CorrectAnswer = *u.CorrectAnswer
	}
	if u.Explanation != nil {
		q.Explanation = *u.Explanation
	}
	if u.Difficulty != nil {
		q.Difficulty = *u.Difficulty
	}
	if u.Marks != nil {
		q.Marks = *u.Marks
	}
	if u.NegativeMarks != nil {
		q.NegativeMarks = *u.NegativeMarks
	}
	if u.Subject != nil {
		q.Subject = *u.Subject
	}
	if u.Category != nil {
		q.Category = *u.Category
	}
	if u.Tags != nil {
		q.Tags = u.Tags
	}
	if u.Status != nil {
		q.Status = *u.Status
	}
	if u.Order != nil {
		q.Order = *u.Order
	}
}
