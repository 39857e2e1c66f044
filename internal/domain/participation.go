package domain

import (
	"time"

	"github.com/uptrace/bun"
)

// ParticipationStatus is the lifecycle state of an attempt.
type ParticipationStatus string

const (
	ParticipationInProgress ParticipationStatus = "in-progress"
	ParticipationCompleted  ParticipationStatus = "completed"
	ParticipationAbandoned  ParticipationStatus = "abandoned"
	ParticipationTimeout    ParticipationStatus = "timeout"
)

func (s ParticipationStatus) Valid() bool {
	switch s {
	case ParticipationInProgress, ParticipationCompleted, ParticipationAbandoned, ParticipationTimeout:
		return true
	default:
		return false
	}
}

// Answer is one recorded submission inside a participation.
type Answer struct {
	QuestionID    string    `json:"questionId"`
	Answer        string    `json:"answer"`
	IsCorrect     bool      `json:"isCorrect"`
	MarksObtained float64   `json:"marksObtained"`
	AnsweredAt    time.Time `json:"answeredAt"`
}

// Participation is one user's attempt record for one quiz. Exactly one may
// exist per (user, quiz) pair; the storage layer enforces this with a unique
// constraint. The answers slice is the source of truth for every counter.
type Participation struct {
	bun.BaseModel `bun:"table:participations" json:"-"`

	ID     string `bun:"id,pk" json:"id"`
	UserID string `bun:"user_id" json:"userId"`
	QuizID string `bun:"quiz_id" json:"quizId"`

	StartTime   time.Time  `bun:"start_time" json:"startTime"`
	EndTime     *time.Time `bun:"end_time" json:"endTime,omitempty"`
	SubmittedAt *time.Time `bun:"submitted_at" json:"submittedAt,omitempty"`

	Answers []Answer `bun:"answers,type:jsonb" json:"answers"`

	TotalQuestions     int     `bun:"total_questions" json:"totalQuestions"`
	AttemptedQuestions int     `bun:"attempted_questions" json:"attemptedQuestions"`
	CorrectAnswers     int     `bun:"correct_answers" json:"correctAnswers"`
	WrongAnswers       int     `bun:"wrong_answers" json:"wrongAnswers"`
	TotalMarks         float64 `bun:"total_marks" json:"totalMarks"`
	ObtainedMarks      float64 `bun:"obtained_marks" json:"obtainedMarks"`

	Status ParticipationStatus `bun:"status" json:"status"`

	// TimeSpent is in whole seconds. TimeRemaining is informational only;
	// no server-side expiry acts on it.
	TimeSpent     int  `bun:"time_spent" json:"timeSpent"`
	TimeRemaining *int `bun:"time_remaining" json:"timeRemaining,omitempty"`

	Rank       *int     `bun:"rank" json:"rank,omitempty"`
	Percentile *float64 `bun:"percentile" json:"percentile,omitempty"`

	CreatedAt time.Time `bun:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at" json:"updatedAt"`
}

// AnswerFor returns the index of the answer for questionID, or -1.
func (p *Participation) AnswerFor(questionID string) int {
	for i := range p.Answers {
		if p.Answers[i].QuestionID == questionID {
			return i
		}
	}
	return -1
}

// AccuracyPercentage is correct answers over attempts, rounded.
func (p *Participation) AccuracyPercentage() int {
	if p.AttemptedQuestions == 0 {
		return 0
	}
	return int(float64(p.CorrectAnswers)/float64(p.AttemptedQuestions)*100 + 0.5)
}

// PercentageScore is obtained over total marks, rounded.
func (p *Participation) PercentageScore() int {
	if p.TotalMarks == 0 {
		return 0
	}
	return int(p.ObtainedMarks/p.TotalMarks*100 + 0.5)
}

// ParticipationSummary is the result view returned after submissions and on
// completion.
type ParticipationSummary struct {
	TotalQuestions     int                 `json:"totalQuestions"`
	AttemptedQuestions int                 `json:"attemptedQuestions"`
	CorrectAnswers     int                 `json:"correctAnswers"`
	WrongAnswers       int                 `json:"wrongAnswers"`
	TotalMarks         float64             `json:"totalMarks"`
	ObtainedMarks      float64             `json:"obtainedMarks"`
	AccuracyPercentage int                 `json:"accuracyPercentage"`
	PercentageScore    int                 `json:"percentageScore"`
	TimeSpent          int                 `json:"timeSpent"`
	Status             ParticipationStatus `json:"status"`
	Rank               *int                `json:"rank,omitempty"`
	Percentile         *float64            `json:"percentile,omitempty"`
}

// Summary builds the result view.
func (p *Participation) Summary() ParticipationSummary {
	return ParticipationSummary{
		TotalQuestions:     p.TotalQuestions,
		AttemptedQuestions: p.AttemptedQuestions,
		CorrectAnswers:     p.CorrectAnswers,
		WrongAnswers:       p.WrongAnswers,
		TotalMarks:         p.TotalMarks,
		ObtainedMarks:      p.ObtainedMarks,
		AccuracyPercentage: p.AccuracyPercentage(),
		PercentageScore:    p.PercentageScore(),
		TimeSpent:          p.TimeSpent,
		Status:             p.Status,
		Rank:               p.Rank,
		Percentile:         p.Percentile,
	}
}

// ParticipationUpdate is the allow-list for administrative updates. Status
// changes here are how abandoned/timeout states are reached.
type ParticipationUpdate struct {
	Status        *ParticipationStatus `json:"status,omitempty"`
	TimeRemaining *int                 `json:"timeRemaining,omitempty"`
	Rank          *int                 `json:"rank,omitempty"`
	Percentile    *float64             `json:"percentile,omitempty"`
}

func (u *ParticipationUpdate) Apply(p *Participation) {
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.TimeRemaining != nil {
		p.TimeRemaining = u.TimeRemaining
	}
	if u.Rank != nil {
		p.Rank = u.Rank
	}
	if u.Percentile != nil {
		p.Percentile = u.Percentile
	}
}

// Standing is one row of a quiz leaderboard.
type Standing struct {
	ParticipationID string              `json:"participationId"`
	UserID          string              `json:"userId"`
	ObtainedMarks   float64             `json:"obtainedMarks"`
	CorrectAnswers  int                 `json:"correctAnswers"`
	TimeSpent       int                 `json:"timeSpent"`
	Status          ParticipationStatus `json:"status"`
}

// Leaderboard is the ordered standings snapshot for one quiz.
type Leaderboard struct {
	QuizID    string     `json:"quizId"`
	Entries   []Standing `json:"entries"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
