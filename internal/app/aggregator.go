package app

import (
	"time"

	"quiz-contest-service/internal/domain"
)

// ApplyAnswer evaluates the submission and records it on the participation.
// Re-answering a question replaces the earlier answer in place; new questions
// append. All derived counters are then recomputed in full from the answers
// slice, so the slice stays the single source of truth and the counters can
// never drift from it.
func ApplyAnswer(p *domain.Participation, key domain.AnswerKey, questionID, submitted string, now time.Time) (bool, float64) {
	correct, marks := Evaluate(key, submitted)

	answer := domain.Answer{
		QuestionID:    questionID,
		Answer:        submitted,
		IsCorrect:     correct,
		MarksObtained: marks,
		AnsweredAt:    now,
	}
	if i := p.AnswerFor(questionID); i >= 0 {
		p.Answers[i] = answer
	} else {
		p.Answers = append(p.Answers, answer)
	}

	recompute(p)
	return correct, marks
}

// recompute rebuilds every derived counter from the answers slice.
func recompute(p *domain.Participation) {
	p.AttemptedQuestions = len(p.Answers)
	correct := 0
	obtained := 0.0
	for _, a := range p.Answers {
		if a.IsCorrect {
			correct++
		}
		obtained += a.MarksObtained
	}
	p.CorrectAnswers = correct
	p.WrongAnswers = p.AttemptedQuestions - correct
	p.ObtainedMarks = obtained
}

// Finalize marks the participation completed, stamps both end timestamps and
// derives the time spent in whole seconds from the elapsed wall clock.
//
// TotalMarks is set to the sum of marks obtained, not the maximum possible
// score. That mirrors the shipped behavior of the platform; quiz-level
// TotalMarks() carries the true maximum for callers that need a percentage.
func Finalize(p *domain.Participation, now time.Time) {
	p.Status = domain.ParticipationCompleted
	p.EndTime = &now
	p.SubmittedAt = &now
	p.TimeSpent = int(now.Sub(p.StartTime) / time.Second)

	total := 0.0
	for _, a := range p.Answers {
		total += a.MarksObtained
	}
	p.TotalMarks = total
}
