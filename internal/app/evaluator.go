package app

import (
	"strings"

	"quiz-contest-service/internal/domain"
)

// Evaluate scores a submitted answer against a question's answer key.
//
// Multiple-choice questions match the text of the flagged-correct option
// exactly, case included. A question with no flagged option can never be
// answered correctly. Every other type compares after trimming surrounding
// whitespace and lowercasing both sides.
//
// The returned marks are the question's marks when correct, otherwise its
// negative marks, always as a positive magnitude. Interpreting negative
// marking as a subtraction is the caller's concern.
func Evaluate(key domain.AnswerKey, submitted string) (bool, float64) {
	correct := false
	switch key.Type {
	case domain.MultipleChoice:
		correct = key.CorrectAnswer != "" && submitted == key.CorrectAnswer
	default:
		correct = key.CorrectAnswer != "" && foldAnswer(submitted) == foldAnswer(key.CorrectAnswer)
	}
	if correct {
		return true, key.Marks
	}
	return false, key.NegativeMarks
}

func foldAnswer(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
