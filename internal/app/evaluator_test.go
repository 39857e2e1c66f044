package app_test

import (
	"testing"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

func TestEvaluateMultipleChoice(t *testing.T) {
	key := domain.AnswerKey{
		QuestionID:    "q1",
		Type:          domain.MultipleChoice,
		CorrectAnswer: "Dhaka",
		Marks:         2,
		NegativeMarks: 0.5,
	}

	correct, marks := app.Evaluate(key, "Dhaka")
	if !correct || marks != 2 {
		t.Fatalf("expected correct with 2 marks, got %v %v", correct, marks)
	}

	// choice matching is exact, case included
	correct, marks = app.Evaluate(key, "dhaka")
	if correct || marks != 0.5 {
		t.Fatalf("expected wrong with negative marks, got %v %v", correct, marks)
	}

	correct, _ = app.Evaluate(key, " Dhaka ")
	if correct {
		t.Fatal("whitespace variants must not match a choice answer")
	}
}

func TestEvaluateChoiceWithoutFlaggedOption(t *testing.T) {
	key := domain.AnswerKey{
		QuestionID:    "q1",
		Type:          domain.MultipleChoice,
		CorrectAnswer: "",
		Marks:         1,
	}
	if correct, _ := app.Evaluate(key, ""); correct {
		t.Fatal("a question with no flagged option can never be correct")
	}
}

func TestEvaluateTextAnswersFold(t *testing.T) {
	key := domain.AnswerKey{
		QuestionID:    "q2",
		Type:          domain.FillInTheBlank,
		CorrectAnswer: "Mount Everest",
		Marks:         1,
		NegativeMarks: 0,
	}

	for _, submitted := range []string{"Mount Everest", "mount everest", "  MOUNT EVEREST  "} {
		if correct, marks := app.Evaluate(key, submitted); !correct || marks != 1 {
			t.Fatalf("expected %q to match, got %v %v", submitted, correct, marks)
		}
	}

	if correct, marks := app.Evaluate(key, "K2"); correct || marks != 0 {
		t.Fatalf("expected wrong with 0 marks, got %v %v", correct, marks)
	}
}

func TestEvaluateTrueFalse(t *testing.T) {
	key := domain.AnswerKey{
		QuestionID:    "q3",
		Type:          domain.TrueFalse,
		CorrectAnswer: "true",
		Marks:         1,
		NegativeMarks: 0.25,
	}
	if correct, _ := app.Evaluate(key, "True"); !correct {
		t.Fatal("true-false answers compare case-insensitively")
	}
	if correct, marks := app.Evaluate(key, "false"); correct || marks != 0.25 {
		t.Fatalf("expected wrong with 0.25, got %v %v", correct, marks)
	}
}
