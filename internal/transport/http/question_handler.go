package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

type QuestionHandler struct {
	questions *app.QuestionService
}

func NewQuestionHandler(questions *app.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var in app.CreateQuestionInput
	if !bindJSON(c, &in) {
		return
	}
	q, err := h.questions.Create(c.Request.Context(), callerID(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Question created", q)
}

type bulkCreateRequest struct {
	QuizID    string                    `json:"quizId"`
	Questions []app.CreateQuestionInput `json:"questions"`
}

func (h *QuestionHandler) CreateBatch(c *gin.Context) {
	var in bulkCreateRequest
	if !bindJSON(c, &in) {
		return
	}
	created, err := h.questions.CreateBatch(c.Request.Context(), callerID(c), in.QuizID, in.Questions)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Questions created", created)
}

func (h *QuestionHandler) Get(c *gin.Context) {
	q, err := h.questions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Question retrieved", q)
}

func (h *QuestionHandler) ListByQuiz(c *gin.Context) {
	questions, err := h.questions.ListByQuiz(c.Request.Context(), c.Param("quizId"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Questions retrieved", questions)
}

func (h *QuestionHandler) ListByType(c *gin.Context) {
	questions, err := h.questions.ListByType(c.Request.Context(), domain.QuestionType(c.Param("type")))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Questions retrieved", questions)
}

func (h *QuestionHandler) Update(c *gin.Context) {
	var update domain.QuestionUpdate
	if !bindJSON(c, &update) {
		return
	}
	q, err := h.questions.Update(c.Request.Context(), c.Param("id"), &update)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Question updated", q)
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	if err := h.questions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Question deleted", nil)
}

type bulkDeleteRequest struct {
	IDs []string `json:"questionIds"`
}

func (h *QuestionHandler) DeleteBatch(c *gin.Context) {
	var in bulkDeleteRequest
	if !bindJSON(c, &in) {
		return
	}
	deleted, err := h.questions.DeleteBatch(c.Request.Context(), in.IDs)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Questions deleted", gin.H{"deletedCount": deleted})
}

type checkAnswerRequest struct {
	Answer string `json:"answer"`
}

func (h *QuestionHandler) SubmitAnswer(c *gin.Context) {
	var in checkAnswerRequest
	if !bindJSON(c, &in) {
		return
	}
	correct, marks, err := h.questions.CheckAnswer(c.Request.Context(), c.Param("id"), in.Answer)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Answer checked", gin.H{
		"isCorrect":     correct,
		"marksObtained": marks,
	})
}
