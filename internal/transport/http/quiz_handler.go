package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

type QuizHandler struct {
	quizzes *app.QuizService
}

func NewQuizHandler(quizzes *app.QuizService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes}
}

func (h *QuizHandler) Create(c *gin.Context) {
	var in app.CreateQuizInput
	if !bindJSON(c, &in) {
		return
	}
	quiz, err := h.quizzes.Create(c.Request.Context(), callerID(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Quiz created", quiz)
}

func (h *QuizHandler) Get(c *gin.Context) {
	quiz, err := h.quizzes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Quiz retrieved", quiz)
}

func (h *QuizHandler) List(c *gin.Context) {
	filter := app.QuizFilter{
		Status:    domain.QuizStatus(c.Query("status")),
		EventID:   c.Query("eventId"),
		CreatedBy: c.Query("createdBy"),
	}
	quizzes, err := h.quizzes.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Quizzes retrieved", quizzes)
}

func (h *QuizHandler) ListByEvent(c *gin.Context) {
	quizzes, err := h.quizzes.ListByEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Quizzes retrieved", quizzes)
}

func (h *QuizHandler) Update(c *gin.Context) {
	var update domain.QuizUpdate
	if !bindJSON(c, &update) {
		return
	}
	quiz, err := h.quizzes.Update(c.Request.Context(), c.Param("id"), &update)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Quiz updated", quiz)
}

func (h *QuizHandler) Delete(c *gin.Context) {
	if err := h.quizzes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Quiz deleted", nil)
}

func (h *QuizHandler) Stats(c *gin.Context) {
	stats, err := h.quizzes.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Quiz stats retrieved", stats)
}
