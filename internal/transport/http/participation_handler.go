package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

type ParticipationHandler struct {
	participations *app.ParticipationService
}

func NewParticipationHandler(participations *app.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{participations: participations}
}

type startRequest struct {
	QuizID string `json:"quizId"`
}

func (h *ParticipationHandler) Start(c *gin.Context) {
	var in startRequest
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.participations.Start(c.Request.Context(), callerID(c), in.QuizID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Participation started", p)
}

type submitAnswerRequest struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

func (h *ParticipationHandler) SubmitAnswer(c *gin.Context) {
	var in submitAnswerRequest
	if !bindJSON(c, &in) {
		return
	}
	result, err := h.participations.SubmitAnswer(c.Request.Context(), c.Param("id"), in.QuestionID, in.Answer)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Answer submitted", result)
}

func (h *ParticipationHandler) Complete(c *gin.Context) {
	summary, err := h.participations.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Participation completed", summary)
}

type checkRequest struct {
	UserID string `json:"userId"`
	QuizID string `json:"quizId"`
}

func (h *ParticipationHandler) Check(c *gin.Context) {
	var in checkRequest
	if !bindJSON(c, &in) {
		return
	}
	result, err := h.participations.Check(c.Request.Context(), in.UserID, in.QuizID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Participation checked", result)
}

func (h *ParticipationHandler) Get(c *gin.Context) {
	p, err := h.participations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Participation retrieved", p)
}

func (h *ParticipationHandler) List(c *gin.Context) {
	filter := app.ParticipationFilter{
		UserID: c.Query("userId"),
		QuizID: c.Query("quizId"),
		Status: domain.ParticipationStatus(c.Query("status")),
	}
	participations, err := h.participations.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Participations retrieved", participations)
}

// ListByQuiz returns the quiz's participations in leaderboard order.
func (h *ParticipationHandler) ListByQuiz(c *gin.Context) {
	status := domain.ParticipationStatus(c.Query("status"))
	participations, err := h.participations.ListByQuiz(c.Request.Context(), c.Param("quizId"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Participations retrieved", participations)
}

func (h *ParticipationHandler) Update(c *gin.Context) {
	var update domain.ParticipationUpdate
	if !bindJSON(c, &update) {
		return
	}
	p, err := h.participations.AdminUpdate(c.Request.Context(), c.Param("id"), &update)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Participation updated", p)
}

func (h *ParticipationHandler) Delete(c *gin.Context) {
	if err := h.participations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Participation deleted", nil)
}
