package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

type EventHandler struct {
	events *app.EventService
}

func NewEventHandler(events *app.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func (h *EventHandler) Create(c *gin.Context) {
	var in app.CreateEventInput
	if !bindJSON(c, &in) {
		return
	}
	event, err := h.events.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Event created", event)
}

func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Event retrieved", event)
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.List(c.Request.Context(), domain.EventStatus(c.Query("status")))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Events retrieved", events)
}

func (h *EventHandler) Update(c *gin.Context) {
	var update domain.EventUpdate
	if !bindJSON(c, &update) {
		return
	}
	event, err := h.events.Update(c.Request.Context(), c.Param("id"), &update)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Event updated", event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Event deleted", nil)
}

type addParticipantRequest struct {
	EventID string `json:"eventId"`
}

func (h *EventHandler) AddParticipant(c *gin.Context) {
	var in addParticipantRequest
	if !bindJSON(c, &in) {
		return
	}
	event, err := h.events.Register(c.Request.Context(), in.EventID, callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Participant added", event)
}

func (h *EventHandler) Participants(c *gin.Context) {
	participants, err := h.events.Participants(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Participants retrieved", participants)
}
