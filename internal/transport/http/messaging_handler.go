package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

type MessagingHandler struct {
	messaging *app.MessagingService
}

func NewMessagingHandler(messaging *app.MessagingService) *MessagingHandler {
	return &MessagingHandler{messaging: messaging}
}

func (h *MessagingHandler) SendBulk(c *gin.Context) {
	var in app.SendBulkInput
	if !bindJSON(c, &in) {
		return
	}
	msg, err := h.messaging.SendBulk(c.Request.Context(), callerID(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Bulk message queued", msg)
}

func (h *MessagingHandler) History(c *gin.Context) {
	messages, err := h.messaging.History(c.Request.Context(), c.Query("sentBy"), domain.MessageStatus(c.Query("status")))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Messaging history retrieved", messages)
}

func (h *MessagingHandler) Stats(c *gin.Context) {
	stats, err := h.messaging.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Messaging stats retrieved", stats)
}

func (h *MessagingHandler) Get(c *gin.Context) {
	msg, err := h.messaging.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Message retrieved", msg)
}

func (h *MessagingHandler) UpdateStatus(c *gin.Context) {
	var in app.StatusUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	msg, err := h.messaging.UpdateStatus(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Message status updated", msg)
}

func (h *MessagingHandler) Delete(c *gin.Context) {
	if err := h.messaging.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Message deleted", nil)
}
