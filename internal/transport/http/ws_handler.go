package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

// LeaderboardWSHandler streams live standings for one quiz over a websocket.
// Clients receive a snapshot on connect and a new one whenever a
// participation changes.
type LeaderboardWSHandler struct {
	participations *app.ParticipationService
	upgrader       websocket.Upgrader
}

func NewLeaderboardWSHandler(participations *app.ParticipationService) *LeaderboardWSHandler {
	return &LeaderboardWSHandler{
		participations: participations,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type wsMessage struct {
	Type    string             `json:"type"`
	Payload domain.Leaderboard `json:"payload"`
}

func (h *LeaderboardWSHandler) ServeWS(c *gin.Context) {
	quizID := c.Param("quizId")
	if quizID == "" {
		respondError(c, http.StatusBadRequest, "missing quizId")
		return
	}

	snapshot, err := h.participations.Standings(c.Request.Context(), quizID)
	if err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel, err := h.participations.Subscribe(quizID)
	if err != nil {
		_ = conn.WriteJSON(gin.H{"type": "error", "message": err.Error()})
		return
	}
	defer cancel()

	if err := conn.WriteJSON(wsMessage{Type: "leaderboard", Payload: snapshot}); err != nil {
		return
	}

	// Reader goroutine only watches for the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(wsMessage{Type: "leaderboard", Payload: update}); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
