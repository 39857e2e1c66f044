package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-contest-service/internal/domain"
)

func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// writeError maps service errors onto HTTP statuses. Validation errors carry
// the per-field breakdown; everything unrecognized becomes a 500 without
// leaking the underlying error.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrAccountDisabled):
		respondError(c, http.StatusUnauthorized, err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrQuizNotActive):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("http: internal error: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
