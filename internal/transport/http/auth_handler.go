package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-contest-service/internal/app"
)

type AuthHandler struct {
	auth *app.AuthService
}

func NewAuthHandler(auth *app.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Contact  string `json:"contact"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in app.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	user, token, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Registration successful", gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginRequest
	if !bindJSON(c, &in) {
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), in.Contact, in.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.auth.Profile(c.Request.Context(), callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile retrieved", user)
}
