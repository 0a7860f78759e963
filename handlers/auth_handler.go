package handlers

import (
	"errors"
	"net/http"

	"surveillance-map/be/logging"
	"surveillance-map/be/metrics"
	"surveillance-map/be/middleware"
	"surveillance-map/be/models"
	"surveillance-map/be/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}

	session, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			metrics.LoginAttempts.WithLabelValues("invalid").Inc()
			logging.Warn().Str("client_ip", c.ClientIP()).Msg("failed login attempt")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		logging.Error().Err(err).Msg("failed to issue session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logging.Info().Str("user", session.User.Username).Msg("login successful")
	c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Token:   session.Token,
		User:    session.User,
	})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	user, exists := c.Get(middleware.ContextUser)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	// Tokens are stateless; the client discards its copy.
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}
