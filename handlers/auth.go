package handlers

import (
	"net/http"

	"asdcare/middleware"
	"asdcare/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Register handles POST /api/auth/register.
func (h *HandlerBundle) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "register", err)
		return
	}
	h.getLogger(c).Info("user registered", zap.String("userId", resp.User.ID), zap.String("role", string(resp.User.Role)))
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *HandlerBundle) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Users.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the caller's token.
func (h *HandlerBundle) Logout(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.Users.Logout(c.Request.Context(), claims); err != nil {
		h.respondError(c, "logout", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the caller's public profile.
func (h *HandlerBundle) Me(c *gin.Context) {
	u, err := h.Users.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, u)
}
