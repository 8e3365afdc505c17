package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"marga/database/repository/records"
	"marga/utils"
)

// LoginHandler handles POST /api/login: username/password against the
// therapist accounts, answering with the safe user object and a JWT.
func (h *Handler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required."})
		return
	}

	therapist, err := h.Repo.GetTherapistByUsername(c.Request.Context(), req.Username)
	if errors.Is(err, records.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password."})
		return
	}
	if err != nil {
		logger.Error("login lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An internal server error occurred."})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(therapist.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password."})
		return
	}

	token, err := utils.GenerateToken(therapist.ID, string(therapist.Role), 24*time.Hour)
	if err != nil {
		logger.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An internal server error occurred."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    therapist.SafeView(),
		"token":   token,
	})
}
