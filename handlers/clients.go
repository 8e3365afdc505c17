package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marga/database/repository/records"
	"marga/middleware"
	"marga/models"
	"marga/utils"
)

// ListClientsHandler handles GET /api/clients: admins see the whole
// practice, therapists their own caseload.
func (h *Handler) ListClientsHandler(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var clients []models.Client
	var err error
	if caller.IsAdmin() {
		clients, err = h.Repo.ListClients(c.Request.Context())
	} else {
		clients, err = h.Repo.ListClientsByTherapist(c.Request.Context(), caller.ID)
	}
	if err != nil {
		utils.GetLogger().Error("failed to list clients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An internal server error occurred."})
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	c.JSON(http.StatusOK, clients)
}

// GetClientHandler handles GET /api/clients/:id.
func (h *Handler) GetClientHandler(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	client, err := h.Repo.GetClient(c.Request.Context(), c.Param("id"))
	if errors.Is(err, records.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Client not found"})
		return
	}
	if err != nil {
		utils.GetLogger().Error("failed to load client", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An internal server error occurred."})
		return
	}
	if !caller.IsAdmin() && client.TherapistID != caller.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, client)
}
