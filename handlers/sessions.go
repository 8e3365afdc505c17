package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marga/middleware"
	"marga/models"
	"marga/utils"
)

// sessionWithClient enriches a session with its client's display name for
// the calendar view.
type sessionWithClient struct {
	models.Session
	ClientName string `json:"clientName"`
}

// ListSessionsHandler handles GET /api/sessions, scoped like the client
// listing: admins get every session, therapists only their caseload's.
func (h *Handler) ListSessionsHandler(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	ctx := c.Request.Context()
	logger := utils.GetLogger()

	clients, err := h.Repo.ListClients(ctx)
	if err != nil {
		logger.Error("failed to list clients for sessions view", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An internal server error occurred."})
		return
	}
	nameByID := make(map[string]string, len(clients))
	mine := make(map[string]bool, len(clients))
	for _, cl := range clients {
		nameByID[cl.ID] = cl.DisplayName()
		if cl.TherapistID == caller.ID {
			mine[cl.ID] = true
		}
	}

	sessions, err := h.Repo.ListSessions(ctx)
	if err != nil {
		logger.Error("failed to list sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An internal server error occurred."})
		return
	}

	enriched := []sessionWithClient{}
	for _, s := range sessions {
		if !caller.IsAdmin() && !mine[s.ClientID] {
			continue
		}
		name, found := nameByID[s.ClientID]
		if !found {
			name = "Unknown Client"
		}
		enriched = append(enriched, sessionWithClient{Session: s, ClientName: name})
	}
	c.JSON(http.StatusOK, enriched)
}
