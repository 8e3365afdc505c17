// Package handlers holds the Gin endpoints: login, the command processor,
// the read-only record views for the GUI, and xlsx import/export.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marga/database/repository/records"
	"marga/middleware"
	"marga/services/command"
	"marga/services/transfer"
)

// Handler bundles the services the HTTP layer dispatches into.
type Handler struct {
	Repo     records.Repository
	Commands command.Service
	Importer *transfer.ImportService
	Exporter *transfer.ExportService
}

func NewHandler(repo records.Repository, commands command.Service) *Handler {
	return &Handler{
		Repo:     repo,
		Commands: commands,
		Importer: &transfer.ImportService{Repo: repo},
		Exporter: &transfer.ExportService{Repo: repo},
	}
}

// CommandHandler handles POST /api/command. The caller comes from the auth
// middleware; the command service never surfaces an error past its Result.
func (h *Handler) CommandHandler(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required."})
		return
	}

	var req struct {
		Command string `json:"command" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Command is required."})
		return
	}

	c.JSON(http.StatusOK, h.Commands.Process(c.Request.Context(), req.Command, caller))
}
