package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/sharekit/api/models"
	"github.com/moyoez/sharekit/share"
	"github.com/moyoez/sharekit/tool"
)

// UserStatus returns server status for local clients.
// GET /api/self/v1/status
func UserStatus(c *gin.Context) {
	program := tool.GetProgramConfigStatus()
	c.JSON(http.StatusOK, gin.H{
		"running":           true,
		"notify_ws_enabled": models.NotifyWSEnabled(),
		"pending_dialogs":   share.PendingDialogCount(),
		"mode":              program.Mode.String(),
		"strict":            program.StrictValidation,
	})
}
