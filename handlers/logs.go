package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"learninghub/models"
)

// GetLogs returns the full activity log, most recent first
func (h *Handler) GetLogs(c *gin.Context) {
	logs, err := h.repo.Logs.FindAllNewestFirst(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if logs == nil {
		logs = []models.ActivityLog{}
	}
	c.JSON(http.StatusOK, logs)
}
