package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learninghub/config"
	"learninghub/models"
	"learninghub/repository"
	"learninghub/services/email"
)

// Handler carries the dependencies shared by all HTTP handlers
type Handler struct {
	repo   *repository.Repository
	email  email.Service
	cfg    *config.Config
	logger *zap.Logger
}

// New creates the Handler
func New(cfg *config.Config, repo *repository.Repository, mail email.Service, logger *zap.Logger) *Handler {
	return &Handler{
		repo:   repo,
		email:  mail,
		cfg:    cfg,
		logger: logger,
	}
}

// logActivity appends an audit row. Audit failures are logged and swallowed
// so they never fail the request that triggered them.
func (h *Handler) logActivity(ctx context.Context, target, action, role string) {
	entry := &models.ActivityLog{Target: target, Action: action, Role: role}
	if err := h.repo.Logs.Create(ctx, entry); err != nil {
		h.logger.Error("Failed to write activity log",
			zap.String("target", target),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// notify inserts one notification row for one recipient. Like the audit
// trail, a failed insert is logged and swallowed.
func (h *Handler) notify(ctx context.Context, userID int64, title, message, notifType string, relatedID *string) {
	n := &models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		RelatedID: relatedID,
	}
	if err := h.repo.Notifications.Create(ctx, n); err != nil {
		h.logger.Error("Failed to create notification",
			zap.Int64("userId", userID),
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

// Test is the connectivity check endpoint
func (h *Handler) Test(c *gin.Context) {
	c.String(http.StatusOK, "Backend is working!")
}

// Health is the liveness endpoint
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
