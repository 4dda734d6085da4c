package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learninghub/models"
)

const resetTokenTTL = time.Hour

// processLogin authenticates a username/password pair and optionally enforces
// a portal role. The username may arrive under "username" or "identifier";
// the two frontends disagree on the field name.
func (h *Handler) processLogin(c *gin.Context, requiredRole string) {
	var loginData map[string]string
	if err := c.ShouldBindJSON(&loginData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Credentials required"})
		return
	}

	username := loginData["username"]
	if username == "" {
		username = loginData["identifier"]
	}
	password, hasPassword := loginData["password"]

	if username == "" || !hasPassword {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Credentials required"})
		return
	}

	user, err := h.repo.Users.FindByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Deliberately the same message as a wrong password.
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		h.logger.Error("Failed to look up user for login", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// Passwords are stored and compared as plaintext (known defect, kept for
	// compatibility with the existing data).
	if password != user.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	if requiredRole != "" && !strings.EqualFold(user.Role, requiredRole) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Access Denied: You do not have " + requiredRole + " permissions for this portal.",
		})
		return
	}

	h.logActivity(c.Request.Context(), user.Username, "Logged in to "+user.Role+" portal", user.Role)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"role":     user.Role,
		"username": user.Username,
		"courseId": user.CourseID,
	})
}

// Login is the general login endpoint; role checks are left to the caller
func (h *Handler) Login(c *gin.Context) {
	h.processLogin(c, "")
}

// StudentLogin requires the student role
func (h *Handler) StudentLogin(c *gin.Context) {
	h.processLogin(c, "student")
}

// ProfessorLogin requires the professor role
func (h *Handler) ProfessorLogin(c *gin.Context) {
	h.processLogin(c, "professor")
}

// AdminLogin requires the admin role
func (h *Handler) AdminLogin(c *gin.Context) {
	h.processLogin(c, "admin")
}

// ForgotPassword starts the email reset flow. The response is the same
// whether or not the account exists, so the endpoint cannot be used to
// enumerate usernames.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username or email required"})
		return
	}

	ident := req.Username
	if ident == "" {
		ident = req.Identifier
	}
	if ident == "" && req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username or email required"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.repo.Users.FindByUsername(ctx, ident)
	if errors.Is(err, gorm.ErrRecordNotFound) && req.Email != "" {
		user, err = h.repo.Users.FindByEmail(ctx, req.Email)
	}

	generic := gin.H{"success": true, "message": "If the account exists, a reset link has been sent."}

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.logger.Error("Failed to look up user for password reset", zap.Error(err))
		}
		c.JSON(http.StatusOK, generic)
		return
	}

	if user.Email == nil || *user.Email == "" {
		h.logger.Warn("Password reset requested for account without email",
			zap.String("username", user.Username))
		c.JSON(http.StatusOK, generic)
		return
	}

	token := uuid.NewString()
	expiry := time.Now().Add(resetTokenTTL)
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	if err := h.repo.Users.Save(ctx, user); err != nil {
		h.logger.Error("Failed to store reset token", zap.Error(err))
		c.JSON(http.StatusOK, generic)
		return
	}

	h.logActivity(ctx, user.Username, "Password reset requested", user.Role)
	h.email.SendPasswordResetEmail(*user.Email, token, user.Username, user.Role)

	c.JSON(http.StatusOK, generic)
}

// ResetPassword completes the email reset flow
func (h *Handler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Token and new password are required")
		return
	}

	ctx := c.Request.Context()
	user, err := h.repo.Users.FindByResetToken(ctx, req.Token)
	if err != nil || user.ResetTokenExpiry == nil || user.ResetTokenExpiry.Before(time.Now()) {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			h.logger.Error("Failed to look up reset token", zap.Error(err))
		}
		c.String(http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	user.Password = req.NewPassword
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	if err := h.repo.Users.Save(ctx, user); err != nil {
		c.String(http.StatusBadRequest, "Error resetting password: "+err.Error())
		return
	}

	h.logActivity(ctx, user.Username, "Password reset via email", user.Role)

	c.String(http.StatusOK, "Password updated successfully")
}
