package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"learninghub/models"
)

// parseID reads the numeric :id path parameter, replying 404 on garbage
// (an unparseable id can never name a record).
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// ListUsers returns user accounts, optionally filtered by role and/or course.
// Records are returned verbatim, plaintext passwords included — a known
// security gap kept for compatibility with the admin frontend.
func (h *Handler) ListUsers(c *gin.Context) {
	role := c.Query("role")
	courseID := c.Query("courseId")
	ctx := c.Request.Context()

	var (
		users []models.User
		err   error
	)
	switch {
	case role != "" && courseID != "":
		users, err = h.repo.Users.FindByCourseIDAndRole(ctx, courseID, role)
	case role != "":
		users, err = h.repo.Users.FindAllByRole(ctx, role)
	case courseID != "":
		users, err = h.repo.Users.FindAllByCourseID(ctx, courseID)
	default:
		users, err = h.repo.Users.FindAll(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser registers a new account. Professors must carry a course
// assignment; every other role has its course cleared — professors are the
// only role affiliated with a course at creation time.
func (h *Handler) CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.repo.Users.FindByUsername(ctx, user.Username); err == nil {
		c.String(http.StatusBadRequest, "Username already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if strings.EqualFold(user.Role, "professor") {
		if user.CourseID == nil || strings.TrimSpace(*user.CourseID) == "" {
			c.String(http.StatusBadRequest, "Professors must be assigned to a Course/Department.")
			return
		}
	} else {
		user.CourseID = nil
	}
	if user.Role == "" {
		user.Role = "student"
	}

	if err := h.repo.Users.Save(ctx, &user); err != nil {
		c.String(http.StatusBadRequest, "Error creating user: "+err.Error())
		return
	}

	h.logActivity(ctx, user.Username, "User created", user.Role)
	h.notify(ctx, user.ID,
		"Welcome to CS Learning Hub",
		"Your account has been created successfully. Welcome to the CS Learning Hub platform!",
		"system", nil)

	c.JSON(http.StatusOK, user)
}

// UpdateUser overwrites the supplied account fields. The professor/course
// rule is not re-checked here; only creation enforces it.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	user, err := h.repo.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	if req.Email != nil {
		user.Email = req.Email
	}
	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.CourseID != nil {
		user.CourseID = req.CourseID
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := h.repo.Users.Save(ctx, user); err != nil {
		c.String(http.StatusBadRequest, "Error updating user: "+err.Error())
		return
	}

	h.logActivity(ctx, user.Username, "User profile updated by admin", "admin")
	h.notify(ctx, user.ID,
		"Profile Updated",
		"Your profile has been updated by administrator.",
		"system", nil)

	c.JSON(http.StatusOK, user)
}

// AdminResetPassword overwrites a user's password on their behalf
func (h *Handler) AdminResetPassword(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user, err := h.repo.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Password) == "" {
		c.String(http.StatusBadRequest, "Password is required")
		return
	}

	user.Password = req.Password
	if err := h.repo.Users.Save(ctx, user); err != nil {
		c.String(http.StatusBadRequest, "Error resetting password: "+err.Error())
		return
	}

	h.logActivity(ctx, user.Username, "Password reset by admin", "admin")
	h.notify(ctx, user.ID,
		"Password Reset",
		"Your password has been reset by administrator. Please login with your new password.",
		"system", nil)

	c.String(http.StatusOK, "Password updated successfully")
}

// DeleteUser removes an account. The user's notifications and log entries are
// left in place; nothing cascades.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user, err := h.repo.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	if err := h.repo.Users.DeleteByID(ctx, id); err != nil {
		c.String(http.StatusBadRequest, "Error deleting user: "+err.Error())
		return
	}

	h.logActivity(ctx, user.Username, "User deleted", user.Role)

	c.String(http.StatusOK, "User deleted successfully")
}
