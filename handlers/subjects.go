package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learninghub/models"
)

// ListSubjects returns subjects, optionally scoped to one course
func (h *Handler) ListSubjects(c *gin.Context) {
	courseID := c.Query("courseId")
	ctx := c.Request.Context()

	var (
		subjects []models.Subject
		err      error
	)
	if courseID != "" {
		subjects, err = h.repo.Subjects.FindByCourseID(ctx, courseID)
	} else {
		subjects, err = h.repo.Subjects.FindAll(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	c.JSON(http.StatusOK, subjects)
}

// GetSubject returns one subject by code
func (h *Handler) GetSubject(c *gin.Context) {
	subject, err := h.repo.Subjects.FindByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}
	c.JSON(http.StatusOK, subject)
}

// CreateSubject adds a subject and notifies every user enrolled in its
// course. Year level and semester submitted as zero default to 1; a missing
// status defaults to "active".
func (h *Handler) CreateSubject(c *gin.Context) {
	var subject models.Subject
	if err := c.ShouldBindJSON(&subject); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	exists, err := h.repo.Subjects.ExistsByCode(ctx, subject.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists {
		c.String(http.StatusBadRequest, "Subject Code already exists.")
		return
	}

	if subject.YearLevel == 0 {
		subject.YearLevel = 1
	}
	if subject.Semester == 0 {
		subject.Semester = 1
	}
	if subject.Status == "" {
		subject.Status = "active"
	}

	if err := h.repo.Subjects.Save(ctx, &subject); err != nil {
		c.String(http.StatusBadRequest, "Error creating subject: "+err.Error())
		return
	}

	h.logActivity(ctx, subject.Code, "Subject created", "System")
	h.sendSubjectNotification(ctx, &subject)

	c.JSON(http.StatusOK, subject)
}

// sendSubjectNotification notifies every user whose course matches the new
// subject's course. The message carries the resolved course title, falling
// back to the raw course id when the course record is missing.
func (h *Handler) sendSubjectNotification(ctx context.Context, subject *models.Subject) {
	courseName := subject.CourseID
	if course, err := h.repo.Courses.FindByID(ctx, subject.CourseID); err == nil {
		courseName = course.Title
	}

	courseUsers, err := h.repo.Users.FindAllByCourseID(ctx, subject.CourseID)
	if err != nil {
		h.logger.Error("Failed to load users for subject notification",
			zap.String("subjectCode", subject.Code),
			zap.Error(err),
		)
		return
	}

	for _, user := range courseUsers {
		h.notify(ctx, user.ID,
			"New Subject Added",
			"A new subject '"+subject.Title+"' ("+subject.Code+") has been added to "+courseName+".",
			"subject", &subject.Code)
	}
}

// UpdateSubject overwrites title, year level, semester and status verbatim;
// the create-time zero-value defaults are not reapplied here
func (h *Handler) UpdateSubject(c *gin.Context) {
	code := c.Param("code")
	ctx := c.Request.Context()

	existing, err := h.repo.Subjects.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	var subject models.Subject
	if err := c.ShouldBindJSON(&subject); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	existing.Title = subject.Title
	existing.YearLevel = subject.YearLevel
	existing.Semester = subject.Semester
	existing.Status = subject.Status

	if err := h.repo.Subjects.Save(ctx, existing); err != nil {
		c.String(http.StatusBadRequest, "Error updating subject: "+err.Error())
		return
	}

	h.logActivity(ctx, code, "Subject updated", "System")

	c.JSON(http.StatusOK, existing)
}

// DeleteSubject removes a subject by code
func (h *Handler) DeleteSubject(c *gin.Context) {
	code := c.Param("code")
	ctx := c.Request.Context()

	exists, err := h.repo.Subjects.ExistsByCode(ctx, code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}

	if err := h.repo.Subjects.DeleteByCode(ctx, code); err != nil {
		c.String(http.StatusBadRequest, "Error deleting subject: "+err.Error())
		return
	}

	h.logActivity(ctx, code, "Subject deleted", "System")

	c.String(http.StatusOK, "Subject deleted successfully")
}
