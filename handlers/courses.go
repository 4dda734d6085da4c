package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learninghub/models"
	"learninghub/utils"
)

// ListCourses returns the full course catalog
func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.repo.Courses.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	c.JSON(http.StatusOK, courses)
}

// CreateCourse adds a course from multipart form fields and fans a
// notification out to every student and professor.
func (h *Handler) CreateCourse(c *gin.Context) {
	id := c.PostForm("id")
	title := c.PostForm("title")
	description := c.PostForm("description")
	themeColor := c.PostForm("themeColor")

	if id == "" {
		c.String(http.StatusBadRequest, "Course Code (ID) is required.")
		return
	}

	ctx := c.Request.Context()
	exists, err := h.repo.Courses.ExistsByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists {
		c.String(http.StatusBadRequest, "Course Code (ID) already exists.")
		return
	}

	course := models.Course{
		ID:          id,
		Title:       title,
		Description: description,
		ThemeColor:  themeColor,
		Status:      "active",
	}

	if file, err := c.FormFile("file"); err == nil {
		imagePath, err := utils.SaveUploadedFile(file, h.cfg.Upload.Dir)
		if err != nil {
			c.String(http.StatusBadRequest, "Error storing course image: "+err.Error())
			return
		}
		course.Image = imagePath
	}

	if err := h.repo.Courses.Save(ctx, &course); err != nil {
		c.String(http.StatusBadRequest, "Error creating course: "+err.Error())
		return
	}

	h.logActivity(ctx, course.ID, "Course created", "System")
	h.sendCourseNotificationToAllUsers(ctx, &course)

	c.JSON(http.StatusOK, course)
}

// sendCourseNotificationToAllUsers writes one notification row per student or
// professor. One scan over all users, one insert per match; no dedup guard,
// so re-announcing is possible.
func (h *Handler) sendCourseNotificationToAllUsers(ctx context.Context, course *models.Course) {
	allUsers, err := h.repo.Users.FindAll(ctx)
	if err != nil {
		h.logger.Error("Failed to load users for course notification",
			zap.String("courseId", course.ID),
			zap.Error(err),
		)
		return
	}

	for _, user := range allUsers {
		if strings.EqualFold(user.Role, "student") || strings.EqualFold(user.Role, "professor") {
			h.notify(ctx, user.ID,
				"New Course Available",
				"A new course '"+course.Title+"' ("+course.ID+") has been added.",
				"course", &course.ID)
		}
	}
}

// UpdateCourse overwrites a course's form fields; no notification is sent
func (h *Handler) UpdateCourse(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	course, err := h.repo.Courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	course.Title = c.PostForm("title")
	course.Description = c.PostForm("description")
	course.ThemeColor = c.PostForm("themeColor")

	if file, err := c.FormFile("file"); err == nil {
		imagePath, err := utils.SaveUploadedFile(file, h.cfg.Upload.Dir)
		if err != nil {
			c.String(http.StatusBadRequest, "Error storing course image: "+err.Error())
			return
		}
		course.Image = imagePath
	}

	if err := h.repo.Courses.Save(ctx, course); err != nil {
		c.String(http.StatusBadRequest, "Error updating course: "+err.Error())
		return
	}

	h.logActivity(ctx, course.ID, "Course updated", "System")

	c.JSON(http.StatusOK, course)
}

// DeleteCourse removes a course. Subjects referencing it are left untouched;
// there is no referential integrity at this layer.
func (h *Handler) DeleteCourse(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	exists, err := h.repo.Courses.ExistsByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}

	if err := h.repo.Courses.DeleteByID(ctx, id); err != nil {
		c.String(http.StatusBadRequest, "Error deleting course: "+err.Error())
		return
	}

	h.logActivity(ctx, id, "Course deleted", "System")

	c.String(http.StatusOK, "Course deleted successfully")
}
