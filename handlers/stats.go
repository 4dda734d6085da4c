package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats returns headline counts for the admin dashboard: total users,
// users per role, catalog sizes, and professors per course.
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	totalUsers, err := h.repo.Users.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	byRole := gin.H{}
	for _, role := range []string{"admin", "professor", "student"} {
		count, err := h.repo.Users.CountByRole(ctx, role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		byRole[role+"s"] = count
	}

	courseCount, err := h.repo.Courses.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	subjectCount, err := h.repo.Subjects.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	professorsByCourse := map[string]int64{}
	courses, err := h.repo.Courses.FindAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	for _, course := range courses {
		count, err := h.repo.Users.CountByCourseIDAndRole(ctx, course.ID, "professor")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		professorsByCourse[course.ID] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":         totalUsers,
		"usersByRole":        byRole,
		"courses":            courseCount,
		"subjects":           subjectCount,
		"professorsByCourse": professorsByCourse,
	})
}
