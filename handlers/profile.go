package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"learninghub/models"
	"learninghub/utils"
)

// There is no per-caller session: every profile operation resolves to the
// fixed "admin" account regardless of who calls it. This mirrors the existing
// frontends, which only expose these endpoints from the admin portal. An
// authenticated-principal context would replace this if multi-admin support
// is ever needed.
const adminUsername = "admin"

func (h *Handler) currentAdmin(c *gin.Context) (*models.User, bool) {
	user, err := h.repo.Users.FindByUsername(c.Request.Context(), adminUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return nil, false
	}
	return user, true
}

// GetProfile returns the admin account
func (h *Handler) GetProfile(c *gin.Context) {
	user, ok := h.currentAdmin(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile overwrites the supplied profile fields. Absent fields are
// left untouched; no format validation is applied.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Error updating profile: "+err.Error())
		return
	}

	user, ok := h.currentAdmin(c)
	if !ok {
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

	if err := h.repo.Users.Save(c.Request.Context(), user); err != nil {
		c.String(http.StatusBadRequest, "Error updating profile: "+err.Error())
		return
	}

	h.logActivity(c.Request.Context(), user.Username, "Profile updated", user.Role)

	c.JSON(http.StatusOK, user)
}

// ChangePassword verifies the current password and overwrites it with the new
// one. No strength requirements are enforced.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req models.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Error changing password: "+err.Error())
		return
	}

	user, ok := h.currentAdmin(c)
	if !ok {
		return
	}

	if user.Password != req.CurrentPassword {
		c.String(http.StatusBadRequest, "Current password is incorrect")
		return
	}

	user.Password = req.NewPassword
	if err := h.repo.Users.Save(c.Request.Context(), user); err != nil {
		c.String(http.StatusBadRequest, "Error changing password: "+err.Error())
		return
	}

	h.logActivity(c.Request.Context(), user.Username, "Password changed", user.Role)

	c.String(http.StatusOK, "Password updated successfully")
}

// UploadProfilePicture stores the uploaded image and records its filename on
// the admin account
func (h *Handler) UploadProfilePicture(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.String(http.StatusBadRequest, "Error uploading picture: "+err.Error())
		return
	}

	user, ok := h.currentAdmin(c)
	if !ok {
		return
	}

	fileName, err := utils.SaveUploadedFile(file, h.cfg.Upload.Dir)
	if err != nil {
		c.String(http.StatusBadRequest, "Error uploading picture: "+err.Error())
		return
	}

	user.ProfilePicture = &fileName
	if err := h.repo.Users.Save(c.Request.Context(), user); err != nil {
		c.String(http.StatusBadRequest, "Error uploading picture: "+err.Error())
		return
	}

	h.logActivity(c.Request.Context(), user.Username, "Profile picture updated", user.Role)

	c.String(http.StatusOK, "Profile picture uploaded: "+fileName)
}
