package models

import (
	"encoding/json"
	"time"
)

// User account. The password is stored and compared as plaintext and is
// echoed back by the admin user list; both are known security defects kept
// for compatibility with the existing frontends.
type User struct {
	ID               int64      `gorm:"primaryKey;autoIncrement"      json:"id"`
	Username         string     `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password         string     `gorm:"size:255;not null"             json:"password"`
	Role             string     `gorm:"size:20"                       json:"role"`
	CourseID         *string    `gorm:"column:course_id;size:20"      json:"courseId"`
	Email            *string    `gorm:"size:255;uniqueIndex"          json:"email"`
	FullName         *string    `gorm:"column:full_name;size:100"     json:"fullName"`
	Phone            *string    `gorm:"size:30"                       json:"phone"`
	ProfilePicture   *string    `gorm:"column:profile_picture"        json:"profilePicture"`
	ResetToken       *string    `gorm:"column:reset_token"            json:"resetToken"`
	ResetTokenExpiry *time.Time `gorm:"column:reset_token_expiry"     json:"resetTokenExpiry"`
	CreatedAt        time.Time  `gorm:"column:created_at"             json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"             json:"updatedAt"`
}

// TableName maps User to the users table
func (User) TableName() string { return "users" }

// Course catalog entry. The ID is the caller-supplied course code, not a
// generated key.
type Course struct {
	ID          string `gorm:"primaryKey;size:20"         json:"id"`
	Title       string `gorm:"size:200"                   json:"title"`
	Description string `gorm:"type:text"                  json:"description"`
	ThemeColor  string `gorm:"column:theme_color;size:20" json:"themeColor"`
	Image       string `gorm:"size:255"                   json:"image"`
	Status      string `gorm:"size:20"                    json:"status"`
}

// TableName maps Course to the courses table
func (Course) TableName() string { return "courses" }

// Subject catalog entry, keyed by the caller-supplied subject code. CourseID
// references a Course by code without enforced referential integrity.
type Subject struct {
	Code      string `gorm:"primaryKey;size:20"       json:"code"`
	Title     string `gorm:"size:200"                 json:"title"`
	CourseID  string `gorm:"column:course_id;size:20" json:"courseId"`
	YearLevel int    `gorm:"column:year_level"        json:"yearLevel"`
	Semester  int    `json:"semester"`
	Status    string `gorm:"size:20"                  json:"status"`
}

// TableName maps Subject to the subjects table
func (Subject) TableName() string { return "subjects" }

// Notification is a per-user message with a read/unread state. Type is one of
// "course", "subject", "material" or "system" (not validated).
type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"              json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;index"         json:"userId"`
	Title     string    `gorm:"size:200;not null"                     json:"title"`
	Message   string    `gorm:"type:text;not null"                    json:"message"`
	Type      string    `gorm:"size:20;not null"                      json:"type"`
	RelatedID *string   `gorm:"column:related_id;size:50"             json:"relatedId"`
	IsRead    bool      `gorm:"column:is_read;not null;default:false" json:"isRead"`
	CreatedAt time.Time `gorm:"column:created_at"                     json:"-"`
}

// TableName maps Notification to the notifications table
func (Notification) TableName() string { return "notifications" }

// MarshalJSON renders createdAt as "2006-01-02 15:04", the format the
// dashboard frontends display verbatim.
func (n Notification) MarshalJSON() ([]byte, error) {
	type alias Notification
	return json.Marshal(struct {
		alias
		CreatedAt string `json:"createdAt"`
	}{
		alias:     alias(n),
		CreatedAt: n.CreatedAt.Format("2006-01-02 15:04"),
	})
}

// ActivityLog is an append-only audit record of administrative actions.
type ActivityLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Target    string    `gorm:"size:100"                 json:"target"`
	Action    string    `gorm:"size:255"                 json:"action"`
	Role      string    `gorm:"size:20"                  json:"role"`
	Timestamp time.Time `gorm:"autoCreateTime"           json:"timestamp"`
}

// TableName maps ActivityLog to the activity_logs table
func (ActivityLog) TableName() string { return "activity_logs" }

// ProfileUpdateRequest carries optional profile fields; only non-nil values
// overwrite the stored ones.
type ProfileUpdateRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
}

// PasswordChangeRequest for the change-password endpoint
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserUpdateRequest carries optional fields for the admin user update
type UserUpdateRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	CourseID *string `json:"courseId"`
	Role     *string `json:"role"`
}

// PasswordResetRequest for the admin password reset endpoint
type PasswordResetRequest struct {
	Password string `json:"password"`
}

// ForgotPasswordRequest starts the email reset flow. The account may be
// identified by username (under either field name the frontends use) or by
// email.
type ForgotPasswordRequest struct {
	Username   string `json:"username"`
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
}

// ResetPasswordRequest completes the email reset flow
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}
