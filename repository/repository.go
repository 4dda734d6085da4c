package repository

import "gorm.io/gorm"

// Repository aggregates the per-entity data access interfaces
type Repository struct {
	Users         UserRepository
	Courses       CourseRepository
	Subjects      SubjectRepository
	Notifications NotificationRepository
	Logs          ActivityLogRepository
}

// New builds the Repository aggregate over a single GORM connection
func New(conn *gorm.DB) *Repository {
	return &Repository{
		Users:         NewUserRepository(conn),
		Courses:       NewCourseRepository(conn),
		Subjects:      NewSubjectRepository(conn),
		Notifications: NewNotificationRepository(conn),
		Logs:          NewActivityLogRepository(conn),
	}
}
