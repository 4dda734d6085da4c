package repository

import (
	"context"

	"gorm.io/gorm"

	"learninghub/models"
)

// SubjectRepository is the data access contract for subjects
type SubjectRepository interface {
	Save(ctx context.Context, subject *models.Subject) error
	FindByCode(ctx context.Context, code string) (*models.Subject, error)
	FindAll(ctx context.Context) ([]models.Subject, error)
	FindByCourseID(ctx context.Context, courseID string) ([]models.Subject, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Count(ctx context.Context) (int64, error)
	DeleteByCode(ctx context.Context, code string) error
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository creates the GORM-backed SubjectRepository
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Save(ctx context.Context, subject *models.Subject) error {
	return r.db.WithContext(ctx).Save(subject).Error
}

func (r *subjectRepository) FindByCode(ctx context.Context, code string) (*models.Subject, error) {
	var subject models.Subject
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) FindAll(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := r.db.WithContext(ctx).Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) FindByCourseID(ctx context.Context, courseID string) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subject{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *subjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subject{}).Count(&count).Error
	return count, err
}

func (r *subjectRepository) DeleteByCode(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Where("code = ?", code).Delete(&models.Subject{}).Error
}
