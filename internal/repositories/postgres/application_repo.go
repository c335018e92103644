package postgres

import (
	"context"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.Application) error
	Exists(ctx context.Context, jobID, userID string) (bool, error)
	Get(ctx context.Context, id string) (*models.Application, error)
	ListByUser(ctx context.Context, userID string) ([]models.Application, error)
	ListByCompany(ctx context.Context, companyID, jobID string) ([]models.Application, error)
	ListWithCompletedInterview(ctx context.Context, userID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id string, from, to models.ApplicationStatus) error
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func newestInterviewsFirst(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }

func (r *applicationRepo) Create(ctx context.Context, a *models.Application) error {
	return translate(r.db.WithContext(ctx).Omit("Job", "User", "Interviews", "Review").Create(a).Error)
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, userID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Count(&n).Error
	return n > 0, translate(err)
}

func (r *applicationRepo) Get(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Preload("Job.Company").
		Preload("Interviews", newestInterviewsFirst).
		Preload("Review").
		Where("id = ?", id).
		Take(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID string) ([]models.Application, error) {
	var out []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job.Company").
		Preload("Interviews", newestInterviewsFirst).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, translate(err)
}

// ListByCompany returns applications to the company's jobs, optionally
// narrowed to one job.
func (r *applicationRepo) ListByCompany(ctx context.Context, companyID, jobID string) ([]models.Application, error) {
	jobs := r.db.WithContext(ctx).Model(&models.Job{}).Select("id").Where("company_id = ?", companyID)

	q := r.db.WithContext(ctx).
		Preload("Job").
		Preload("User.StudentProfile").
		Preload("Interviews", newestInterviewsFirst).
		Where("job_id IN (?)", jobs)
	if jobID != "" {
		q = q.Where("job_id = ?", jobID)
	}

	var out []models.Application
	err := q.Order("created_at DESC").Find(&out).Error
	return out, translate(err)
}

func (r *applicationRepo) ListWithCompletedInterview(ctx context.Context, userID string) ([]models.Application, error) {
	completed := r.db.WithContext(ctx).Model(&models.Interview{}).
		Select("application_id").
		Where("status = ?", models.InterviewCompleted)

	var out []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job.Company").
		Preload("Interviews", newestInterviewsFirst).
		Preload("Review").
		Where("user_id = ? AND id IN (?)", userID, completed).
		Order("created_at DESC").
		Find(&out).Error
	return out, translate(err)
}

// UpdateStatus only applies when the row still holds from.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, from, to models.ApplicationStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return affected(res, utils.ErrConflict)
}
