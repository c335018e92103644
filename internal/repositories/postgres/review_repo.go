package postgres

import (
	"context"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *models.Review) error
	ListByCompany(ctx context.Context, companyID string) ([]models.Review, error)
	ListAll(ctx context.Context) ([]models.Review, error)
}

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

// Create re-checks that the application has no review inside the write
// transaction; the unique index on application_id covers the remaining race.
func (r *reviewRepo) Create(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Review{}).Where("application_id = ?", rv.ApplicationID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return utils.ErrDuplicate
		}
		return translate(tx.Omit("Application", "Reviewer").Create(rv).Error)
	})
}

func (r *reviewRepo) ListByCompany(ctx context.Context, companyID string) ([]models.Review, error) {
	var out []models.Review
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Preload("Application.Job").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&out).Error
	return out, translate(err)
}

func (r *reviewRepo) ListAll(ctx context.Context) ([]models.Review, error) {
	var out []models.Review
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, translate(err)
}
