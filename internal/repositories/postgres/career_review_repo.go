package postgres

import (
	"context"

	"github.com/Ethansurfas/launchpad/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CareerReviewRepository interface {
	Upsert(ctx context.Context, rv *models.CareerCenterReview) error
	Get(ctx context.Context, reviewerID, companyID string) (*models.CareerCenterReview, error)
	ListByReviewer(ctx context.Context, reviewerID string) ([]models.CareerCenterReview, error)
}

type careerReviewRepo struct {
	db *gorm.DB
}

func NewCareerReviewRepo(db *gorm.DB) CareerReviewRepository {
	return &careerReviewRepo{db: db}
}

func (r *careerReviewRepo) Upsert(ctx context.Context, rv *models.CareerCenterReview) error {
	return translate(r.db.WithContext(ctx).
		Omit("Company").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "reviewer_id"}, {Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"student_treatment", "feedback_timeliness", "hiring_success", "would_recommend",
				"comment", "updated_at",
			}),
		}).
		Create(rv).Error)
}

func (r *careerReviewRepo) Get(ctx context.Context, reviewerID, companyID string) (*models.CareerCenterReview, error) {
	var rv models.CareerCenterReview
	err := r.db.WithContext(ctx).
		Where("reviewer_id = ? AND company_id = ?", reviewerID, companyID).
		Take(&rv).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rv, nil
}

func (r *careerReviewRepo) ListByReviewer(ctx context.Context, reviewerID string) ([]models.CareerCenterReview, error) {
	var out []models.CareerCenterReview
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("reviewer_id = ?", reviewerID).
		Order("updated_at DESC").
		Find(&out).Error
	return out, translate(err)
}
