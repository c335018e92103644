package postgres

import (
	"context"

	"github.com/Ethansurfas/launchpad/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, u *models.User) error
	FirstEmployee(ctx context.Context, companyID string) (*models.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Get(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// Upsert refreshes identity fields from the auth provider; company_id is
// owned by this service and never overwritten.
func (r *userRepo) Upsert(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "role"}),
		}).
		Create(u).Error)
}

func (r *userRepo) FirstEmployee(ctx context.Context, companyID string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
