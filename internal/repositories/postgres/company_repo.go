package postgres

import (
	"context"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Get(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	CreateForEmployer(ctx context.Context, c *models.Company, employerID string) error
	Update(ctx context.Context, c *models.Company) error
}

type companyRepo struct {
	db *gorm.DB
}

func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Get(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *companyRepo) List(ctx context.Context) ([]models.Company, error) {
	var out []models.Company
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, translate(err)
}

// CreateForEmployer inserts the company and links the employer in one
// transaction. An employer that is already linked gets utils.ErrDuplicate.
func (r *companyRepo) CreateForEmployer(ctx context.Context, c *models.Company, employerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return translate(err)
		}
		res := tx.Model(&models.User{}).
			Where("id = ? AND company_id IS NULL", employerID).
			Update("company_id", c.ID)
		return affected(res, utils.ErrDuplicate)
	})
}

func (r *companyRepo) Update(ctx context.Context, c *models.Company) error {
	res := r.db.WithContext(ctx).Model(&models.Company{}).
		Where("id = ?", c.ID).
		Select("name", "logo", "website", "description", "updated_at").
		Updates(c)
	return affected(res, utils.ErrNotFound)
}
