package postgres

import (
	"context"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.StudentProfile, error)
	Upsert(ctx context.Context, p *models.StudentProfile) error
	// Save updates the user's name and upserts the student profile in one
	// transaction. A nil name or profile is left untouched.
	Save(ctx context.Context, userID string, name *string, p *models.StudentProfile) error

	AddExperience(ctx context.Context, e *models.WorkExperience) error
	UpdateExperience(ctx context.Context, e *models.WorkExperience) error
	DeleteExperience(ctx context.Context, profileID, id string) error

	AddProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, profileID, id string) error
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	var p models.StudentProfile
	err := r.db.WithContext(ctx).
		Preload("Experiences", func(db *gorm.DB) *gorm.DB { return db.Order("start_date DESC") }).
		Preload("Projects").
		Where("user_id = ?", userID).
		Take(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

var profileColumns = []string{
	"phone", "location", "work_auth", "bio",
	"university", "major", "minor", "grad_year", "gpa",
	"coursework", "honors", "skills",
	"linked_in", "github", "portfolio",
	"resume_url", "cover_letter_url", "transcript_url",
	"updated_at",
}

// Upsert writes the scalar profile fields; experiences and projects are
// managed through their own methods.
func (r *profileRepo) Upsert(ctx context.Context, p *models.StudentProfile) error {
	return upsertProfile(r.db.WithContext(ctx), p)
}

func upsertProfile(db *gorm.DB, p *models.StudentProfile) error {
	return translate(db.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(profileColumns),
		}).
		Create(p).Error)
}

func (r *profileRepo) Save(ctx context.Context, userID string, name *string, p *models.StudentProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if name != nil {
			res := tx.Model(&models.User{}).Where("id = ?", userID).Update("name", *name)
			if err := affected(res, utils.ErrNotFound); err != nil {
				return err
			}
		}
		if p != nil {
			return upsertProfile(tx, p)
		}
		return nil
	})
}

func (r *profileRepo) AddExperience(ctx context.Context, e *models.WorkExperience) error {
	return translate(r.db.WithContext(ctx).Create(e).Error)
}

func (r *profileRepo) UpdateExperience(ctx context.Context, e *models.WorkExperience) error {
	res := r.db.WithContext(ctx).Model(&models.WorkExperience{}).
		Where("id = ? AND profile_id = ?", e.ID, e.ProfileID).
		Select("company", "title", "location", "start_date", "end_date", "current", "description").
		Updates(e)
	return affected(res, utils.ErrNotFound)
}

func (r *profileRepo) DeleteExperience(ctx context.Context, profileID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", id, profileID).
		Delete(&models.WorkExperience{})
	return affected(res, utils.ErrNotFound)
}

func (r *profileRepo) AddProject(ctx context.Context, p *models.Project) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *profileRepo) DeleteProject(ctx context.Context, profileID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", id, profileID).
		Delete(&models.Project{})
	return affected(res, utils.ErrNotFound)
}
