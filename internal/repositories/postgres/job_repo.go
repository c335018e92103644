package postgres

import (
	"context"
	"strings"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"gorm.io/gorm"
)

type JobFilter struct {
	Type   models.JobType
	Search string
}

type JobRepository interface {
	ListActive(ctx context.Context, f JobFilter) ([]models.Job, error)
	ListByCompany(ctx context.Context, companyID string, activeOnly bool) ([]models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, j *models.Job) error
	Update(ctx context.Context, j *models.Job) error
	Delete(ctx context.Context, id string) error
	CountActiveByCompany(ctx context.Context) (map[string]int64, error)
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *jobRepo) ListActive(ctx context.Context, f JobFilter) ([]models.Job, error) {
	q := r.db.WithContext(ctx).
		Preload("Company").
		Where("is_active = ?", true)

	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		companies := r.db.WithContext(ctx).Model(&models.Company{}).
			Select("id").
			Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
		q = q.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR company_id IN (?))`,
			pattern, pattern, companies,
		)
	}

	var out []models.Job
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, r.fillCounts(ctx, out)
}

func (r *jobRepo) ListByCompany(ctx context.Context, companyID string, activeOnly bool) ([]models.Job, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []models.Job
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, r.fillCounts(ctx, out)
}

func (r *jobRepo) Get(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	if err := r.db.WithContext(ctx).Preload("Company").Where("id = ?", id).Take(&j).Error; err != nil {
		return nil, translate(err)
	}
	jobs := []models.Job{j}
	if err := r.fillCounts(ctx, jobs); err != nil {
		return nil, err
	}
	return &jobs[0], nil
}

func (r *jobRepo) Create(ctx context.Context, j *models.Job) error {
	return translate(r.db.WithContext(ctx).Omit("Company").Create(j).Error)
}

func (r *jobRepo) Update(ctx context.Context, j *models.Job) error {
	res := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", j.ID).
		Select("title", "description", "location", "type", "salary", "deadline", "is_active",
			"require_resume", "require_cover_letter", "require_transcript", "updated_at").
		Updates(j)
	return affected(res, utils.ErrNotFound)
}

// Delete removes the job and everything hanging off its applications.
func (r *jobRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apps := tx.Model(&models.Application{}).Select("id").Where("job_id = ?", id)
		interviews := tx.Model(&models.Interview{}).Select("id").Where("application_id IN (?)", apps)

		if err := tx.Where("interview_id IN (?)", interviews).Delete(&models.InterviewFeedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("interview_id IN (?)", interviews).Delete(&models.InterviewTimeSlot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("application_id IN (?)", apps).Delete(&models.Interview{}).Error; err != nil {
			return err
		}
		if err := tx.Where("application_id IN (?)", apps).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return affected(tx.Where("id = ?", id).Delete(&models.Job{}), utils.ErrNotFound)
	})
}

func (r *jobRepo) CountActiveByCompany(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		CompanyID string
		N         int64
	}
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Select("company_id, COUNT(*) AS n").
		Where("is_active = ?", true).
		Group("company_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.CompanyID] = row.N
	}
	return out, nil
}

func (r *jobRepo) fillCounts(ctx context.Context, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]string, len(jobs))
	for i := range jobs {
		ids[i] = jobs[i].ID
	}

	var rows []struct {
		JobID string
		N     int64
	}
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Select("job_id, COUNT(*) AS n").
		Where("job_id IN ?", ids).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return translate(err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.JobID] = row.N
	}
	for i := range jobs {
		jobs[i].ApplicationCount = counts[jobs[i].ID]
	}
	return nil
}
