package postgres

import (
	"context"
	"time"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"gorm.io/gorm"
)

type InterviewRepository interface {
	CreateWithSlots(ctx context.Context, iv *models.Interview) error
	Get(ctx context.Context, id string) (*models.Interview, error)
	ListForCompany(ctx context.Context, companyID string) ([]models.Interview, error)
	ListForCandidate(ctx context.Context, userID string) ([]models.Interview, error)

	SelectSlot(ctx context.Context, id, slotID string, at time.Time) error
	Transition(ctx context.Context, id string, from, to models.InterviewStatus) error
	SetRoom(ctx context.Context, id, name, url string, from, to models.InterviewStatus) error
	SetTranscription(ctx context.Context, id, text string) error

	HasFeedback(ctx context.Context, id string) (bool, error)
	CreateFeedback(ctx context.Context, id string, rows []models.InterviewFeedback) error
}

type interviewRepo struct {
	db *gorm.DB
}

func NewInterviewRepo(db *gorm.DB) InterviewRepository {
	return &interviewRepo{db: db}
}

func slotsByStart(db *gorm.DB) *gorm.DB { return db.Order("start_time ASC") }

// CreateWithSlots writes the interview, its slots and the application's
// INTERVIEW status together.
func (r *interviewRepo) CreateWithSlots(ctx context.Context, iv *models.Interview) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Application", "Feedback").Create(iv).Error; err != nil {
			return translate(err)
		}
		res := tx.Model(&models.Application{}).
			Where("id = ?", iv.ApplicationID).
			Update("status", models.ApplicationInterview)
		return affected(res, utils.ErrNotFound)
	})
}

func (r *interviewRepo) Get(ctx context.Context, id string) (*models.Interview, error) {
	var iv models.Interview
	err := r.db.WithContext(ctx).
		Preload("TimeSlots", slotsByStart).
		Preload("Feedback").
		Preload("Application.Job.Company").
		Preload("Application.User").
		Where("id = ?", id).
		Take(&iv).Error
	if err != nil {
		return nil, translate(err)
	}
	return &iv, nil
}

func (r *interviewRepo) ListForCompany(ctx context.Context, companyID string) ([]models.Interview, error) {
	jobs := r.db.WithContext(ctx).Model(&models.Job{}).Select("id").Where("company_id = ?", companyID)
	apps := r.db.WithContext(ctx).Model(&models.Application{}).Select("id").Where("job_id IN (?)", jobs)

	var out []models.Interview
	err := r.db.WithContext(ctx).
		Preload("TimeSlots", slotsByStart).
		Preload("Application.Job").
		Preload("Application.User").
		Where("application_id IN (?)", apps).
		Order("created_at DESC").
		Find(&out).Error
	return out, translate(err)
}

func (r *interviewRepo) ListForCandidate(ctx context.Context, userID string) ([]models.Interview, error) {
	apps := r.db.WithContext(ctx).Model(&models.Application{}).Select("id").Where("user_id = ?", userID)

	var out []models.Interview
	err := r.db.WithContext(ctx).
		Preload("TimeSlots", slotsByStart).
		Preload("Application.Job.Company").
		Where("application_id IN (?)", apps).
		Order("created_at DESC").
		Find(&out).Error
	return out, translate(err)
}

// SelectSlot marks slotID selected and schedules the interview in one
// transaction. The status guard makes a concurrent second selection affect
// zero rows, reported as utils.ErrConflict; a slot outside the interview
// rolls everything back with utils.ErrNotFound.
func (r *interviewRepo) SelectSlot(ctx context.Context, id, slotID string, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Interview{}).
			Where("id = ? AND status = ?", id, models.InterviewPendingResponse).
			Updates(map[string]any{
				"status":       models.InterviewScheduled,
				"scheduled_at": at,
				"updated_at":   time.Now().UTC(),
			})
		if err := affected(res, utils.ErrConflict); err != nil {
			return err
		}

		res = tx.Model(&models.InterviewTimeSlot{}).
			Where("id = ? AND interview_id = ?", slotID, id).
			Update("selected", true)
		return affected(res, utils.ErrNotFound)
	})
}

func (r *interviewRepo) Transition(ctx context.Context, id string, from, to models.InterviewStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	return affected(res, utils.ErrConflict)
}

func (r *interviewRepo) SetRoom(ctx context.Context, id, name, url string, from, to models.InterviewStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"room_name":  name,
			"room_url":   url,
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	return affected(res, utils.ErrConflict)
}

func (r *interviewRepo) SetTranscription(ctx context.Context, id, text string) error {
	res := r.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ?", id).
		Update("transcription", text)
	return affected(res, utils.ErrNotFound)
}

func (r *interviewRepo) HasFeedback(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.InterviewFeedback{}).
		Where("interview_id = ?", id).
		Count(&n).Error
	return n > 0, translate(err)
}

// CreateFeedback inserts all rows or none; an interview that already has
// feedback yields utils.ErrDuplicate.
func (r *interviewRepo) CreateFeedback(ctx context.Context, id string, rows []models.InterviewFeedback) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.InterviewFeedback{}).Where("interview_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return utils.ErrDuplicate
		}
		return translate(tx.Create(&rows).Error)
	})
}
