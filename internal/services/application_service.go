package services

import (
	"context"
	"errors"

	"github.com/Ethansurfas/launchpad/internal/models"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/google/uuid"
)

const msgAlreadyApplied = "Already applied to this job"

type ApplyInput struct {
	JobID          string  `json:"job_id"`
	ResumeURL      *string `json:"resume_url"`
	CoverLetterURL *string `json:"cover_letter_url"`
	TranscriptURL  *string `json:"transcript_url"`
	CoverNote      *string `json:"cover_note"`
}

type ApplicationService interface {
	Apply(ctx context.Context, userID string, in ApplyInput) (*models.Application, error)
	ListMine(ctx context.Context, userID string) ([]models.Application, error)
	ListApplicants(ctx context.Context, employerID, jobID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, employerID, id string, status models.ApplicationStatus) (*models.Application, error)
}

type applicationService struct {
	apps  pgrepo.ApplicationRepository
	jobs  pgrepo.JobRepository
	users pgrepo.UserRepository
}

func NewApplicationService(apps pgrepo.ApplicationRepository, jobs pgrepo.JobRepository, users pgrepo.UserRepository) ApplicationService {
	return &applicationService{apps: apps, jobs: jobs, users: users}
}

func (s *applicationService) Apply(ctx context.Context, userID string, in ApplyInput) (*models.Application, error) {
	const op = "ApplicationService.Apply"

	if userID == "" {
		return nil, utils.Unauthorized(op)
	}
	if in.JobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job_id is required", nil)
	}

	job, err := s.jobs.Get(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	if !job.IsActive {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Job is no longer accepting applications", nil)
	}

	exists, err := s.apps.Exists(ctx, in.JobID, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check application", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, msgAlreadyApplied, nil)
	}

	switch {
	case job.RequireResume && !present(in.ResumeURL):
		return nil, utils.E(utils.CodeInvalidArgument, op, "Resume is required", nil)
	case job.RequireCoverLetter && !present(in.CoverLetterURL):
		return nil, utils.E(utils.CodeInvalidArgument, op, "Cover letter is required", nil)
	case job.RequireTranscript && !present(in.TranscriptURL):
		return nil, utils.E(utils.CodeInvalidArgument, op, "Transcript is required", nil)
	}

	app := &models.Application{
		ID:             uuid.NewString(),
		JobID:          in.JobID,
		UserID:         userID,
		Status:         models.ApplicationPending,
		ResumeURL:      trimmed(in.ResumeURL),
		CoverLetterURL: trimmed(in.CoverLetterURL),
		TranscriptURL:  trimmed(in.TranscriptURL),
		CoverNote:      trimmed(in.CoverNote),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, msgAlreadyApplied, err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}
	return app, nil
}

// ListMine keeps only the latest interview on each application.
func (s *applicationService) ListMine(ctx context.Context, userID string) ([]models.Application, error) {
	const op = "ApplicationService.ListMine"

	apps, err := s.apps.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	for i := range apps {
		if latest := apps[i].LatestInterview(); latest != nil {
			apps[i].Interviews = []models.Interview{*latest}
		}
	}
	return apps, nil
}

func (s *applicationService) ListApplicants(ctx context.Context, employerID, jobID string) ([]models.Application, error) {
	const op = "ApplicationService.ListApplicants"

	_, companyID, err := employerCompany(ctx, s.users, op, employerID)
	if err != nil {
		if utils.IsCode(err, utils.CodeInvalidArgument) {
			return []models.Application{}, nil
		}
		return nil, err
	}
	apps, err := s.apps.ListByCompany(ctx, companyID, jobID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applicants", err)
	}
	return apps, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, employerID, id string, status models.ApplicationStatus) (*models.Application, error) {
	const op = "ApplicationService.UpdateStatus"

	if _, ok := models.ParseApplicationStatus(string(status)); !ok {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Invalid status", nil)
	}
	u, err := loadUser(ctx, s.users, op, employerID)
	if err != nil {
		return nil, err
	}
	app, err := s.apps.Get(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.Unauthorized(op)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}
	if app.Job == nil || !u.WorksFor(app.Job.CompanyID) {
		return nil, utils.Unauthorized(op)
	}

	next, err := models.NextApplicationStatus(app.Status, status)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Invalid status transition", err)
	}
	if err := s.apps.UpdateStatus(ctx, id, app.Status, next); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "Application was updated concurrently", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update application", err)
	}
	app.Status = next
	return app, nil
}
