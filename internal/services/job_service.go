package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Ethansurfas/launchpad/internal/models"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/google/uuid"
)

// JobInput carries create and update fields; nil leaves a field unchanged on update.
type JobInput struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Location    *string         `json:"location"`
	Type        *models.JobType `json:"type"`
	Salary      *string         `json:"salary"`
	Deadline    *time.Time      `json:"deadline"`
	IsActive    *bool           `json:"is_active"`

	RequireResume      *bool `json:"require_resume"`
	RequireCoverLetter *bool `json:"require_cover_letter"`
	RequireTranscript  *bool `json:"require_transcript"`
}

type JobDetail struct {
	models.Job
	HasApplied bool `json:"has_applied"`
}

type JobService interface {
	List(ctx context.Context, f pgrepo.JobFilter) ([]models.Job, error)
	Get(ctx context.Context, id, viewerID string) (*JobDetail, error)
	Create(ctx context.Context, employerID string, in JobInput) (*models.Job, error)
	Update(ctx context.Context, employerID, id string, in JobInput) (*models.Job, error)
	Delete(ctx context.Context, employerID, id string) error
	ListForEmployer(ctx context.Context, employerID string) ([]models.Job, error)
}

type jobService struct {
	jobs  pgrepo.JobRepository
	apps  pgrepo.ApplicationRepository
	users pgrepo.UserRepository
}

func NewJobService(jobs pgrepo.JobRepository, apps pgrepo.ApplicationRepository, users pgrepo.UserRepository) JobService {
	return &jobService{jobs: jobs, apps: apps, users: users}
}

func (s *jobService) List(ctx context.Context, f pgrepo.JobFilter) ([]models.Job, error) {
	const op = "JobService.List"

	if f.Type != "" {
		if _, ok := models.ParseJobType(string(f.Type)); !ok {
			return nil, utils.E(utils.CodeInvalidArgument, op, "unknown job type", nil)
		}
	}
	jobs, err := s.jobs.ListActive(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return jobs, nil
}

func (s *jobService) Get(ctx context.Context, id, viewerID string) (*JobDetail, error) {
	const op = "JobService.Get"

	j, err := s.jobs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}

	out := &JobDetail{Job: *j}
	if viewerID != "" {
		applied, err := s.apps.Exists(ctx, id, viewerID)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to check application", err)
		}
		out.HasApplied = applied
	}
	return out, nil
}

func (s *jobService) Create(ctx context.Context, employerID string, in JobInput) (*models.Job, error) {
	const op = "JobService.Create"

	_, companyID, err := employerCompany(ctx, s.users, op, employerID)
	if err != nil {
		return nil, err
	}

	j := &models.Job{ID: uuid.NewString(), CompanyID: companyID, IsActive: true}
	applyJobInput(j, in)
	if err := validateJob(op, j); err != nil {
		return nil, err
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	return j, nil
}

func (s *jobService) Update(ctx context.Context, employerID, id string, in JobInput) (*models.Job, error) {
	const op = "JobService.Update"

	j, err := s.owned(ctx, op, employerID, id)
	if err != nil {
		return nil, err
	}
	applyJobInput(j, in)
	if err := validateJob(op, j); err != nil {
		return nil, err
	}
	j.UpdatedAt = time.Now().UTC()

	if err := s.jobs.Update(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}
	return j, nil
}

func (s *jobService) Delete(ctx context.Context, employerID, id string) error {
	const op = "JobService.Delete"

	if _, err := s.owned(ctx, op, employerID, id); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}
	return nil
}

func (s *jobService) ListForEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	const op = "JobService.ListForEmployer"

	_, companyID, err := employerCompany(ctx, s.users, op, employerID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByCompany(ctx, companyID, false)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return jobs, nil
}

// owned loads a job of the employer's company. A missing job and a foreign
// job are rejected the same way.
func (s *jobService) owned(ctx context.Context, op, employerID, id string) (*models.Job, error) {
	u, err := loadUser(ctx, s.users, op, employerID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.Unauthorized(op)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	if !u.WorksFor(j.CompanyID) {
		return nil, utils.Unauthorized(op)
	}
	return j, nil
}

func applyJobInput(j *models.Job, in JobInput) {
	if in.Title != nil {
		j.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		j.Description = strings.TrimSpace(*in.Description)
	}
	if in.Location != nil {
		j.Location = strings.TrimSpace(*in.Location)
	}
	if in.Type != nil {
		j.Type = *in.Type
	}
	if in.Salary != nil {
		j.Salary = trimmed(in.Salary)
	}
	if in.Deadline != nil {
		d := in.Deadline.UTC()
		j.Deadline = &d
	}
	if in.IsActive != nil {
		j.IsActive = *in.IsActive
	}
	if in.RequireResume != nil {
		j.RequireResume = *in.RequireResume
	}
	if in.RequireCoverLetter != nil {
		j.RequireCoverLetter = *in.RequireCoverLetter
	}
	if in.RequireTranscript != nil {
		j.RequireTranscript = *in.RequireTranscript
	}
}

func validateJob(op string, j *models.Job) error {
	if j.Title == "" || j.Description == "" || j.Location == "" {
		return utils.E(utils.CodeInvalidArgument, op, "title, description and location are required", nil)
	}
	if _, ok := models.ParseJobType(string(j.Type)); !ok {
		return utils.E(utils.CodeInvalidArgument, op, "unknown job type", nil)
	}
	return nil
}
