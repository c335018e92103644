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

type CompanyInput struct {
	Name        *string `json:"name"`
	Logo        *string `json:"logo"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
}

type PublicJob struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Location  string         `json:"location"`
	Type      models.JobType `json:"type"`
	CreatedAt time.Time      `json:"created_at"`
}

type PublicCompany struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Logo         *string      `json:"logo"`
	Website      *string      `json:"website"`
	Description  *string      `json:"description"`
	Jobs         []PublicJob  `json:"jobs"`
	ReviewCount  int          `json:"review_count"`
	Aggregate    *Aggregate   `json:"aggregate_ratings"`
	GhostingRate int          `json:"ghosting_rate"`
	HighGhosting bool         `json:"high_ghosting"`
	Reviews      []ReviewView `json:"reviews"`
}

type CompanyService interface {
	Mine(ctx context.Context, employerID string) (*models.Company, error)
	Create(ctx context.Context, employerID string, in CompanyInput) (*models.Company, error)
	Update(ctx context.Context, employerID string, in CompanyInput) (*models.Company, error)
	Public(ctx context.Context, id string, authenticated bool) (*PublicCompany, error)
}

type companyService struct {
	companies pgrepo.CompanyRepository
	jobs      pgrepo.JobRepository
	reviews   pgrepo.ReviewRepository
	users     pgrepo.UserRepository
}

func NewCompanyService(companies pgrepo.CompanyRepository, jobs pgrepo.JobRepository, reviews pgrepo.ReviewRepository, users pgrepo.UserRepository) CompanyService {
	return &companyService{companies: companies, jobs: jobs, reviews: reviews, users: users}
}

// Mine returns nil without error when the employer has no company yet.
func (s *companyService) Mine(ctx context.Context, employerID string) (*models.Company, error) {
	const op = "CompanyService.Mine"

	u, err := loadUser(ctx, s.users, op, employerID)
	if err != nil {
		return nil, err
	}
	if u.CompanyID == nil {
		return nil, nil
	}
	c, err := s.companies.Get(ctx, *u.CompanyID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, nil
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get company", err)
	}
	return c, nil
}

func (s *companyService) Create(ctx context.Context, employerID string, in CompanyInput) (*models.Company, error) {
	const op = "CompanyService.Create"

	u, err := loadUser(ctx, s.users, op, employerID)
	if err != nil {
		return nil, err
	}
	if u.CompanyID != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Company already exists", nil)
	}

	c := &models.Company{ID: uuid.NewString()}
	applyCompanyInput(c, in)
	if c.Name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Company name is required", nil)
	}

	if err := s.companies.CreateForEmployer(ctx, c, u.ID); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "Company already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create company", err)
	}
	return c, nil
}

func (s *companyService) Update(ctx context.Context, employerID string, in CompanyInput) (*models.Company, error) {
	const op = "CompanyService.Update"

	c, err := s.Mine(ctx, employerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.E(utils.CodeNotFound, op, "No company found", nil)
	}

	applyCompanyInput(c, in)
	if c.Name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Company name is required", nil)
	}
	c.UpdatedAt = time.Now().UTC()
	if err := s.companies.Update(ctx, c); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update company", err)
	}
	return c, nil
}

// Public is the company profile page. Individual reviews are only listed
// for signed-in viewers.
func (s *companyService) Public(ctx context.Context, id string, authenticated bool) (*PublicCompany, error) {
	const op = "CompanyService.Public"

	c, err := s.companies.Get(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Company not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get company", err)
	}
	jobs, err := s.jobs.ListByCompany(ctx, id, true)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	reviews, err := s.reviews.ListByCompany(ctx, id)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list reviews", err)
	}

	agg, rate := AggregateReviews(reviews)
	out := &PublicCompany{
		ID:           c.ID,
		Name:         c.Name,
		Logo:         c.Logo,
		Website:      c.Website,
		Description:  c.Description,
		Jobs:         make([]PublicJob, 0, len(jobs)),
		ReviewCount:  len(reviews),
		Aggregate:    agg,
		GhostingRate: rate,
		HighGhosting: HighGhosting(rate),
	}
	for _, j := range jobs {
		out.Jobs = append(out.Jobs, PublicJob{ID: j.ID, Title: j.Title, Location: j.Location, Type: j.Type, CreatedAt: j.CreatedAt})
	}
	if authenticated {
		out.Reviews = reviewViews(reviews, true)
	}
	return out, nil
}

func applyCompanyInput(c *models.Company, in CompanyInput) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Logo != nil {
		c.Logo = trimmed(in.Logo)
	}
	if in.Website != nil {
		c.Website = trimmed(in.Website)
	}
	if in.Description != nil {
		c.Description = trimmed(in.Description)
	}
}
