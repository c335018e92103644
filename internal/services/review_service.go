package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/Ethansurfas/launchpad/internal/models"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/google/uuid"
)

const (
	msgRatingRange     = "Ratings must be between 1 and 5"
	msgAlreadyReviewed = "Already reviewed this application"
)

type ReviewInput struct {
	ApplicationID       string  `json:"application_id"`
	Responsiveness      int     `json:"responsiveness"`
	Transparency        int     `json:"transparency"`
	Professionalism     int     `json:"professionalism"`
	InterviewExperience int     `json:"interview_experience"`
	Overall             int     `json:"overall"`
	WasGhosted          bool    `json:"was_ghosted"`
	Comment             *string `json:"comment"`
}

// ReviewView is a student review as shown to employers, admins and, with the
// reviewer reduced to an initial, the public.
type ReviewView struct {
	ID                  string    `json:"id"`
	Responsiveness      int       `json:"responsiveness"`
	Transparency        int       `json:"transparency"`
	Professionalism     int       `json:"professionalism"`
	InterviewExperience int       `json:"interview_experience"`
	Overall             int       `json:"overall"`
	WasGhosted          bool      `json:"was_ghosted"`
	Comment             *string   `json:"comment"`
	CreatedAt           time.Time `json:"created_at"`
	JobTitle            string    `json:"job_title"`
	ReviewerInitial     string    `json:"reviewer_initial,omitempty"`
}

func newReviewView(r models.Review, withInitial bool) ReviewView {
	v := ReviewView{
		ID:                  r.ID,
		Responsiveness:      r.Responsiveness,
		Transparency:        r.Transparency,
		Professionalism:     r.Professionalism,
		InterviewExperience: r.InterviewExperience,
		Overall:             r.Overall,
		WasGhosted:          r.WasGhosted,
		Comment:             r.Comment,
		CreatedAt:           r.CreatedAt,
	}
	if r.Application != nil && r.Application.Job != nil {
		v.JobTitle = r.Application.Job.Title
	}
	if withInitial && r.Reviewer != nil {
		if ch, _ := utf8.DecodeRuneInString(r.Reviewer.Name); ch != utf8.RuneError {
			v.ReviewerInitial = string(ch)
		}
	}
	return v
}

func reviewViews(reviews []models.Review, withInitial bool) []ReviewView {
	out := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, newReviewView(r, withInitial))
	}
	return out
}

type StudentReviews struct {
	Pending   []models.Application `json:"pending"`
	Submitted []models.Application `json:"submitted"`
}

type EmployerReviews struct {
	Company      *models.CompanySummary `json:"company"`
	ReviewCount  int                    `json:"review_count"`
	Aggregate    *Aggregate             `json:"aggregate_ratings"`
	GhostingRate int                    `json:"ghosting_rate"`
	HighGhosting bool                   `json:"high_ghosting"`
	Tips         []string               `json:"tips"`
	Reviews      []ReviewView           `json:"reviews"`
}

type ReviewService interface {
	Create(ctx context.Context, userID string, in ReviewInput) (*models.Review, error)
	ListForStudent(ctx context.Context, userID string) (*StudentReviews, error)
	EmployerReviews(ctx context.Context, employerID string) (*EmployerReviews, error)
}

type reviewService struct {
	reviews   pgrepo.ReviewRepository
	apps      pgrepo.ApplicationRepository
	companies pgrepo.CompanyRepository
	users     pgrepo.UserRepository
}

func NewReviewService(reviews pgrepo.ReviewRepository, apps pgrepo.ApplicationRepository, companies pgrepo.CompanyRepository, users pgrepo.UserRepository) ReviewService {
	return &reviewService{reviews: reviews, apps: apps, companies: companies, users: users}
}

func (s *reviewService) Create(ctx context.Context, userID string, in ReviewInput) (*models.Review, error) {
	const op = "ReviewService.Create"

	if !models.RatingsInRange(in.Responsiveness, in.Transparency, in.Professionalism, in.InterviewExperience, in.Overall) {
		return nil, utils.E(utils.CodeInvalidArgument, op, msgRatingRange, nil)
	}
	if userID == "" {
		return nil, utils.Unauthorized(op)
	}

	app, err := s.apps.Get(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}
	if app.UserID != userID {
		return nil, utils.Unauthorized(op)
	}
	if app.Review != nil {
		return nil, utils.E(utils.CodeConflict, op, msgAlreadyReviewed, nil)
	}

	latest := app.LatestInterview()
	if latest == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "No interview found for this application", nil)
	}
	if latest.Status != models.InterviewCompleted {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Can only review after completing an interview", nil)
	}

	rv := &models.Review{
		ID:                  uuid.NewString(),
		ApplicationID:       app.ID,
		ReviewerID:          userID,
		CompanyID:           app.Job.CompanyID,
		Responsiveness:      in.Responsiveness,
		Transparency:        in.Transparency,
		Professionalism:     in.Professionalism,
		InterviewExperience: in.InterviewExperience,
		Overall:             in.Overall,
		WasGhosted:          in.WasGhosted,
		Comment:             trimmed(in.Comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, msgAlreadyReviewed, err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create review", err)
	}
	return rv, nil
}

func (s *reviewService) ListForStudent(ctx context.Context, userID string) (*StudentReviews, error) {
	const op = "ReviewService.ListForStudent"

	apps, err := s.apps.ListWithCompletedInterview(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list reviews", err)
	}

	out := &StudentReviews{Pending: []models.Application{}, Submitted: []models.Application{}}
	for _, a := range apps {
		if latest := a.LatestInterview(); latest != nil {
			a.Interviews = []models.Interview{*latest}
		}
		if a.Review == nil {
			out.Pending = append(out.Pending, a)
		} else {
			out.Submitted = append(out.Submitted, a)
		}
	}
	return out, nil
}

func (s *reviewService) EmployerReviews(ctx context.Context, employerID string) (*EmployerReviews, error) {
	const op = "ReviewService.EmployerReviews"

	_, companyID, err := employerCompany(ctx, s.users, op, employerID)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load company", err)
	}
	reviews, err := s.reviews.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list reviews", err)
	}

	agg, rate := AggregateReviews(reviews)
	return &EmployerReviews{
		Company:      company.Summary(),
		ReviewCount:  len(reviews),
		Aggregate:    agg,
		GhostingRate: rate,
		HighGhosting: HighGhosting(rate),
		Tips:         Tips(agg, rate),
		Reviews:      reviewViews(reviews, false),
	}, nil
}
