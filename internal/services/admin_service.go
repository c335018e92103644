package services

import (
	"context"
	"errors"
	"time"

	"github.com/Ethansurfas/launchpad/internal/models"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/google/uuid"
)

type EmployerStat struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Logo           *string `json:"logo"`
	ActiveJobs     int64   `json:"active_jobs"`
	ReviewCount    int     `json:"review_count"`
	HasAdminReview bool    `json:"has_admin_review"`

	AverageRating       *float64 `json:"average_rating"`
	Responsiveness      *float64 `json:"responsiveness"`
	Transparency        *float64 `json:"transparency"`
	Professionalism     *float64 `json:"professionalism"`
	InterviewExperience *float64 `json:"interview_experience"`
	GhostingRate        int      `json:"ghosting_rate"`
	HighGhosting        bool     `json:"high_ghosting"`
}

type EmployerSummary struct {
	TotalEmployers        int `json:"total_employers"`
	EmployersWithReviews  int `json:"employers_with_reviews"`
	HighGhostingEmployers int `json:"high_ghosting_employers"`
	PendingAdminReviews   int `json:"pending_admin_reviews"`
}

type EmployerStats struct {
	Summary   EmployerSummary `json:"summary"`
	Employers []EmployerStat  `json:"employers"`
}

type CompanyReviews struct {
	Company      *models.CompanySummary     `json:"company"`
	ReviewCount  int                        `json:"review_count"`
	Aggregate    *Aggregate                 `json:"aggregate_ratings"`
	GhostingRate int                        `json:"ghosting_rate"`
	HighGhosting bool                       `json:"high_ghosting"`
	Reviews      []ReviewView               `json:"reviews"`
	AdminReview  *models.CareerCenterReview `json:"admin_review"`
}

type CareerReviewInput struct {
	CompanyID          string  `json:"company_id"`
	StudentTreatment   int     `json:"student_treatment"`
	FeedbackTimeliness int     `json:"feedback_timeliness"`
	HiringSuccess      int     `json:"hiring_success"`
	WouldRecommend     int     `json:"would_recommend"`
	Comment            *string `json:"comment"`
}

type AdminService interface {
	EmployerStats(ctx context.Context, adminID string) (*EmployerStats, error)
	CompanyReviews(ctx context.Context, adminID, companyID string) (*CompanyReviews, error)
	MyReviews(ctx context.Context, adminID string) ([]models.CareerCenterReview, error)
	UpsertReview(ctx context.Context, adminID string, in CareerReviewInput) (*models.CareerCenterReview, error)
}

type adminService struct {
	companies pgrepo.CompanyRepository
	jobs      pgrepo.JobRepository
	reviews   pgrepo.ReviewRepository
	career    pgrepo.CareerReviewRepository
}

func NewAdminService(companies pgrepo.CompanyRepository, jobs pgrepo.JobRepository, reviews pgrepo.ReviewRepository, career pgrepo.CareerReviewRepository) AdminService {
	return &adminService{companies: companies, jobs: jobs, reviews: reviews, career: career}
}

func (s *adminService) EmployerStats(ctx context.Context, adminID string) (*EmployerStats, error) {
	const op = "AdminService.EmployerStats"

	companies, err := s.companies.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list companies", err)
	}
	activeJobs, err := s.jobs.CountActiveByCompany(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count jobs", err)
	}
	all, err := s.reviews.ListAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list reviews", err)
	}
	mine, err := s.career.ListByReviewer(ctx, adminID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list career center reviews", err)
	}

	byCompany := make(map[string][]models.Review)
	for _, r := range all {
		byCompany[r.CompanyID] = append(byCompany[r.CompanyID], r)
	}
	reviewed := make(map[string]bool, len(mine))
	for _, r := range mine {
		reviewed[r.CompanyID] = true
	}

	out := &EmployerStats{Employers: make([]EmployerStat, 0, len(companies))}
	for _, c := range companies {
		reviews := byCompany[c.ID]
		agg, rate := AggregateReviews(reviews)

		st := EmployerStat{
			ID:             c.ID,
			Name:           c.Name,
			Logo:           c.Logo,
			ActiveJobs:     activeJobs[c.ID],
			ReviewCount:    len(reviews),
			HasAdminReview: reviewed[c.ID],
			GhostingRate:   rate,
			HighGhosting:   HighGhosting(rate),
		}
		if agg != nil {
			st.AverageRating = &agg.Overall
			st.Responsiveness = &agg.Responsiveness
			st.Transparency = &agg.Transparency
			st.Professionalism = &agg.Professionalism
			st.InterviewExperience = &agg.InterviewExperience
		}
		out.Employers = append(out.Employers, st)

		out.Summary.TotalEmployers++
		if st.ReviewCount > 0 {
			out.Summary.EmployersWithReviews++
			if !st.HasAdminReview {
				out.Summary.PendingAdminReviews++
			}
		}
		if st.HighGhosting {
			out.Summary.HighGhostingEmployers++
		}
	}
	return out, nil
}

func (s *adminService) CompanyReviews(ctx context.Context, adminID, companyID string) (*CompanyReviews, error) {
	const op = "AdminService.CompanyReviews"

	c, err := s.companies.Get(ctx, companyID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Company not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get company", err)
	}
	reviews, err := s.reviews.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list reviews", err)
	}
	adminReview, err := s.career.Get(ctx, adminID, companyID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to get career center review", err)
	}

	agg, rate := AggregateReviews(reviews)
	return &CompanyReviews{
		Company:      c.Summary(),
		ReviewCount:  len(reviews),
		Aggregate:    agg,
		GhostingRate: rate,
		HighGhosting: HighGhosting(rate),
		Reviews:      reviewViews(reviews, false),
		AdminReview:  adminReview,
	}, nil
}

func (s *adminService) MyReviews(ctx context.Context, adminID string) ([]models.CareerCenterReview, error) {
	const op = "AdminService.MyReviews"

	out, err := s.career.ListByReviewer(ctx, adminID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list career center reviews", err)
	}
	return out, nil
}

// UpsertReview keeps one career-center review per (admin, company); a second
// submission overwrites the ratings and comment.
func (s *adminService) UpsertReview(ctx context.Context, adminID string, in CareerReviewInput) (*models.CareerCenterReview, error) {
	const op = "AdminService.UpsertReview"

	if !models.RatingsInRange(in.StudentTreatment, in.FeedbackTimeliness, in.HiringSuccess, in.WouldRecommend) {
		return nil, utils.E(utils.CodeInvalidArgument, op, msgRatingRange, nil)
	}
	if _, err := s.companies.Get(ctx, in.CompanyID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Company not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get company", err)
	}

	now := time.Now().UTC()
	rv := &models.CareerCenterReview{
		ID:                 uuid.NewString(),
		ReviewerID:         adminID,
		CompanyID:          in.CompanyID,
		StudentTreatment:   in.StudentTreatment,
		FeedbackTimeliness: in.FeedbackTimeliness,
		HiringSuccess:      in.HiringSuccess,
		WouldRecommend:     in.WouldRecommend,
		Comment:            trimmed(in.Comment),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.career.Upsert(ctx, rv); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save career center review", err)
	}

	saved, err := s.career.Get(ctx, adminID, in.CompanyID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load career center review", err)
	}
	return saved, nil
}
