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
	"gorm.io/datatypes"
)

// ProfileInput is a partial update; nil fields keep their stored value.
type ProfileInput struct {
	Name *string `json:"name"`

	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	WorkAuth *string `json:"work_auth"`
	Bio      *string `json:"bio"`

	University *string  `json:"university"`
	Major      *string  `json:"major"`
	Minor      *string  `json:"minor"`
	GradYear   *int     `json:"grad_year"`
	GPA        *float64 `json:"gpa"`

	Coursework []string `json:"coursework"`
	Honors     []string `json:"honors"`
	Skills     []string `json:"skills"`

	LinkedIn  *string `json:"linked_in"`
	GitHub    *string `json:"github"`
	Portfolio *string `json:"portfolio"`

	ResumeURL      *string `json:"resume_url"`
	CoverLetterURL *string `json:"cover_letter_url"`
	TranscriptURL  *string `json:"transcript_url"`
}

type ExperienceInput struct {
	ID          string     `json:"id"`
	Company     string     `json:"company"`
	Title       string     `json:"title"`
	Location    *string    `json:"location"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Current     bool       `json:"current"`
	Description *string    `json:"description"`
}

type ProjectInput struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	URL          *string  `json:"url"`
	Technologies []string `json:"technologies"`
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, role models.UserRole, in ProfileInput) (*models.User, error)

	AddExperience(ctx context.Context, userID string, role models.UserRole, in ExperienceInput) (*models.WorkExperience, error)
	UpdateExperience(ctx context.Context, userID string, role models.UserRole, in ExperienceInput) (*models.WorkExperience, error)
	DeleteExperience(ctx context.Context, userID string, role models.UserRole, id string) error

	AddProject(ctx context.Context, userID string, role models.UserRole, in ProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, userID string, role models.UserRole, id string) error
}

type profileService struct {
	profiles pgrepo.ProfileRepository
	users    pgrepo.UserRepository
}

func NewProfileService(profiles pgrepo.ProfileRepository, users pgrepo.UserRepository) ProfileService {
	return &profileService{profiles: profiles, users: users}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.User, error) {
	const op = "ProfileService.Get"

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "User not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		u.StudentProfile = p
	case errors.Is(err, utils.ErrNotFound):
	default:
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	return u, nil
}

func (s *profileService) Update(ctx context.Context, userID string, role models.UserRole, in ProfileInput) (*models.User, error) {
	const op = "ProfileService.Update"

	var name *string
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "Name cannot be empty", nil)
		}
		name = &n
	}

	var p *models.StudentProfile
	if role == models.RoleStudent {
		if in.GPA != nil && (*in.GPA < 0 || *in.GPA > 5) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "Invalid GPA", nil)
		}
		var err error
		p, err = s.profiles.GetByUserID(ctx, userID)
		if err != nil {
			if !errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
			}
			p = &models.StudentProfile{ID: uuid.NewString(), UserID: userID}
		}
		applyProfileInput(p, in)
		p.UpdatedAt = time.Now().UTC()
	}

	if name != nil || p != nil {
		if err := s.profiles.Save(ctx, userID, name, p); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeNotFound, op, "User not found", err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to update profile", err)
		}
	}

	return s.Get(ctx, userID)
}

func (s *profileService) AddExperience(ctx context.Context, userID string, role models.UserRole, in ExperienceInput) (*models.WorkExperience, error) {
	const op = "ProfileService.AddExperience"

	p, err := s.ownProfile(ctx, op, userID, role)
	if err != nil {
		return nil, err
	}
	e, err := newExperience(op, p.ID, in)
	if err != nil {
		return nil, err
	}
	e.ID = uuid.NewString()
	if err := s.profiles.AddExperience(ctx, e); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create experience", err)
	}
	return e, nil
}

func (s *profileService) UpdateExperience(ctx context.Context, userID string, role models.UserRole, in ExperienceInput) (*models.WorkExperience, error) {
	const op = "ProfileService.UpdateExperience"

	p, err := s.ownProfile(ctx, op, userID, role)
	if err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "ID required", nil)
	}
	e, err := newExperience(op, p.ID, in)
	if err != nil {
		return nil, err
	}
	e.ID = in.ID
	if err := s.profiles.UpdateExperience(ctx, e); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Experience not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update experience", err)
	}
	return e, nil
}

func (s *profileService) DeleteExperience(ctx context.Context, userID string, role models.UserRole, id string) error {
	const op = "ProfileService.DeleteExperience"

	p, err := s.ownProfile(ctx, op, userID, role)
	if err != nil {
		return err
	}
	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "ID required", nil)
	}
	if err := s.profiles.DeleteExperience(ctx, p.ID, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Experience not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete experience", err)
	}
	return nil
}

func (s *profileService) AddProject(ctx context.Context, userID string, role models.UserRole, in ProjectInput) (*models.Project, error) {
	const op = "ProfileService.AddProject"

	p, err := s.ownProfile(ctx, op, userID, role)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Project name is required", nil)
	}
	pr := &models.Project{
		ID:           uuid.NewString(),
		ProfileID:    p.ID,
		Name:         name,
		Description:  trimmed(in.Description),
		URL:          trimmed(in.URL),
		Technologies: cleanList(in.Technologies),
	}
	if err := s.profiles.AddProject(ctx, pr); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create project", err)
	}
	return pr, nil
}

func (s *profileService) DeleteProject(ctx context.Context, userID string, role models.UserRole, id string) error {
	const op = "ProfileService.DeleteProject"

	p, err := s.ownProfile(ctx, op, userID, role)
	if err != nil {
		return err
	}
	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "ID required", nil)
	}
	if err := s.profiles.DeleteProject(ctx, p.ID, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Project not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete project", err)
	}
	return nil
}

func (s *profileService) ownProfile(ctx context.Context, op, userID string, role models.UserRole) (*models.StudentProfile, error) {
	if userID == "" || role != models.RoleStudent {
		return nil, utils.Unauthorized(op)
	}
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	return p, nil
}

func newExperience(op, profileID string, in ExperienceInput) (*models.WorkExperience, error) {
	company := strings.TrimSpace(in.Company)
	title := strings.TrimSpace(in.Title)
	if company == "" || title == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Company and title are required", nil)
	}
	if in.StartDate.IsZero() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Start date is required", nil)
	}
	end := in.EndDate
	if in.Current {
		end = nil
	}
	if end != nil && end.Before(in.StartDate) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "End date must be after start date", nil)
	}
	return &models.WorkExperience{
		ProfileID:   profileID,
		Company:     company,
		Title:       title,
		Location:    trimmed(in.Location),
		StartDate:   in.StartDate.UTC(),
		EndDate:     end,
		Current:     in.Current,
		Description: trimmed(in.Description),
	}, nil
}

func applyProfileInput(p *models.StudentProfile, in ProfileInput) {
	set := func(dst **string, src *string) {
		if src != nil {
			*dst = trimmed(src)
		}
	}
	set(&p.Phone, in.Phone)
	set(&p.Location, in.Location)
	set(&p.WorkAuth, in.WorkAuth)
	set(&p.Bio, in.Bio)
	set(&p.University, in.University)
	set(&p.Major, in.Major)
	set(&p.Minor, in.Minor)
	set(&p.LinkedIn, in.LinkedIn)
	set(&p.GitHub, in.GitHub)
	set(&p.Portfolio, in.Portfolio)
	set(&p.ResumeURL, in.ResumeURL)
	set(&p.CoverLetterURL, in.CoverLetterURL)
	set(&p.TranscriptURL, in.TranscriptURL)

	if in.GradYear != nil {
		p.GradYear = in.GradYear
	}
	if in.GPA != nil {
		p.GPA = in.GPA
	}
	if in.Coursework != nil {
		p.Coursework = cleanList(in.Coursework)
	}
	if in.Honors != nil {
		p.Honors = cleanList(in.Honors)
	}
	if in.Skills != nil {
		p.Skills = cleanList(in.Skills)
	}
	if p.Skills == nil {
		p.Skills = datatypes.JSONSlice[string]{}
	}
}

// cleanList drops blank entries.
func cleanList(in []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
