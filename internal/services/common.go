package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Ethansurfas/launchpad/internal/models"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/utils"
)

const msgNoCompany = "No company associated"

// providerError turns a vendor failure into an upstream error whose message
// carries the vendor text.
func providerError(op, prefix string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return utils.E(utils.CodeTimeout, op, prefix+": provider timed out", err)
	}
	return utils.Upstream(op, prefix, err)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func loadUser(ctx context.Context, users pgrepo.UserRepository, op, userID string) (*models.User, error) {
	if userID == "" {
		return nil, utils.Unauthorized(op)
	}
	u, err := users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.Unauthorized(op)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}

// employerCompany returns the employer and its company id, or a validation
// error when the employer is not linked to a company.
func employerCompany(ctx context.Context, users pgrepo.UserRepository, op, employerID string) (*models.User, string, error) {
	u, err := loadUser(ctx, users, op, employerID)
	if err != nil {
		return nil, "", err
	}
	if u.CompanyID == nil || *u.CompanyID == "" {
		return u, "", utils.E(utils.CodeInvalidArgument, op, msgNoCompany, nil)
	}
	return u, *u.CompanyID, nil
}

func isParticipant(u *models.User, app *models.Application) bool {
	if u == nil || app == nil {
		return false
	}
	if u.ID == app.UserID {
		return true
	}
	return app.Job != nil && u.WorksFor(app.Job.CompanyID)
}

// participantInterview loads an interview the caller may see: the candidate
// or an employee of the hiring company.
func participantInterview(ctx context.Context, interviews pgrepo.InterviewRepository, users pgrepo.UserRepository, op, userID, id string) (*models.Interview, *models.User, error) {
	u, err := loadUser(ctx, users, op, userID)
	if err != nil {
		return nil, nil, err
	}
	iv, err := interviews.Get(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, nil, utils.E(utils.CodeNotFound, op, "Interview not found", err)
		}
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to load interview", err)
	}
	if !isParticipant(u, iv.Application) {
		return nil, nil, utils.Unauthorized(op)
	}
	return iv, u, nil
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// trimmed returns nil for nil or blank input.
func trimmed(s *string) *string {
	if !present(s) {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
