package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Ethansurfas/launchpad/internal/models"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/utils"
)

// Identity is what the auth provider asserts about the caller.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  models.UserRole
}

type UserService interface {
	Ensure(ctx context.Context, id Identity) (*models.User, error)
}

type userService struct {
	users pgrepo.UserRepository
}

func NewUserService(users pgrepo.UserRepository) UserService {
	return &userService{users: users}
}

// Ensure creates the user row on first sight and refreshes email and role
// afterwards. Names edited through the profile are kept.
func (s *userService) Ensure(ctx context.Context, id Identity) (*models.User, error) {
	const op = "UserService.Ensure"

	if id.ID == "" {
		return nil, utils.Unauthorized(op)
	}
	if _, ok := models.ParseRole(string(id.Role)); !ok {
		id.Role = models.RoleStudent
	}
	name := strings.TrimSpace(id.Name)
	if name == "" {
		name, _, _ = strings.Cut(id.Email, "@")
	}

	err := s.users.Upsert(ctx, &models.User{ID: id.ID, Email: id.Email, Name: name, Role: id.Role})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sync user", err)
	}
	u, err := s.users.Get(ctx, id.ID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.Unauthorized(op)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}
