package services

import (
	"context"
	"errors"

	"github.com/ecolemusique/backoffice/internal/models"
	pgrepo "github.com/ecolemusique/backoffice/internal/repositories/postgres"
	"github.com/ecolemusique/backoffice/internal/utils"
)

type ProfileService interface {
	// GetMe returns the caller's profile with its instrument and orchestra names.
	GetMe(ctx context.Context, userID string) (*models.ProfileSummary, error)
	// RoleOf returns "" without error when the caller has no profile yet.
	RoleOf(ctx context.Context, userID string) (models.Role, error)
}

type profileService struct {
	profiles pgrepo.ProfileRepository
	users    pgrepo.UserRepository
}

func NewProfileService(profiles pgrepo.ProfileRepository, users pgrepo.UserRepository) ProfileService {
	return &profileService{profiles: profiles, users: users}
}

func (s *profileService) GetMe(ctx context.Context, userID string) (*models.ProfileSummary, error) {
	const op = "ProfileService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	p, err := s.profiles.Summary(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	return p, nil
}

func (s *profileService) RoleOf(ctx context.Context, userID string) (models.Role, error) {
	const op = "ProfileService.RoleOf"

	if userID == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	role, err := s.users.RoleOf(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", nil
		}
		return "", utils.E(utils.CodeInternal, op, "failed to resolve role", err)
	}
	return role, nil
}
