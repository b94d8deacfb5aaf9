package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ecolemusique/backoffice/internal/cache"
	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/providers/identity"
	pgrepo "github.com/ecolemusique/backoffice/internal/repositories/postgres"
	"github.com/ecolemusique/backoffice/internal/utils"
)

type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.Role
}

type UpdateUserInput struct {
	ID        string
	FirstName string
	LastName  string
	Role      models.Role
	// Password is applied to the identity only when non-empty.
	Password string
}

// UserService provisions users across the identity provider and the profile table.
type UserService interface {
	Create(ctx context.Context, actorID string, in CreateUserInput) (*models.Identity, error)
	Update(ctx context.Context, actorID string, in UpdateUserInput) error
	Delete(ctx context.Context, actorID, userID string) error
	List(ctx context.Context) ([]models.UserView, error)
}

type userService struct {
	identities identity.Provider
	profiles   pgrepo.ProfileRepository
	audit      AuditService
	cache      ListCache
	log        *logrus.Logger
}

func NewUserService(
	identities identity.Provider,
	profiles pgrepo.ProfileRepository,
	audit AuditService,
	lc ListCache,
	log *logrus.Logger,
) UserService {
	if audit == nil {
		audit = NopAudit{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &userService{identities: identities, profiles: profiles, audit: audit, cache: lc, log: log}
}

func (s *userService) Create(ctx context.Context, actorID string, in CreateUserInput) (*models.Identity, error) {
	const op = "UserService.Create"

	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, utils.Invalid(op, "Email et mot de passe requis")
	}
	if !in.Role.Valid() {
		return nil, utils.Invalid(op, "Rôle invalide")
	}

	ident, err := s.identities.CreateUser(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "Un utilisateur avec cet email existe déjà", err)
		}
		return nil, storeError(op, "failed to create identity", err)
	}

	p := &models.Profile{
		ID:        ident.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		// the identity would otherwise be left without a profile
		if derr := s.identities.DeleteUser(ctx, ident.ID); derr != nil && !errors.Is(derr, utils.ErrNotFound) {
			s.log.WithError(derr).WithField("user_id", ident.ID).Error("orphan identity left after profile insert failure")
		}
		return nil, storeError(op, "failed to create profile", err)
	}

	s.cache.drop(ctx, cache.KeyUsers)
	s.audit.Record(ctx, actorID, "user.create", "user", ident.ID, map[string]any{
		"email": ident.Email,
		"role":  string(in.Role),
	})
	return ident, nil
}

func (s *userService) Update(ctx context.Context, actorID string, in UpdateUserInput) error {
	const op = "UserService.Update"

	if in.ID == "" {
		return utils.Invalid(op, "ID utilisateur manquant")
	}
	if !in.Role.Valid() {
		return utils.Invalid(op, "Rôle invalide")
	}

	err := s.profiles.Update(ctx, &models.Profile{
		ID:        in.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
	})
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Utilisateur introuvable", err)
		}
		return storeError(op, "failed to update profile", err)
	}
	s.cache.drop(ctx, cache.KeyUsers)

	if in.Password != "" {
		if err := s.identities.UpdatePassword(ctx, in.ID, in.Password); err != nil {
			return storeError(op, "failed to update password", err)
		}
	}

	s.audit.Record(ctx, actorID, "user.update", "user", in.ID, map[string]any{
		"role":             string(in.Role),
		"password_changed": in.Password != "",
	})
	return nil
}

// Delete removes the identity first, then the user's associations and profile
// in one transaction. An identity that is already gone counts as deleted, so a
// retry after a failed second step converges.
func (s *userService) Delete(ctx context.Context, actorID, userID string) error {
	const op = "UserService.Delete"

	if userID == "" {
		return utils.Invalid(op, "User ID is required")
	}

	if err := s.identities.DeleteUser(ctx, userID); err != nil && !errors.Is(err, utils.ErrNotFound) {
		return storeError(op, "failed to delete identity", err)
	}
	if err := s.profiles.Delete(ctx, userID); err != nil {
		return storeError(op, "failed to delete profile", err)
	}

	s.cache.drop(ctx, cache.KeyUsers)
	s.audit.Record(ctx, actorID, "user.delete", "user", userID, nil)
	return nil
}

// List joins every profile with its identity email, in the repository's
// first_name order. Profiles whose identity is missing get models.MissingEmail.
func (s *userService) List(ctx context.Context) ([]models.UserView, error) {
	const op = "UserService.List"

	var out []models.UserView
	if s.cache.get(ctx, cache.KeyUsers, &out) {
		return out, nil
	}

	idents, err := s.identities.ListUsers(ctx)
	if err != nil {
		return nil, storeError(op, "failed to list identities", err)
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, storeError(op, "failed to list profiles", err)
	}

	emails := make(map[string]string, len(idents))
	for _, id := range idents {
		emails[id.ID] = id.Email
	}

	out = make([]models.UserView, 0, len(profiles))
	for _, p := range profiles {
		email, ok := emails[p.ID]
		if !ok {
			email = models.MissingEmail
		}
		out = append(out, models.UserView{Profile: p, Email: email})
	}

	s.cache.set(ctx, cache.KeyUsers, out)
	return out, nil
}
