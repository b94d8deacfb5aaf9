package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	auth "github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"
	"gorm.io/gorm"

	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/utils"
)

// Supabase drives the Supabase auth admin API with the service-role key.
//
// The admin list endpoint is paginated by the server, so when a database handle
// is available ListUsers reads auth.users directly to get every identity.
type Supabase struct {
	client auth.Client
	db     *gorm.DB
}

func NewSupabase(projectURL, serviceRoleKey string, db *gorm.DB) (*Supabase, error) {
	if projectURL == "" || serviceRoleKey == "" {
		return nil, errors.New("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY must be set")
	}
	c := auth.New("", serviceRoleKey).
		WithCustomAuthURL(AuthURL(projectURL)).
		WithToken(serviceRoleKey)
	return &Supabase{client: c, db: db}, nil
}

// AuthURL returns the auth service base URL of a Supabase project.
func AuthURL(projectURL string) string {
	return strings.TrimRight(projectURL, "/") + "/auth/v1"
}

func (s *Supabase) CreateUser(_ context.Context, email, password string) (*models.Identity, error) {
	resp, err := s.client.AdminCreateUser(types.AdminCreateUserRequest{
		Email:        email,
		Password:     &password,
		EmailConfirm: true,
	})
	if err != nil {
		return nil, classify(err)
	}
	return &models.Identity{
		ID:        resp.User.ID.String(),
		Email:     resp.User.Email,
		CreatedAt: resp.User.CreatedAt,
	}, nil
}

func (s *Supabase) UpdatePassword(_ context.Context, id, password string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}
	_, err = s.client.AdminUpdateUser(types.AdminUpdateUserRequest{
		UserID:   uid,
		Password: password,
	})
	return classify(err)
}

func (s *Supabase) DeleteUser(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}
	return classify(s.client.AdminDeleteUser(types.AdminDeleteUserRequest{UserID: uid}))
}

func (s *Supabase) ListUsers(ctx context.Context) ([]models.Identity, error) {
	if s.db != nil {
		var out []models.Identity
		err := s.db.WithContext(ctx).
			Table("auth.users").
			Select("id::text AS id, COALESCE(email, '') AS email, email_confirmed_at, created_at, last_sign_in_at").
			Scan(&out).Error
		return out, err
	}

	resp, err := s.client.AdminListUsers()
	if err != nil {
		return nil, classify(err)
	}
	out := make([]models.Identity, 0, len(resp.Users))
	for _, u := range resp.Users {
		out = append(out, models.Identity{
			ID:        u.ID.String(),
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		})
	}
	return out, nil
}

// classify maps auth service status codes onto the shared sentinels.
// The client library reports them only inside the error text.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "status code 404"):
		return fmt.Errorf("%w: %w", utils.ErrNotFound, err)
	case strings.Contains(msg, "already been registered"), strings.Contains(msg, "email_exists"):
		return fmt.Errorf("%w: %w", utils.ErrConflict, err)
	case strings.Contains(msg, "status code 400"), strings.Contains(msg, "status code 422"):
		return fmt.Errorf("%w: %w", utils.ErrInvalidInput, err)
	}
	return err
}
