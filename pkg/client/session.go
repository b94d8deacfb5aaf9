package client

import (
	"context"
	"errors"
	"fmt"

	auth "github.com/supabase-community/auth-go"
)

// Session is the signed-in caller. It is created by SignIn or Restore and
// passed to every call; SignOut ends it.
type Session struct {
	AccessToken string
	User        SessionUser
	// Profile is nil when the identity has no profile row yet.
	Profile *ProfileSummary
}

func (s *Session) Active() bool {
	return s != nil && s.AccessToken != ""
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Profile != nil && s.Profile.Role == RoleAdmin
}

// Authenticator issues and revokes access tokens.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context, accessToken string) error
}

type supabaseAuth struct {
	c auth.Client
}

// NewSupabaseAuth returns an Authenticator for the auth service at authURL
// (https://<project>.supabase.co/auth/v1) using the project's anon key.
func NewSupabaseAuth(authURL, anonKey string) Authenticator {
	return &supabaseAuth{c: auth.New("", anonKey).WithCustomAuthURL(authURL)}
}

func (a *supabaseAuth) SignIn(_ context.Context, email, password string) (string, error) {
	resp, err := a.c.SignInWithEmailPassword(email, password)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (a *supabaseAuth) SignOut(_ context.Context, accessToken string) error {
	return a.c.WithToken(accessToken).Logout()
}

// SignIn exchanges credentials for a token and loads the session behind it.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if c.auth == nil {
		return nil, errors.New("client: no authenticator configured")
	}
	token, err := c.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return c.Restore(ctx, token)
}

// Restore checks an existing token against the API and rebuilds the session.
func (c *Client) Restore(ctx context.Context, accessToken string) (*Session, error) {
	s := &Session{AccessToken: accessToken}
	var body struct {
		User    SessionUser     `json:"user"`
		Profile *ProfileSummary `json:"profile"`
	}
	if err := c.get(ctx, s, "/session", nil, &body); err != nil {
		return nil, err
	}
	s.User = body.User
	s.Profile = body.Profile
	return s, nil
}

// SignOut revokes the token when an authenticator is configured and clears s.
// The session is cleared even when revocation fails.
func (c *Client) SignOut(ctx context.Context, s *Session) error {
	if !s.Active() {
		return nil
	}
	var err error
	if c.auth != nil {
		err = c.auth.SignOut(ctx, s.AccessToken)
	}
	*s = Session{}
	return err
}
