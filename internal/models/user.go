package models

import "time"

type Role string

const (
	RoleMember  Role = "Membre"
	RoleManager Role = "Gestionnaire"
	RoleAdmin   Role = "Admin"
)

// Roles lists the closed set of profile roles.
var Roles = []Role{RoleMember, RoleManager, RoleAdmin}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// MissingEmail is rendered for a profile whose identity no longer exists.
const MissingEmail = "Non trouvé"

// Identity is the credential record owned by the auth service (Supabase auth.users).
type Identity struct {
	ID               string     `json:"id"` // uuid
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	LastSignInAt     *time.Time `json:"last_sign_in_at,omitempty"`
}

// UserView is a profile joined with its identity email.
type UserView struct {
	Profile
	Email string `json:"email"`
}
