package client

import "time"

const (
	RoleMember  = "Membre"
	RoleManager = "Gestionnaire"
	RoleAdmin   = "Admin"
)

type Profile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// User is one row of the user listing. Email is "Non trouvé" when the
// identity behind the profile is gone.
type User struct {
	Profile
	Email string `json:"email"`
}

type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Instrument struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Orchestra struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type InstrumentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OrchestraRef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ProfileSummary is the caller's profile with the names of its instruments and orchestras.
type ProfileSummary struct {
	Profile
	Instruments []string `json:"instruments"`
	Orchestras  []string `json:"orchestras"`
}

type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Message is the body of mutation answers.
type Message struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message"`
}
