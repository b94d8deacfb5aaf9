package models

import "github.com/lib/pq"

// ProfileSummary is a profile with the names of its instruments and orchestras,
// aggregated by the database.
type ProfileSummary struct {
	Profile
	Instruments pq.StringArray `gorm:"column:instruments;type:text[]" json:"instruments"`
	Orchestras  pq.StringArray `gorm:"column:orchestras;type:text[]" json:"orchestras"`
}

// SessionUser is the caller as seen through its access token.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is what the dashboard loads on page load.
type Session struct {
	User    SessionUser     `json:"user"`
	Profile *ProfileSummary `json:"profile"`
}
