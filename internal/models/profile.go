package models

import "time"

// Profile is the application record of a user; ID equals the identity id.
type Profile struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"column:first_name;type:text" json:"first_name"`
	LastName  string    `gorm:"column:last_name;type:text" json:"last_name"`
	Role      Role      `gorm:"column:role;type:text" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Profile) TableName() string { return "profiles" }
