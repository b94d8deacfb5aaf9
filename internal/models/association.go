package models

// UserInstrument and UserOrchestra are join rows with no identity of their own.
// A user's set is always written as a whole.
type UserInstrument struct {
	UserID       string `gorm:"column:user_id;type:uuid" json:"user_id"`
	InstrumentID string `gorm:"column:instrument_id;type:uuid" json:"instrument_id"`
}

func (UserInstrument) TableName() string { return "user_instruments" }

type UserOrchestra struct {
	UserID      string `gorm:"column:user_id;type:uuid" json:"user_id"`
	OrchestraID string `gorm:"column:orchestra_id;type:uuid" json:"orchestra_id"`
}

func (UserOrchestra) TableName() string { return "user_orchestras" }

// InstrumentRef is the shape returned by get-user-instruments.
type InstrumentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrchestraRef is the shape returned by get-user-orchestras.
type OrchestraRef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
