package models

import "time"

// Profile holds the role-specific fields attached to a user. One row per
// user; the owning user's role decides which fields are meaningful, so a
// profile read is a single keyed fetch with no role-conditional join.
type Profile struct {
	UserID        string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	ContactNumber string    `json:"contact_number"`
	Address       *string   `json:"address,omitempty"`
	Gender        *string   `json:"gender,omitempty"`     // guest accounts
	Department    *string   `json:"department,omitempty"` // admin accounts
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Association
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Profile) TableName() string {
	return "profiles"
}
