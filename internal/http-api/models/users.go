package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. GUEST is a registered reader account, USER a review author,
// ADMIN the moderation role.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
	RoleGuest = "GUEST"
)

type User struct {
	ID           string     `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	Role         string     `gorm:"default:'USER';not null" json:"role"`
	ProfilePhoto *string    `json:"profile_photo,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}
