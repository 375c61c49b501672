package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewImage is one uploaded image URL attached to a review. Position keeps
// submission order; the file bytes live in external storage, only the
// durable URL is persisted.
type ReviewImage struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ReviewID  string    `gorm:"type:uuid;not null;index" json:"review_id"`
	URL       string    `gorm:"not null" json:"url"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (img *ReviewImage) BeforeCreate(tx *gorm.DB) (err error) {
	if img.ID == "" {
		img.ID = uuid.New().String()
	}
	return
}

func (ReviewImage) TableName() string {
	return "review_images"
}
