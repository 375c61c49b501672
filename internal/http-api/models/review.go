package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review statuses. DRAFT is the initial state for author-created reviews;
// only PUBLISHED reviews are visible to readers, votable and commentable.
const (
	StatusDraft       = "DRAFT"
	StatusPublished   = "PUBLISHED"
	StatusUnpublished = "UNPUBLISHED"
)

type Review struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title          string    `gorm:"not null" json:"title"`
	Description    string    `gorm:"not null;type:text" json:"description"`
	Rating         int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	PurchaseSource *string   `json:"purchase_source,omitempty"`
	IsPremium      bool      `gorm:"default:false;not null" json:"is_premium"`
	PremiumPrice   *float64  `json:"premium_price,omitempty"`
	Status         string    `gorm:"default:'DRAFT';not null;index" json:"status"`
	ModerationNote *string   `gorm:"type:text" json:"moderation_note,omitempty"`
	CategoryID     string    `gorm:"type:uuid;not null;index" json:"category_id"`
	UserID         string    `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Category Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	User     User          `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Images   []ReviewImage `json:"images,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (review *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	return
}

func (Review) TableName() string {
	return "reviews"
}

// ImageURLs flattens the image rows into their URL list, submission order.
func (review *Review) ImageURLs() []string {
	urls := make([]string, 0, len(review.Images))
	for _, img := range review.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
