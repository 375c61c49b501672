package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VoteUp   = "UPVOTE"
	VoteDown = "DOWNVOTE"
)

// Vote is one reader's choice on a review. The composite unique index is the
// arbiter of the one-vote-per-(review,user) invariant under concurrent
// casts; the repository maps its violation to a duplicate-vote error.
type Vote struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ReviewID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_votes_review_user" json:"review_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_votes_review_user" json:"user_id"`
	Type      string    `gorm:"not null" json:"type"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Review Review `json:"review,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (vote *Vote) BeforeCreate(tx *gorm.DB) (err error) {
	if vote.ID == "" {
		vote.ID = uuid.New().String()
	}
	return
}

func (Vote) TableName() string {
	return "votes"
}
