package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tombstone contents written in place of a deleted top-level comment that
// still has replies. The row stays so the replies keep a valid parent.
const (
	TombstoneAdmin = "[This comment was removed by an administrator]"
	TombstoneUser  = "[This comment was deleted by the user]"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ReviewID  string    `gorm:"type:uuid;not null;index" json:"review_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	ParentID  *string   `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User    User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Replies []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
}

func (comment *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	return
}

func (Comment) TableName() string {
	return "comments"
}

// IsReply reports whether the comment sits under a parent.
func (comment *Comment) IsReply() bool {
	return comment.ParentID != nil
}
