package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (category *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	return
}

func (Category) TableName() string {
	return "categories"
}
