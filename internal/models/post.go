package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"uniqueIndex;size:250;not null" json:"title"`
	Subtitle  string    `gorm:"size:250" json:"subtitle"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	ImageURL  string    `gorm:"size:250" json:"image_url"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	CreatedAt time.Time `json:"created_at"` // set once at creation, never re-stamped
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by queries, not stored.
	CommentCount int `gorm:"-" json:"comment_count"`
}
