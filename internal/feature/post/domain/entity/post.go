// Package entity defines the post aggregate.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like records that User liked the post. A user appears at most once.
type Like struct {
	ID   string `json:"id"`
	User string `json:"user"`
}

// Comment keeps a snapshot of the author's name and avatar at the time it was written.
type Comment struct {
	ID     string    `json:"id"`
	User   string    `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// Author is the snapshot copied into posts and comments.
type Author struct {
	ID     string
	Name   string
	Avatar string
}

// Post is stored as a single row. Likes and Comments are newest-first JSON columns.
// Name and Avatar are copied from the author at creation and never re-synced.
type Post struct {
	ID     string `gorm:"primaryKey;size:36"`
	UserID string `gorm:"index;size:36;not null"`
	Text   string `gorm:"type:text;not null"`
	Name   string `gorm:"size:255"`
	Avatar string `gorm:"size:512"`

	Likes    []Like    `gorm:"type:text;serializer:json"`
	Comments []Comment `gorm:"type:text;serializer:json"`

	Date time.Time `gorm:"index"`
}

// TableName returns the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// BeforeCreate assigns an ID and a date when the caller did not.
func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	return nil
}

