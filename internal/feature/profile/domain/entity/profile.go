// Package entity defines the profile aggregate.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Social holds optional links to the user's social accounts.
type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Merge overwrites the links that are set in other.
func (s Social) Merge(other Social) Social {
	if other.YouTube != "" {
		s.YouTube = other.YouTube
	}
	if other.Twitter != "" {
		s.Twitter = other.Twitter
	}
	if other.Facebook != "" {
		s.Facebook = other.Facebook
	}
	if other.LinkedIn != "" {
		s.LinkedIn = other.LinkedIn
	}
	if other.Instagram != "" {
		s.Instagram = other.Instagram
	}
	return s
}

// Experience is one job entry. Entries are kept newest-first.
type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Owner is the public part of the account a profile belongs to.
type Owner struct {
	ID     string
	Name   string
	Avatar string
}

// Profile is stored as a single row; the nested lists are JSON columns.
type Profile struct {
	ID     string `gorm:"primaryKey;size:36"`
	UserID string `gorm:"uniqueIndex;size:36;not null"`

	Company        string `gorm:"size:255"`
	Website        string `gorm:"size:255"`
	Location       string `gorm:"size:255"`
	Bio            string `gorm:"type:text"`
	Status         string `gorm:"size:255;not null"`
	GitHubUsername string `gorm:"column:github_username;size:255"`

	Skills     []string     `gorm:"type:text;serializer:json"`
	Social     Social       `gorm:"type:text;serializer:json"`
	Experience []Experience `gorm:"type:text;serializer:json"`

	Date time.Time `gorm:"autoCreateTime"`

	// Owner is filled on reads and never persisted.
	Owner *Owner `gorm:"-"`
}

// TableName returns the table name for GORM.
func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate assigns an ID when the caller did not.
func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
