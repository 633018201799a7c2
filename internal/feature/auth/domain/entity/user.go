// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account.
type User struct {
	// ID is a system-generated UUID.
	ID string `gorm:"primaryKey;size:36"`

	Name string `gorm:"size:255;not null"`

	// Email is unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash. It is never returned to clients.
	Password string `gorm:"size:255;not null"`

	// Avatar is derived from Email at registration.
	Avatar string `gorm:"size:512"`

	Date time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an ID when the caller did not.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
