package dto

import (
	"time"

	"devconnector/internal/feature/auth/domain/entity"
)

// UserRes is the public view of an account. It has no password field.
type UserRes struct {
	ID     string    `json:"_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// NewUserRes maps an entity to its public view.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Date:   u.Date,
	}
}
