package dto

import "time"

// UserCreate represents the data needed to persist a new user.
type UserCreate struct {
	Email          string
	Username       string
	HashedPassword string
}

// UserUpdate is a sparse patch; nil fields are left untouched.
type UserUpdate struct {
	Email    *string
	Username *string
	IsActive *bool
}

// IsEmpty reports whether the patch carries no field.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.Username == nil && u.IsActive == nil
}

// UserRead represents a read-optimized view of a user.
type UserRead struct {
	ID             uint      `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}
