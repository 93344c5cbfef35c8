package user

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
)

// UpdateProfileInput is a sparse patch of the caller's identity fields.
type UpdateProfileInput struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Username *string `json:"username" validate:"omitempty,min=1,max=50"`
}

func (in UpdateProfileInput) IsEmpty() bool {
	return in.Email == nil && in.Username == nil
}

func (in UpdateProfileInput) toPatch() *dto.UserUpdate {
	return &dto.UserUpdate{Email: in.Email, Username: in.Username}
}

// UserResponse represents an account without its credential.
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *dto.UserRead) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
