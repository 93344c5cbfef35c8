package dto

import "time"

// CategoryCreate carries a validated category bound to its owner.
type CategoryCreate struct {
	UserID uint
	Name   string
	Color  *string
	Icon   *string
}

// CategoryUpdate is a sparse patch; nil fields are left untouched.
type CategoryUpdate struct {
	Name  *string
	Color *string
	Icon  *string
}

func (u CategoryUpdate) IsEmpty() bool {
	return u.Name == nil && u.Color == nil && u.Icon == nil
}

type CategoryRead struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	Icon      *string   `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}
