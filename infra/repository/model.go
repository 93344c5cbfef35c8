package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a user record in the database.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"size:255;not null;uniqueIndex"`
	Username       string `gorm:"size:255;not null;uniqueIndex"`
	HashedPassword string `gorm:"size:255;not null"`
	IsActive       bool   `gorm:"not null"`
	CreatedAt      time.Time
}

// Category is owned by exactly one user; name is unique per owner.
type Category struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"not null;uniqueIndex:uq_categories_user_name"`
	Name      string  `gorm:"size:50;not null;uniqueIndex:uq_categories_user_name"`
	Color     *string `gorm:"size:7"`
	Icon      *string `gorm:"size:10"`
	CreatedAt time.Time
}

// Transaction represents a persisted income or expense entry.
type Transaction struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"not null;index"`
	CategoryID  *uint           `gorm:"index"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Description *string         `gorm:"size:500"`
	Type        string          `gorm:"column:transaction_type;size:10;not null"`
	Date        time.Time       `gorm:"not null"`
	CreatedAt   time.Time
}
