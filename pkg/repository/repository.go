package repository

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
)

// Lookup is the result of a single-row query: either a value or an
// explicit miss. A miss is not an error.
type Lookup[T any] struct {
	Value T
	Found bool
}

// Found wraps a row that exists.
func Found[T any](v T) Lookup[T] {
	return Lookup[T]{Value: v, Found: true}
}

// NotFound reports an absent row.
func NotFound[T any]() Lookup[T] {
	return Lookup[T]{}
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	Create(ctx context.Context, create *dto.UserCreate) (*dto.UserRead, error)
	Get(ctx context.Context, id uint) (Lookup[*dto.UserRead], error)
	// GetByIdentity matches identity against email or username.
	GetByIdentity(ctx context.Context, identity string) (Lookup[*dto.UserRead], error)
	// ExistsByEmail ignores the user with id exceptID; pass 0 to check everybody.
	ExistsByEmail(ctx context.Context, email string, exceptID uint) (bool, error)
	ExistsByUsername(ctx context.Context, username string, exceptID uint) (bool, error)
	Update(ctx context.Context, id uint, update *dto.UserUpdate) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page dto.Page) ([]*dto.UserRead, error)
}

// CategoryRepository scopes every operation to the owning user.
type CategoryRepository interface {
	ListByOwner(ctx context.Context, userID uint) ([]*dto.CategoryRead, error)
	GetByOwner(ctx context.Context, userID, id uint) (Lookup[*dto.CategoryRead], error)
	Create(ctx context.Context, create *dto.CategoryCreate) (*dto.CategoryRead, error)
	Update(ctx context.Context, userID, id uint, update *dto.CategoryUpdate) error
	Delete(ctx context.Context, userID, id uint) error
	DeleteByOwner(ctx context.Context, userID uint) error
}

// TransactionRepository scopes every operation to the owning user.
type TransactionRepository interface {
	ListByOwner(ctx context.Context, userID uint, page dto.Page) ([]*dto.TransactionRead, error)
	GetByOwner(ctx context.Context, userID, id uint) (Lookup[*dto.TransactionRead], error)
	Create(ctx context.Context, create *dto.TransactionCreate) (*dto.TransactionRead, error)
	Update(ctx context.Context, userID, id uint, update *dto.TransactionUpdate) error
	Delete(ctx context.Context, userID, id uint) error
	// DetachCategory clears category_id on the owner's transactions that reference categoryID.
	DetachCategory(ctx context.Context, userID, categoryID uint) (int64, error)
	DeleteByOwner(ctx context.Context, userID uint) error
}
