package repository

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do share the same *gorm.DB transaction.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction; any error returned by fn rolls it back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) UserRepository() (repository.UserRepository, error) {
	if u.tx == nil {
		return nil, repository.ErrNoTransaction
	}
	return NewUserRepository(u.tx), nil
}

func (u *UoW) CategoryRepository() (repository.CategoryRepository, error) {
	if u.tx == nil {
		return nil, repository.ErrNoTransaction
	}
	return NewCategoryRepository(u.tx), nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	if u.tx == nil {
		return nil, repository.ErrNoTransaction
	}
	return NewTransactionRepository(u.tx), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
