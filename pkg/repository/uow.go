package repository

import (
	"context"
	"errors"
)

// ErrNoTransaction is returned when a repository is requested outside Do.
var ErrNoTransaction = errors.New("repository requested outside of a unit of work")

// UnitOfWork defines the contract for transactional work and repository access.
//
// Repositories obtained inside Do share the transaction, so every write made
// by fn commits or rolls back together.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary.
	// If fn returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() (UserRepository, error)
	CategoryRepository() (CategoryRepository, error)
	TransactionRepository() (TransactionRepository, error)
}
