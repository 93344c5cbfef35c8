// Package transaction implements owner-scoped income and expense records.
package transaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/category"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/shopspring/decimal"
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger, now: time.Now}
}

// WithClock replaces the clock used for defaults and date bounds.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List returns one page of the owner's transactions ordered by id.
func (s *Service) List(
	ctx context.Context,
	userID uint,
	page dto.Page,
) (out []*dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListByOwner(ctx, userID, page)
		return err
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, userID, id uint) (t *dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		t, err = getOwned(ctx, repo, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create records a transaction for userID. A zero date means now.
// A category reference must name one of the owner's categories.
func (s *Service) Create(
	ctx context.Context,
	userID uint,
	in *dto.TransactionCreate,
) (t *dto.TransactionRead, err error) {
	create := *in
	create.UserID = userID
	if create.Date.IsZero() {
		create.Date = s.now().UTC()
	}
	if err := s.checkValues(&create.Amount, &create.Type, &create.Date); err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if err := checkCategoryOwned(ctx, uow, userID, create.CategoryID); err != nil {
			return err
		}
		t, err = repo.Create(ctx, &create)
		return categoryRemoved(err)
	})
	if err != nil {
		s.logger.Info("Create transaction failed", "userID", userID, "error", err)
		return nil, err
	}
	s.logger.Info("Transaction created", "userID", userID, "transactionID", t.ID)
	return t, nil
}

// Update applies a sparse patch to an owned transaction.
func (s *Service) Update(
	ctx context.Context,
	userID, id uint,
	patch *dto.TransactionUpdate,
) (t *dto.TransactionRead, err error) {
	if err := s.checkValues(patch.Amount, patch.Type, patch.Date); err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if _, err := getOwned(ctx, repo, userID, id); err != nil {
			return err
		}
		if err := checkCategoryOwned(ctx, uow, userID, patch.CategoryID); err != nil {
			return err
		}
		if err := repo.Update(ctx, userID, id, patch); err != nil {
			return categoryRemoved(err)
		}
		t, err = getOwned(ctx, repo, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uint) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if _, err := getOwned(ctx, repo, userID, id); err != nil {
			return err
		}
		return repo.Delete(ctx, userID, id)
	})
}

// checkValues re-applies the domain bounds to any value that is set.
func (s *Service) checkValues(
	amount *decimal.Decimal,
	typ *transaction.Type,
	date *time.Time,
) error {
	if amount != nil {
		if err := transaction.ValidateAmount(*amount); err != nil {
			return err
		}
	}
	if typ != nil && !typ.Valid() {
		return transaction.ErrInvalidType
	}
	if date != nil {
		if err := transaction.ValidateDate(*date, s.now()); err != nil {
			return err
		}
	}
	return nil
}

func getOwned(
	ctx context.Context,
	repo repository.TransactionRepository,
	userID, id uint,
) (*dto.TransactionRead, error) {
	found, err := repo.GetByOwner(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !found.Found {
		return nil, transaction.ErrTransactionNotFound
	}
	return found.Value, nil
}

// categoryRemoved reports a foreign key failure as a missing category; the
// category was deleted between the ownership check and the write.
func categoryRemoved(err error) error {
	if errors.Is(err, domain.ErrInvalidReference) {
		return category.ErrCategoryNotFound
	}
	return err
}

func checkCategoryOwned(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID uint,
	categoryID *uint,
) error {
	if categoryID == nil {
		return nil
	}
	categories, err := uow.CategoryRepository()
	if err != nil {
		return err
	}
	found, err := categories.GetByOwner(ctx, userID, *categoryID)
	if err != nil {
		return err
	}
	if !found.Found {
		return category.ErrCategoryNotFound
	}
	return nil
}
