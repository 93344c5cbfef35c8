// Package category implements owner-scoped category management.
package category

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/category"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
)

// Service scopes every operation to the caller; categories owned by
// somebody else are reported as not found.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// List returns the owner's categories, possibly none.
func (s *Service) List(ctx context.Context, userID uint) (out []*dto.CategoryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListByOwner(ctx, userID)
		return err
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, userID, id uint) (c *dto.CategoryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		c, err = getOwned(ctx, repo, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create stores a category for userID, ignoring any owner in the input.
func (s *Service) Create(
	ctx context.Context,
	userID uint,
	in *dto.CategoryCreate,
) (c *dto.CategoryRead, err error) {
	create := *in
	create.UserID = userID
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		c, err = repo.Create(ctx, &create)
		return translateConflict(err)
	})
	if err != nil {
		s.logger.Info("Create category failed", "userID", userID, "error", err)
		return nil, err
	}
	s.logger.Info("Category created", "userID", userID, "categoryID", c.ID)
	return c, nil
}

// Update applies a sparse patch to an owned category.
func (s *Service) Update(
	ctx context.Context,
	userID, id uint,
	patch *dto.CategoryUpdate,
) (c *dto.CategoryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		if _, err := getOwned(ctx, repo, userID, id); err != nil {
			return err
		}
		if err := translateConflict(repo.Update(ctx, userID, id, patch)); err != nil {
			return err
		}
		c, err = getOwned(ctx, repo, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes an owned category; its transactions are kept and detached.
func (s *Service) Delete(ctx context.Context, userID, id uint) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if _, err := getOwned(ctx, repo, userID, id); err != nil {
			return err
		}
		detached, err := txs.DetachCategory(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, userID, id); err != nil {
			return err
		}
		s.logger.Info("Category deleted", "userID", userID, "categoryID", id, "detached", detached)
		return nil
	})
}

func getOwned(
	ctx context.Context,
	repo repository.CategoryRepository,
	userID, id uint,
) (*dto.CategoryRead, error) {
	found, err := repo.GetByOwner(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !found.Found {
		return nil, category.ErrCategoryNotFound
	}
	return found.Value, nil
}

func translateConflict(err error) error {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return category.ErrNameTaken
	}
	return err
}
