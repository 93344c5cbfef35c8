// Package user provides business logic for user management operations.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/utils"
)

// Service provides business logic for user operations including creation, updates, and deletion.
type Service struct {
	uow    repository.UnitOfWork
	hasher *utils.PasswordHasher
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork, password hasher and logger.
func New(
	uow repository.UnitOfWork,
	hasher *utils.PasswordHasher,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		hasher: hasher,
		logger: logger,
	}
}

// CreateUser registers a new account. Email and username are checked first
// for a precise message; the unique indexes remain the real guard.
func (s *Service) CreateUser(
	ctx context.Context,
	email, username, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "CreateUser")

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := checkIdentityFree(ctx, repo, &email, &username, 0); err != nil {
			return err
		}
		u, err = repo.Create(ctx, &dto.UserCreate{
			Email:          email,
			Username:       username,
			HashedPassword: hash,
		})
		return translateConflict(err)
	})
	if err != nil {
		log.Info("CreateUser failed", "error", err)
		return nil, err
	}
	log.Info("User created", "userID", u.ID)
	return u, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, id uint) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		found, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if !found.Found {
			return user.ErrUserNotFound
		}
		u = found.Value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindUser accepts a numeric id, an email or a username.
func (s *Service) FindUser(ctx context.Context, ref string) (u *dto.UserRead, err error) {
	if id, convErr := strconv.ParseUint(ref, 10, 0); convErr == nil {
		return s.GetUser(ctx, uint(id))
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		found, err := repo.GetByIdentity(ctx, ref)
		if err != nil {
			return err
		}
		if !found.Found {
			return user.ErrUserNotFound
		}
		u = found.Value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies a sparse patch to the user's email and username.
// New values are checked against every other user.
func (s *Service) UpdateProfile(
	ctx context.Context,
	id uint,
	patch *dto.UserUpdate,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "UpdateProfile", "userID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		found, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if !found.Found {
			return user.ErrUserNotFound
		}
		if err := checkIdentityFree(ctx, repo, patch.Email, patch.Username, id); err != nil {
			return err
		}
		if err := translateConflict(repo.Update(ctx, id, patch)); err != nil {
			return err
		}
		reloaded, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if !reloaded.Found {
			return user.ErrUserNotFound
		}
		u = reloaded.Value
		return nil
	})
	if err != nil {
		log.Info("UpdateProfile failed", "error", err)
		return nil, err
	}
	log.Info("Profile updated")
	return u, nil
}

// SetActive enables or disables an account.
func (s *Service) SetActive(ctx context.Context, id uint, active bool) (*dto.UserRead, error) {
	var u *dto.UserRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		found, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if !found.Found {
			return user.ErrUserNotFound
		}
		if err := repo.Update(ctx, id, &dto.UserUpdate{IsActive: &active}); err != nil {
			return err
		}
		u = found.Value
		u.IsActive = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("User activation changed", "userID", id, "active", active)
	return u, nil
}

// DeleteUser removes the user together with every category and transaction
// they own, in one transaction.
func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		found, err := users.Get(ctx, id)
		if err != nil {
			return err
		}
		if !found.Found {
			return user.ErrUserNotFound
		}
		if err := txs.DeleteByOwner(ctx, id); err != nil {
			return fmt.Errorf("delete transactions: %w", err)
		}
		if err := categories.DeleteByOwner(ctx, id); err != nil {
			return fmt.Errorf("delete categories: %w", err)
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("DeleteUser failed", "userID", id, "error", err)
		return err
	}
	s.logger.Info("User deleted", "userID", id)
	return nil
}

// ListUsers returns one page of users ordered by id.
func (s *Service) ListUsers(ctx context.Context, page dto.Page) (users []*dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		users, err = repo.List(ctx, page)
		return err
	})
	return users, err
}

func checkIdentityFree(
	ctx context.Context,
	repo repository.UserRepository,
	email, username *string,
	exceptID uint,
) error {
	if email != nil {
		taken, err := repo.ExistsByEmail(ctx, *email, exceptID)
		if err != nil {
			return err
		}
		if taken {
			return user.ErrEmailTaken
		}
	}
	if username != nil {
		taken, err := repo.ExistsByUsername(ctx, *username, exceptID)
		if err != nil {
			return err
		}
		if taken {
			return user.ErrUsernameTaken
		}
	}
	return nil
}

func translateConflict(err error) error {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return user.ErrIdentityTaken
	}
	return err
}
