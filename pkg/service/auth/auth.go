package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Service authenticates credentials and resolves bearer tokens to users.
type Service struct {
	uow    repository.UnitOfWork
	tokens *TokenService
	hasher *utils.PasswordHasher
	logger *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	tokens *TokenService,
	hasher *utils.PasswordHasher,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, tokens: tokens, hasher: hasher, logger: logger}
}

// Tokens exposes the token service for the HTTP middleware.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Login checks identity (email or username) and password.
// Unknown identities and wrong passwords both yield ErrInvalidCredentials.
// The password hash is verified after the lookup transaction has ended.
func (s *Service) Login(
	ctx context.Context,
	identity, password string,
) (*dto.UserRead, error) {
	log := s.logger.With("context", "Login")

	var found repository.Lookup[*dto.UserRead]
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		found, err = repo.GetByIdentity(ctx, identity)
		return err
	})
	if err != nil {
		log.Error("Login failed", "error", err)
		return nil, err
	}

	u, err := s.checkPassword(found, password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) || errors.Is(err, user.ErrInactiveUser) {
			log.Info("Login rejected", "reason", err)
		} else {
			log.Error("Login failed", "error", err)
		}
		return nil, err
	}
	log.Info("Login successful", "userID", u.ID)
	return u, nil
}

func (s *Service) checkPassword(found repository.Lookup[*dto.UserRead], password string) (*dto.UserRead, error) {
	if !found.Found {
		s.hasher.VerifyDummy(password)
		return nil, user.ErrInvalidCredentials
	}
	ok, err := s.hasher.Verify(password, found.Value.HashedPassword)
	if err != nil {
		return nil, fmt.Errorf("verify password for user %d: %w", found.Value.ID, err)
	}
	if !ok {
		return nil, user.ErrInvalidCredentials
	}
	if !found.Value.IsActive {
		return nil, user.ErrInactiveUser
	}
	return found.Value, nil
}

// GenerateToken issues an access token for u.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		s.logger.Error("GenerateToken failed", "userID", u.ID, "error", err)
		return "", err
	}
	return token, nil
}

// ResolvePrincipal turns a token parsed by the middleware into the active
// user it names. It performs exactly one primary key lookup.
func (s *Service) ResolvePrincipal(ctx context.Context, token *jwt.Token) (*dto.UserRead, error) {
	claims, err := s.tokens.ClaimsFromToken(token)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, claims)
}

func (s *Service) resolve(ctx context.Context, claims *Claims) (*dto.UserRead, error) {
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	var u *dto.UserRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		found, err := repo.Get(ctx, userID)
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
		if !errors.Is(err, user.ErrUserNotFound) {
			s.logger.Error("Resolve principal failed", "userID", userID, "error", err)
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, user.ErrInactiveUser
	}
	return u, nil
}
