package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a UserRepository bound to db (usually a transaction).
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(
	ctx context.Context,
	create *dto.UserCreate,
) (*dto.UserRead, error) {
	u := &User{
		Email:          create.Email,
		Username:       create.Username,
		HashedPassword: create.HashedPassword,
		IsActive:       true,
	}
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(u).Error
	}); err != nil {
		return nil, err
	}
	return mapUserToDTO(u), nil
}

func (r *userRepository) Get(
	ctx context.Context,
	id uint,
) (repository.Lookup[*dto.UserRead], error) {
	return r.first(ctx, r.db.Where("id = ?", id))
}

func (r *userRepository) GetByIdentity(
	ctx context.Context,
	identity string,
) (repository.Lookup[*dto.UserRead], error) {
	return r.first(ctx, r.db.Where("email = ? OR username = ?", identity, identity))
}

func (r *userRepository) first(
	ctx context.Context,
	query *gorm.DB,
) (repository.Lookup[*dto.UserRead], error) {
	var u User
	if err := query.WithContext(ctx).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.NotFound[*dto.UserRead](), nil
		}
		return repository.NotFound[*dto.UserRead](), MapGormErrorToDomain(err)
	}
	return repository.Found(mapUserToDTO(&u)), nil
}

func (r *userRepository) ExistsByEmail(
	ctx context.Context,
	email string,
	exceptID uint,
) (bool, error) {
	return r.exists(ctx, "email = ?", email, exceptID)
}

func (r *userRepository) ExistsByUsername(
	ctx context.Context,
	username string,
	exceptID uint,
) (bool, error) {
	return r.exists(ctx, "username = ?", username, exceptID)
}

func (r *userRepository) exists(
	ctx context.Context,
	cond string,
	value string,
	exceptID uint,
) (bool, error) {
	query := r.db.WithContext(ctx).Model(&User{}).Where(cond, value)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *userRepository) Update(
	ctx context.Context,
	id uint,
	uu *dto.UserUpdate,
) error {
	updates := make(map[string]any)

	// Only include non-nil fields in the update
	if uu.Email != nil {
		updates["email"] = *uu.Email
	}
	if uu.Username != nil {
		updates["username"] = *uu.Username
	}
	if uu.IsActive != nil {
		updates["is_active"] = *uu.IsActive
	}
	if len(updates) == 0 {
		return nil
	}

	return WrapError(func() error {
		return r.db.WithContext(ctx).Model(&User{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).Delete(&User{}).Error
	})
}

func (r *userRepository) List(
	ctx context.Context,
	page dto.Page,
) ([]*dto.UserRead, error) {
	var users []User
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&users).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}

	result := make([]*dto.UserRead, 0, len(users))
	for i := range users {
		result = append(result, mapUserToDTO(&users[i]))
	}
	return result, nil
}

func mapUserToDTO(u *User) *dto.UserRead {
	return &dto.UserRead{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		HashedPassword: u.HashedPassword,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.UTC(),
	}
}

var _ repository.UserRepository = (*userRepository)(nil)
