package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a CategoryRepository bound to db.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) ListByOwner(
	ctx context.Context,
	userID uint,
) ([]*dto.CategoryRead, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&categories).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}

	result := make([]*dto.CategoryRead, 0, len(categories))
	for i := range categories {
		result = append(result, mapCategoryToDTO(&categories[i]))
	}
	return result, nil
}

func (r *categoryRepository) GetByOwner(
	ctx context.Context,
	userID, id uint,
) (repository.Lookup[*dto.CategoryRead], error) {
	var c Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("id = ?", id).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.NotFound[*dto.CategoryRead](), nil
	}
	if err != nil {
		return repository.NotFound[*dto.CategoryRead](), MapGormErrorToDomain(err)
	}
	return repository.Found(mapCategoryToDTO(&c)), nil
}

func (r *categoryRepository) Create(
	ctx context.Context,
	create *dto.CategoryCreate,
) (*dto.CategoryRead, error) {
	c := &Category{
		UserID: create.UserID,
		Name:   create.Name,
		Color:  create.Color,
		Icon:   create.Icon,
	}
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(c).Error
	}); err != nil {
		return nil, err
	}
	return mapCategoryToDTO(c), nil
}

func (r *categoryRepository) Update(
	ctx context.Context,
	userID, id uint,
	cu *dto.CategoryUpdate,
) error {
	updates := make(map[string]any)
	if cu.Name != nil {
		updates["name"] = *cu.Name
	}
	if cu.Color != nil {
		updates["color"] = *cu.Color
	}
	if cu.Icon != nil {
		updates["icon"] = *cu.Icon
	}
	if len(updates) == 0 {
		return nil
	}

	return WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Category{}).
			Where("user_id = ?", userID).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *categoryRepository) Delete(ctx context.Context, userID, id uint) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Where("id = ?", id).
			Delete(&Category{}).Error
	})
}

func (r *categoryRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Delete(&Category{}).Error
	})
}

func mapCategoryToDTO(c *Category) *dto.CategoryRead {
	return &dto.CategoryRead{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt.UTC(),
	}
}

var _ repository.CategoryRepository = (*categoryRepository)(nil)
