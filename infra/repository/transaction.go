package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository returns a TransactionRepository bound to db.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) ListByOwner(
	ctx context.Context,
	userID uint,
	page dto.Page,
) ([]*dto.TransactionRead, error) {
	var txs []Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&txs).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}

	result := make([]*dto.TransactionRead, 0, len(txs))
	for i := range txs {
		result = append(result, mapTransactionToDTO(&txs[i]))
	}
	return result, nil
}

func (r *transactionRepository) GetByOwner(
	ctx context.Context,
	userID, id uint,
) (repository.Lookup[*dto.TransactionRead], error) {
	var t Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("id = ?", id).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.NotFound[*dto.TransactionRead](), nil
	}
	if err != nil {
		return repository.NotFound[*dto.TransactionRead](), MapGormErrorToDomain(err)
	}
	return repository.Found(mapTransactionToDTO(&t)), nil
}

func (r *transactionRepository) Create(
	ctx context.Context,
	create *dto.TransactionCreate,
) (*dto.TransactionRead, error) {
	t := &Transaction{
		UserID:      create.UserID,
		CategoryID:  create.CategoryID,
		Amount:      transaction.NormalizeAmount(create.Amount),
		Description: create.Description,
		Type:        string(create.Type),
		Date:        create.Date.UTC(),
	}
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(t).Error
	}); err != nil {
		return nil, err
	}
	return mapTransactionToDTO(t), nil
}

func (r *transactionRepository) Update(
	ctx context.Context,
	userID, id uint,
	tu *dto.TransactionUpdate,
) error {
	updates := make(map[string]any)
	if tu.CategoryID != nil {
		updates["category_id"] = *tu.CategoryID
	}
	if tu.Amount != nil {
		updates["amount"] = transaction.NormalizeAmount(*tu.Amount)
	}
	if tu.Description != nil {
		updates["description"] = *tu.Description
	}
	if tu.Type != nil {
		updates["transaction_type"] = string(*tu.Type)
	}
	if tu.Date != nil {
		updates["date"] = tu.Date.UTC()
	}
	if len(updates) == 0 {
		return nil
	}

	return WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Transaction{}).
			Where("user_id = ?", userID).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *transactionRepository) Delete(ctx context.Context, userID, id uint) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Where("id = ?", id).
			Delete(&Transaction{}).Error
	})
}

func (r *transactionRepository) DetachCategory(
	ctx context.Context,
	userID, categoryID uint,
) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("user_id = ?", userID).
		Where("category_id = ?", categoryID).
		Update("category_id", nil)
	if res.Error != nil {
		return 0, MapGormErrorToDomain(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *transactionRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Delete(&Transaction{}).Error
	})
}

func mapTransactionToDTO(t *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:          t.ID,
		UserID:      t.UserID,
		CategoryID:  t.CategoryID,
		Amount:      t.Amount,
		Description: t.Description,
		Type:        transaction.Type(t.Type),
		Date:        t.Date.UTC(),
		CreatedAt:   t.CreatedAt.UTC(),
	}
}

var _ repository.TransactionRepository = (*transactionRepository)(nil)
