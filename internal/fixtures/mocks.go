// Package fixtures holds testify mocks for the repository contracts.
package fixtures

import (
	"context"
	"testing"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork runs Do callbacks against itself and hands out the
// configured repositories.
type MockUnitOfWork struct {
	mock.Mock
	Users        repository.UserRepository
	Categories   repository.CategoryRepository
	Transactions repository.TransactionRepository
}

// NewMockUnitOfWork returns a UoW whose Do simply invokes fn.
func NewMockUnitOfWork(t *testing.T) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(m)
}

func (m *MockUnitOfWork) UserRepository() (repository.UserRepository, error) {
	if m.Users == nil {
		return nil, repository.ErrNoTransaction
	}
	return m.Users, nil
}

func (m *MockUnitOfWork) CategoryRepository() (repository.CategoryRepository, error) {
	if m.Categories == nil {
		return nil, repository.ErrNoTransaction
	}
	return m.Categories, nil
}

func (m *MockUnitOfWork) TransactionRepository() (repository.TransactionRepository, error) {
	if m.Transactions == nil {
		return nil, repository.ErrNoTransaction
	}
	return m.Transactions, nil
}

// MockUserRepository is a testify mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, create *dto.UserCreate) (*dto.UserRead, error) {
	args := m.Called(ctx, create)
	u, _ := args.Get(0).(*dto.UserRead)
	return u, args.Error(1)
}

func (m *MockUserRepository) Get(ctx context.Context, id uint) (repository.Lookup[*dto.UserRead], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.Lookup[*dto.UserRead]), args.Error(1)
}

func (m *MockUserRepository) GetByIdentity(
	ctx context.Context,
	identity string,
) (repository.Lookup[*dto.UserRead], error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(repository.Lookup[*dto.UserRead]), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string, exceptID uint) (bool, error) {
	args := m.Called(ctx, email, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string, exceptID uint) (bool, error) {
	args := m.Called(ctx, username, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uint, update *dto.UserUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, page dto.Page) ([]*dto.UserRead, error) {
	args := m.Called(ctx, page)
	users, _ := args.Get(0).([]*dto.UserRead)
	return users, args.Error(1)
}

// MockCategoryRepository is a testify mock of repository.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func NewMockCategoryRepository(t *testing.T) *MockCategoryRepository {
	m := &MockCategoryRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCategoryRepository) ListByOwner(ctx context.Context, userID uint) ([]*dto.CategoryRead, error) {
	args := m.Called(ctx, userID)
	categories, _ := args.Get(0).([]*dto.CategoryRead)
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) GetByOwner(
	ctx context.Context,
	userID, id uint,
) (repository.Lookup[*dto.CategoryRead], error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(repository.Lookup[*dto.CategoryRead]), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, create *dto.CategoryCreate) (*dto.CategoryRead, error) {
	args := m.Called(ctx, create)
	c, _ := args.Get(0).(*dto.CategoryRead)
	return c, args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, userID, id uint, update *dto.CategoryUpdate) error {
	return m.Called(ctx, userID, id, update).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, userID, id uint) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockCategoryRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

// MockTransactionRepository is a testify mock of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func NewMockTransactionRepository(t *testing.T) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionRepository) ListByOwner(
	ctx context.Context,
	userID uint,
	page dto.Page,
) ([]*dto.TransactionRead, error) {
	args := m.Called(ctx, userID, page)
	txs, _ := args.Get(0).([]*dto.TransactionRead)
	return txs, args.Error(1)
}

func (m *MockTransactionRepository) GetByOwner(
	ctx context.Context,
	userID, id uint,
) (repository.Lookup[*dto.TransactionRead], error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(repository.Lookup[*dto.TransactionRead]), args.Error(1)
}

func (m *MockTransactionRepository) Create(
	ctx context.Context,
	create *dto.TransactionCreate,
) (*dto.TransactionRead, error) {
	args := m.Called(ctx, create)
	tx, _ := args.Get(0).(*dto.TransactionRead)
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) Update(
	ctx context.Context,
	userID, id uint,
	update *dto.TransactionUpdate,
) error {
	return m.Called(ctx, userID, id, update).Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, userID, id uint) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockTransactionRepository) DetachCategory(ctx context.Context, userID, categoryID uint) (int64, error) {
	args := m.Called(ctx, userID, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

var (
	_ repository.UnitOfWork            = (*MockUnitOfWork)(nil)
	_ repository.UserRepository        = (*MockUserRepository)(nil)
	_ repository.CategoryRepository    = (*MockCategoryRepository)(nil)
	_ repository.TransactionRepository = (*MockTransactionRepository)(nil)
)
