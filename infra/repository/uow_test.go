package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_DoProvidesRepositories(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		users, err := txUow.UserRepository()
		require.NoError(t, err)
		_, ok := users.(*userRepository)
		assert.True(t, ok)

		categories, err := txUow.CategoryRepository()
		require.NoError(t, err)
		_, ok = categories.(*categoryRepository)
		assert.True(t, ok)

		txs, err := txUow.TransactionRepository()
		require.NoError(t, err)
		_, ok = txs.(*transactionRepository)
		assert.True(t, ok)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_NestedDoReusesTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(outer repository.UnitOfWork) error {
		return outer.Do(context.Background(), func(inner repository.UnitOfWork) error {
			assert.Same(t, outer, inner)
			return nil
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_RepositoriesRequireTransaction(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	_, err := uow.UserRepository()
	assert.ErrorIs(t, err, repository.ErrNoTransaction)
	_, err = uow.CategoryRepository()
	assert.ErrorIs(t, err, repository.ErrNoTransaction)
	_, err = uow.TransactionRepository()
	assert.ErrorIs(t, err, repository.ErrNoTransaction)
}
