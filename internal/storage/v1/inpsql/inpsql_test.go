package inpsql

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkovalev/go-skinstore/internal/config"
	"github.com/dkovalev/go-skinstore/internal/logger"
	storageErrors "github.com/dkovalev/go-skinstore/internal/storage/v1/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const (
	testUserID    = "8b171fbb-5a21-4cb8-a2a8-bd7f4d1b6c90"
	testProductID = "2f16c174-33b9-44a8-94f2-1b36a9d71e8c"
)

func newTestStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Storage{
		Cfg: &config.StorageConfig{},
		DB:  db,
		log: logger.InitLog(),
	}, mock
}

func TestGetUser(t *testing.T) {
	st, mock := newTestStorage(t)

	t.Run("existing user", func(t *testing.T) {
		mock.ExpectPrepare("SELECT id, email, balance, version, registered_at FROM users").
			ExpectQuery().
			WithArgs(testUserID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "balance", "version", "registered_at"}).
				AddRow(testUserID, "test@example.com", "100.00", 3, "2022-06-01T00:00:00Z"))

		entry, err := st.GetUser(context.Background(), testUserID)
		assert.NoError(t, err)
		assert.Equal(t, "100.00", entry.Balance)
		assert.Equal(t, int64(3), entry.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectPrepare("SELECT id, email, balance, version, registered_at FROM users").
			ExpectQuery().
			WithArgs(testUserID).
			WillReturnError(sql.ErrNoRows)

		entry, err := st.GetUser(context.Background(), testUserID)
		assert.Nil(t, entry)
		var notFoundError *storageErrors.NotFoundError
		assert.True(t, errors.As(err, &notFoundError))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetProduct(t *testing.T) {
	st, mock := newTestStorage(t)

	t.Run("existing product", func(t *testing.T) {
		mock.ExpectPrepare("SELECT id, name, price, created_at FROM products").
			ExpectQuery().
			WithArgs(testProductID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "created_at"}).
				AddRow(testProductID, "Basic Skin", "9.99", "2022-06-01T00:00:00Z"))

		entry, err := st.GetProduct(context.Background(), testProductID)
		assert.NoError(t, err)
		assert.Equal(t, "9.99", entry.Price)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown product", func(t *testing.T) {
		mock.ExpectPrepare("SELECT id, name, price, created_at FROM products").
			ExpectQuery().
			WithArgs(testProductID).
			WillReturnError(sql.ErrNoRows)

		entry, err := st.GetProduct(context.Background(), testProductID)
		assert.Nil(t, entry)
		var notFoundError *storageErrors.NotFoundError
		assert.True(t, errors.As(err, &notFoundError))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExecutePurchase(t *testing.T) {
	price := decimal.RequireFromString("9.99")
	newBalance := decimal.RequireFromString("90.01")

	t.Run("successful purchase commits both writes", func(t *testing.T) {
		st, mock := newTestStorage(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users SET balance = \\$1, version = version \\+ 1 WHERE id = \\$2 AND version = \\$3").
			WithArgs("90.01", testUserID, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO purchases").
			WithArgs(testUserID, testProductID, "9.99", "completed", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := st.ExecutePurchase(context.Background(), testUserID, testProductID, price, newBalance, 3)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version rolls back without a ledger write", func(t *testing.T) {
		st, mock := newTestStorage(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users SET balance = \\$1, version = version \\+ 1 WHERE id = \\$2 AND version = \\$3").
			WithArgs("90.01", testUserID, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := st.ExecutePurchase(context.Background(), testUserID, testProductID, price, newBalance, 3)
		var versionConflictError *storageErrors.VersionConflictError
		assert.True(t, errors.As(err, &versionConflictError))
		assert.Equal(t, int64(3), versionConflictError.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ledger insert failure rolls back the balance update", func(t *testing.T) {
		st, mock := newTestStorage(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users SET balance = \\$1, version = version \\+ 1 WHERE id = \\$2 AND version = \\$3").
			WithArgs("90.01", testUserID, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO purchases").
			WithArgs(testUserID, testProductID, "9.99", "completed", sqlmock.AnyArg()).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := st.ExecutePurchase(context.Background(), testUserID, testProductID, price, newBalance, 3)
		var executionPSQLError *storageErrors.ExecutionPSQLError
		assert.True(t, errors.As(err, &executionPSQLError))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddUser(t *testing.T) {
	st, mock := newTestStorage(t)
	mock.ExpectPrepare("INSERT INTO users").
		ExpectExec().
		WithArgs(testUserID, "test@example.com", "100.00", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := st.AddUser(context.Background(), testUserID, "test@example.com", decimal.RequireFromString("100.00"))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddProduct(t *testing.T) {
	st, mock := newTestStorage(t)
	mock.ExpectPrepare("INSERT INTO products").
		ExpectExec().
		WithArgs(testProductID, "Basic Skin", "9.99", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := st.AddProduct(context.Background(), testProductID, "Basic Skin", decimal.RequireFromString("9.99"))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
