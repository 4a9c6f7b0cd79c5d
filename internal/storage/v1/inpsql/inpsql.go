// Package inpsql provides PSQL-based storage functionality.
package inpsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dkovalev/go-skinstore/internal/config"
	"github.com/dkovalev/go-skinstore/internal/models/modelstorage"
	storageErrors "github.com/dkovalev/go-skinstore/internal/storage/v1/errors"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Storage struct {
	Cfg *config.StorageConfig
	DB  *sql.DB
	log *zerolog.Logger
}

// InitStorage initializes a Storage object, sets its attributes and starts a listener for graceful shutdown.
func InitStorage(ctx context.Context, cfg *config.StorageConfig, log *zerolog.Logger, wg *sync.WaitGroup) (*Storage, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
	st := Storage{
		Cfg: cfg,
		DB:  db,
		log: log,
	}
	err = st.createTables(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		err := st.DB.Close()
		if err != nil {
			st.log.Error().Err(err).Msg("could not close DB connection")
			return
		}
		st.log.Info().Msg("PSQL DB connection was closed")
	}()
	log.Info().Msg("PSQL DB connection was established")
	return &st, nil
}

// GetUser retrieves one user row by its identifier.
func (s *Storage) GetUser(ctx context.Context, userID string) (*modelstorage.UserStorageEntry, error) {
	selectStmt, err := s.DB.PrepareContext(ctx, "SELECT id, email, balance, version, registered_at FROM users WHERE id = $1")
	if err != nil {
		return nil, &storageErrors.StatementPSQLError{Err: err}
	}
	defer selectStmt.Close()
	chanOk := make(chan *modelstorage.UserStorageEntry)
	chanEr := make(chan error)
	go func() {
		var queryOutput modelstorage.UserStorageEntry
		err := selectStmt.QueryRowContext(ctx, userID).Scan(&queryOutput.ID, &queryOutput.Email, &queryOutput.Balance, &queryOutput.Version, &queryOutput.RegisteredAt)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				chanEr <- &storageErrors.NotFoundError{Err: err}
				return
			default:
				chanEr <- &storageErrors.ScanningPSQLError{Err: err}
				return
			}
		}
		chanOk <- &queryOutput
	}()
	select {
	case <-ctx.Done():
		s.log.Error().Err(ctx.Err()).Msg(fmt.Sprintf("getting user failed for %s", userID))
		return nil, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case methodErr := <-chanEr:
		s.log.Error().Err(methodErr).Msg(fmt.Sprintf("getting user failed for %s", userID))
		return nil, methodErr
	case entry := <-chanOk:
		return entry, nil
	}
}

// GetProduct retrieves one product row by its identifier.
func (s *Storage) GetProduct(ctx context.Context, productID string) (*modelstorage.ProductStorageEntry, error) {
	selectStmt, err := s.DB.PrepareContext(ctx, "SELECT id, name, price, created_at FROM products WHERE id = $1")
	if err != nil {
		return nil, &storageErrors.StatementPSQLError{Err: err}
	}
	defer selectStmt.Close()
	chanOk := make(chan *modelstorage.ProductStorageEntry)
	chanEr := make(chan error)
	go func() {
		var queryOutput modelstorage.ProductStorageEntry
		err := selectStmt.QueryRowContext(ctx, productID).Scan(&queryOutput.ID, &queryOutput.Name, &queryOutput.Price, &queryOutput.CreatedAt)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				chanEr <- &storageErrors.NotFoundError{Err: err}
				return
			default:
				chanEr <- &storageErrors.ScanningPSQLError{Err: err}
				return
			}
		}
		chanOk <- &queryOutput
	}()
	select {
	case <-ctx.Done():
		s.log.Error().Err(ctx.Err()).Msg(fmt.Sprintf("getting product failed for %s", productID))
		return nil, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case methodErr := <-chanEr:
		s.log.Error().Err(methodErr).Msg(fmt.Sprintf("getting product failed for %s", productID))
		return nil, methodErr
	case entry := <-chanOk:
		return entry, nil
	}
}

// ExecutePurchase applies one purchase as a single atomic unit of work: a conditional
// balance update guarded by the version read earlier and a ledger insert. A zero-row
// conditional update rolls the whole unit back and reports a version conflict.
func (s *Storage) ExecutePurchase(ctx context.Context, userID, productID string, price, newBalance decimal.Decimal, expectedVersion int64) error {
	chanOk := make(chan bool)
	chanEr := make(chan error)
	go func() {
		tx, err := s.DB.BeginTx(ctx, nil)
		if err != nil {
			chanEr <- &storageErrors.TransactionPSQLError{Err: err}
			return
		}
		res, err := tx.ExecContext(
			ctx,
			"UPDATE users SET balance = $1, version = version + 1 WHERE id = $2 AND version = $3",
			newBalance.StringFixed(2), userID, expectedVersion,
		)
		if err != nil {
			tx.Rollback()
			chanEr <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		affected, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			chanEr <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		if affected == 0 {
			tx.Rollback()
			chanEr <- &storageErrors.VersionConflictError{ID: userID, Version: expectedVersion}
			return
		}
		_, err = tx.ExecContext(
			ctx,
			"INSERT INTO purchases (user_id, product_id, price, status, created_at) VALUES ($1, $2, $3, $4, $5)",
			userID, productID, price.StringFixed(2), "completed", time.Now().Format(time.RFC3339),
		)
		if err != nil {
			tx.Rollback()
			chanEr <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		err = tx.Commit()
		if err != nil {
			chanEr <- &storageErrors.TransactionPSQLError{Err: err}
			return
		}
		chanOk <- true
	}()
	select {
	case <-ctx.Done():
		s.log.Error().Err(ctx.Err()).Msg(fmt.Sprintf("executing purchase failed for user %s", userID))
		return &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case methodErr := <-chanEr:
		var versionConflictError *storageErrors.VersionConflictError
		if errors.As(methodErr, &versionConflictError) {
			s.log.Warn().Msg(fmt.Sprintf("version conflict detected for user %s at version %v", userID, expectedVersion))
		} else {
			s.log.Error().Err(methodErr).Msg(fmt.Sprintf("executing purchase failed for user %s", userID))
		}
		return methodErr
	case <-chanOk:
		s.log.Info().Msg(fmt.Sprintf("executing purchase done for user %s, product %s", userID, productID))
		return nil
	}
}

// AddUser adds one user row with an initial balance.
func (s *Storage) AddUser(ctx context.Context, userID, email string, balance decimal.Decimal) error {
	newUserStmt, err := s.DB.PrepareContext(ctx, "INSERT INTO users (id, email, balance, version, registered_at) VALUES ($1, $2, $3, $4, $5)")
	if err != nil {
		return &storageErrors.StatementPSQLError{Err: err}
	}
	defer newUserStmt.Close()
	chanOk := make(chan bool)
	chanEr := make(chan error)
	go func() {
		_, err := newUserStmt.ExecContext(ctx, userID, email, balance.StringFixed(2), 0, time.Now().Format(time.RFC3339))
		if err != nil {
			if err, ok := err.(*pgconn.PgError); ok && err.Code == pgerrcode.UniqueViolation {
				chanEr <- &storageErrors.AlreadyExistsError{Err: err, ID: email}
				return
			}
			chanEr <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		chanOk <- true
	}()
	select {
	case <-ctx.Done():
		s.log.Error().Err(ctx.Err()).Msg(fmt.Sprintf("adding new user failed for %s", email))
		return &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case methodErr := <-chanEr:
		s.log.Error().Err(methodErr).Msg(fmt.Sprintf("adding new user failed for %s", email))
		return methodErr
	case <-chanOk:
		s.log.Info().Msg(fmt.Sprintf("adding new user done for %s", email))
		return nil
	}
}

// AddProduct adds one product row.
func (s *Storage) AddProduct(ctx context.Context, productID, name string, price decimal.Decimal) error {
	newProductStmt, err := s.DB.PrepareContext(ctx, "INSERT INTO products (id, name, price, created_at) VALUES ($1, $2, $3, $4)")
	if err != nil {
		return &storageErrors.StatementPSQLError{Err: err}
	}
	defer newProductStmt.Close()
	chanOk := make(chan bool)
	chanEr := make(chan error)
	go func() {
		_, err := newProductStmt.ExecContext(ctx, productID, name, price.StringFixed(2), time.Now().Format(time.RFC3339))
		if err != nil {
			if err, ok := err.(*pgconn.PgError); ok && err.Code == pgerrcode.UniqueViolation {
				chanEr <- &storageErrors.AlreadyExistsError{Err: err, ID: name}
				return
			}
			chanEr <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		chanOk <- true
	}()
	select {
	case <-ctx.Done():
		s.log.Error().Err(ctx.Err()).Msg(fmt.Sprintf("adding new product failed for %s", name))
		return &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case methodErr := <-chanEr:
		s.log.Error().Err(methodErr).Msg(fmt.Sprintf("adding new product failed for %s", name))
		return methodErr
	case <-chanOk:
		s.log.Info().Msg(fmt.Sprintf("adding new product done for %s", name))
		return nil
	}
}

func (s *Storage) createTables(ctx context.Context) error {
	var queries []string
	query := `CREATE TABLE IF NOT EXISTS users (
		id            UUID           NOT NULL UNIQUE,
		email         TEXT           NOT NULL UNIQUE,
		balance       NUMERIC(12, 2) NOT NULL CHECK (balance >= 0),
		version       BIGINT         NOT NULL DEFAULT 0,
		registered_at TIMESTAMPTZ    NOT NULL
	);`
	queries = append(queries, query)
	query = `CREATE TABLE IF NOT EXISTS products (
		id         UUID           NOT NULL UNIQUE,
		name       TEXT           NOT NULL UNIQUE,
		price      NUMERIC(12, 2) NOT NULL,
		created_at TIMESTAMPTZ    NOT NULL
	);`
	queries = append(queries, query)
	query = `CREATE TABLE IF NOT EXISTS purchases (
		id         BIGSERIAL      NOT NULL,
		user_id    UUID           NOT NULL,
		product_id UUID           NOT NULL,
		price      NUMERIC(12, 2) NOT NULL,
		status     TEXT           NOT NULL,
		created_at TIMESTAMPTZ    NOT NULL
	);`
	queries = append(queries, query)
	for _, subquery := range queries {
		_, err := s.DB.ExecContext(ctx, subquery)
		if err != nil {
			return err
		}
	}
	return nil
}
