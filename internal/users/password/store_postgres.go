// Copyright (c) 2026 F-Students App. All rights reserved.

package password

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/f-students-app/auth-service/internal/platform/apperr"
)

// # Account Repository

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
FindByEmail retrieves an active account by its email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Account: Reduced account projection
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	const query = `
		SELECT id, username, email, fullname, passwordhash, isactive
		FROM iam.useraccount
		WHERE email = $1 AND deletedat IS NULL`

	return repository.scanAccount(context, query, email)
}

/*
FindByID retrieves an active account by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Account: Reduced account projection
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	const query = `
		SELECT id, username, email, fullname, passwordhash, isactive
		FROM iam.useraccount
		WHERE id = $1 AND deletedat IS NULL`

	return repository.scanAccount(context, query, id)
}

func (repository *PostgresAccountRepository) scanAccount(context context.Context, query string, arg any) (*Account, error) {
	account := &Account{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.FullName,
		&account.PasswordHash,
		&account.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_failed: %w", err)
	}

	return account, nil
}

/*
ApplyUpdate commits a password change atomically.

Description: Updates the account hash, clears the must-change flag, stamps
passwordchangedat, appends the history row, and consumes the reset token
when one drove the change. All rows land in one transaction.

Parameters:
  - context: context.Context
  - update: Update

Returns:
  - error: Transactional failures
*/
func (repository *PostgresAccountRepository) ApplyUpdate(context context.Context, update Update) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_tx_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const accountQuery = `
		UPDATE iam.useraccount
		SET passwordhash = $2, mustchangepassword = FALSE,
		    passwordchangedat = NOW(), updatedat = NOW()
		WHERE id = $1`

	if _, err := transaction.Exec(context, accountQuery, update.UserID, update.NewHash); err != nil {
		return fmt.Errorf("postgres_account_repo_update_hash_failed: %w", err)
	}

	const historyQuery = `
		INSERT INTO iam.passwordhistory (id, userid, passwordhash, createdat)
		VALUES ($1, $2, $3, NOW())`

	if _, err := transaction.Exec(context, historyQuery, update.HistoryID, update.UserID, update.NewHash); err != nil {
		return fmt.Errorf("postgres_account_repo_history_insert_failed: %w", err)
	}

	if update.ResetTokenID != "" {
		const consumeQuery = `
			UPDATE iam.passwordresettoken
			SET usedat = NOW()
			WHERE id = $1 AND usedat IS NULL`

		if _, err := transaction.Exec(context, consumeQuery, update.ResetTokenID); err != nil {
			return fmt.Errorf("postgres_account_repo_token_consume_failed: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_account_repo_update_tx_commit_failed: %w", err)
	}

	return nil
}

// # Reset Token Repository

// PostgresResetTokenRepository implements the ResetTokenRepository interface.
type PostgresResetTokenRepository struct {
	pool *pgxpool.Pool
}

// NewResetTokenRepository creates a new PostgreSQL implementation of ResetTokenRepository.
func NewResetTokenRepository(pool *pgxpool.Pool) *PostgresResetTokenRepository {
	return &PostgresResetTokenRepository{pool: pool}
}

// Create persists a freshly issued reset token row.
func (repository *PostgresResetTokenRepository) Create(context context.Context, token *ResetToken) error {
	const query = `
		INSERT INTO iam.passwordresettoken (id, userid, token, expiresat, createdat)
		VALUES ($1, $2, $3, $4, NOW())`

	_, err := repository.pool.Exec(context, query,
		token.ID,
		token.UserID,
		token.Token,
		token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_reset_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindActive retrieves an unused, unexpired reset token by its token string.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *ResetToken: The stored row
  - error: apperr.NotFound if the row is missing, used, or expired
*/
func (repository *PostgresResetTokenRepository) FindActive(context context.Context, token string) (*ResetToken, error) {
	const query = `
		SELECT id, userid, token, expiresat, usedat, createdat
		FROM iam.passwordresettoken
		WHERE token = $1 AND usedat IS NULL AND expiresat > NOW()`

	row := &ResetToken{}
	err := repository.pool.QueryRow(context, query, token).Scan(
		&row.ID,
		&row.UserID,
		&row.Token,
		&row.ExpiresAt,
		&row.UsedAt,
		&row.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Reset token")
		}
		return nil, fmt.Errorf("postgres_reset_repo_find_failed: %w", err)
	}

	return row, nil
}
