// Copyright (c) 2026 F-Students App. All rights reserved.

// PostgreSQL implementations of the auth storage contracts.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/f-students-app/auth-service/internal/platform/apperr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userSelectColumns = `
	id, username, email, passwordhash, fullname, isactive,
	mustchangepassword, passwordchangedat, failedloginattempts,
	lockeduntil, lastloginat, lastloginip, createdat, updatedat`

/*
FindByLogin retrieves an account whose username or email exactly matches the login.

Description: Performs a lookup on the account table, filtering out soft-deleted
users, then hydrates the active role codes.

Parameters:
  - context: context.Context
  - login: string (username or email)

Returns:
  - *User: Hydrated account entity with roles
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByLogin(context context.Context, login string) (*User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM iam.useraccount
		WHERE (username = $1 OR email = $1) AND deletedat IS NULL`

	user, err := repository.scanUser(context, query, login)
	if err != nil {
		return nil, err
	}

	if err := repository.loadRoles(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
FindByID retrieves an account by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account entity with roles
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM iam.useraccount
		WHERE id = $1 AND deletedat IS NULL`

	user, err := repository.scanUser(context, query, id)
	if err != nil {
		return nil, err
	}

	if err := repository.loadRoles(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// scanUser executes a single-row account query and maps the result.
func (repository *PostgresUserRepository) scanUser(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.IsActive,
		&user.MustChangePassword,
		&user.PasswordChangedAt,
		&user.FailedLoginAttempts,
		&user.LockedUntil,
		&user.LastLoginAt,
		&user.LastLoginIP,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_failed: %w", err)
	}

	return user, nil
}

// loadRoles hydrates the active, non-deleted roles attached to the account.
func (repository *PostgresUserRepository) loadRoles(context context.Context, user *User) error {
	const query = `
		SELECT r.id, r.code, r.name
		FROM iam.role r
		JOIN iam.userrole ur ON ur.roleid = r.id
		WHERE ur.userid = $1 AND r.isactive = TRUE AND r.deletedat IS NULL
		ORDER BY r.code`

	rows, err := repository.pool.Query(context, query, user.ID)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_load_roles_failed: %w", err)
	}
	defer rows.Close()

	user.Roles = make([]RoleRef, 0)
	for rows.Next() {
		var role RoleRef
		if err := rows.Scan(&role.ID, &role.Code, &role.Name); err != nil {
			return fmt.Errorf("postgres_user_repo_scan_role_failed: %w", err)
		}
		user.Roles = append(user.Roles, role)
	}

	return rows.Err()
}

/*
RecordLoginFailure commits the failed-attempt state change and its audit row
in a single transaction.

Description: The incremented counter, the optional lockout window, and the
append-only audit row either all land or none do. The audit row survives
even though the login itself fails.

Parameters:
  - context: context.Context
  - userID: string
  - attempts: int (new counter value)
  - lockedUntil: *time.Time (nil unless the ceiling was reached)
  - record: *LoginRecord

Returns:
  - error: Transactional failures
*/
func (repository *PostgresUserRepository) RecordLoginFailure(context context.Context, userID string, attempts int, lockedUntil *time.Time, record *LoginRecord) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_failure_tx_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const updateQuery = `
		UPDATE iam.useraccount
		SET failedloginattempts = $2, lockeduntil = $3, updatedat = NOW()
		WHERE id = $1`

	if _, err := transaction.Exec(context, updateQuery, userID, attempts, lockedUntil); err != nil {
		return fmt.Errorf("postgres_user_repo_failure_update_failed: %w", err)
	}

	if err := insertLoginRecord(context, transaction, record); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_user_repo_failure_tx_commit_failed: %w", err)
	}

	return nil
}

/*
RecordLoginSuccess commits the successful-login state change in a single
transaction.

Description: Resets the failure counter, clears the lockout window, stamps
the last login metadata, persists the refresh token row, and appends the
audit row atomically.

Parameters:
  - context: context.Context
  - userID: string
  - ipAddress: string
  - token: *RefreshToken
  - record: *LoginRecord

Returns:
  - error: Transactional failures
*/
func (repository *PostgresUserRepository) RecordLoginSuccess(context context.Context, userID string, ipAddress string, token *RefreshToken, record *LoginRecord) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_success_tx_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const updateQuery = `
		UPDATE iam.useraccount
		SET failedloginattempts = 0, lockeduntil = NULL,
		    lastloginat = NOW(), lastloginip = $2, updatedat = NOW()
		WHERE id = $1`

	if _, err := transaction.Exec(context, updateQuery, userID, ipAddress); err != nil {
		return fmt.Errorf("postgres_user_repo_success_update_failed: %w", err)
	}

	const tokenQuery = `
		INSERT INTO iam.refreshtoken (
			id, userid, token, useragent, ipaddress, expiresat, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	if _, err := transaction.Exec(context, tokenQuery,
		token.ID,
		token.UserID,
		token.Token,
		token.UserAgent,
		token.IPAddress,
		token.ExpiresAt,
	); err != nil {
		return fmt.Errorf("postgres_user_repo_success_token_failed: %w", err)
	}

	if err := insertLoginRecord(context, transaction, record); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_user_repo_success_tx_commit_failed: %w", err)
	}

	return nil
}

// insertLoginRecord appends an audit row inside an open transaction.
func insertLoginRecord(context context.Context, transaction pgx.Tx, record *LoginRecord) error {
	const query = `
		INSERT INTO iam.loginhistory (
			id, userid, username, ipaddress, useragent, status, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	_, err := transaction.Exec(context, query,
		record.ID,
		record.UserID,
		record.Username,
		record.IPAddress,
		record.UserAgent,
		record.Status,
	)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_audit_insert_failed: %w", err)
	}

	return nil
}

// # Refresh Token Repository

// PostgresRefreshTokenRepository implements the RefreshTokenRepository interface.
type PostgresRefreshTokenRepository struct {
	pool *pgxpool.Pool
}

// NewRefreshTokenRepository creates a new PostgreSQL implementation of RefreshTokenRepository.
func NewRefreshTokenRepository(pool *pgxpool.Pool) *PostgresRefreshTokenRepository {
	return &PostgresRefreshTokenRepository{pool: pool}
}

/*
FindActive retrieves an unrevoked, unexpired token row by its token string.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *RefreshToken: The stored row
  - error: apperr.NotFound if the row is missing, revoked, or expired
*/
func (repository *PostgresRefreshTokenRepository) FindActive(context context.Context, token string) (*RefreshToken, error) {
	const query = `
		SELECT id, userid, token, useragent, ipaddress, expiresat, revokedat, createdat
		FROM iam.refreshtoken
		WHERE token = $1 AND revokedat IS NULL AND expiresat > NOW()`

	row := &RefreshToken{}
	err := repository.pool.QueryRow(context, query, token).Scan(
		&row.ID,
		&row.UserID,
		&row.Token,
		&row.UserAgent,
		&row.IPAddress,
		&row.ExpiresAt,
		&row.RevokedAt,
		&row.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Refresh token")
		}
		return nil, fmt.Errorf("postgres_refresh_repo_find_failed: %w", err)
	}

	return row, nil
}

/*
RevokeMatching stamps RevokedAt on every active row holding the token string.

Description: Rows are never deleted; a revoked row remains as an audit trail.
Revoking an unknown or already revoked token affects zero rows and succeeds.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Database errors
*/
func (repository *PostgresRefreshTokenRepository) RevokeMatching(context context.Context, token string) error {
	const query = `
		UPDATE iam.refreshtoken
		SET revokedat = NOW()
		WHERE token = $1 AND revokedat IS NULL`

	if _, err := repository.pool.Exec(context, query, token); err != nil {
		return fmt.Errorf("postgres_refresh_repo_revoke_failed: %w", err)
	}

	return nil
}

/*
RevokeAllForUser stamps RevokedAt on every active row belonging to the user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Database errors
*/
func (repository *PostgresRefreshTokenRepository) RevokeAllForUser(context context.Context, userID string) error {
	const query = `
		UPDATE iam.refreshtoken
		SET revokedat = NOW()
		WHERE userid = $1 AND revokedat IS NULL`

	if _, err := repository.pool.Exec(context, query, userID); err != nil {
		return fmt.Errorf("postgres_refresh_repo_revoke_all_failed: %w", err)
	}

	return nil
}
