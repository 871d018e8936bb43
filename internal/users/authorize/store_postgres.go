// Copyright (c) 2026 F-Students App. All rights reserved.

package authorize

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGrantRepository implements the GrantRepository interface using pgx.
type PostgresGrantRepository struct {
	pool *pgxpool.Pool
}

// NewGrantRepository creates a new PostgreSQL implementation of GrantRepository.
func NewGrantRepository(pool *pgxpool.Pool) *PostgresGrantRepository {
	return &PostgresGrantRepository{pool: pool}
}

/*
ListForRoles retrieves every module-access row for the given role codes.

Description: Joins grants to their module and role so that disabled or
soft-deleted modules and roles contribute nothing to the permission map.

Parameters:
  - context: context.Context
  - roleCodes: []string

Returns:
  - []Grant: Raw grant rows, one per (role, module) combination
  - error: Database errors
*/
func (repository *PostgresGrantRepository) ListForRoles(context context.Context, roleCodes []string) ([]Grant, error) {
	const query = `
		SELECT m.code,
		       ma.canview, ma.cancreate, ma.canupdate, ma.candelete,
		       ma.canviewall, ma.candownload, ma.canapprove
		FROM iam.moduleaccess ma
		JOIN iam.role r ON r.id = ma.roleid
		JOIN iam.module m ON m.id = ma.moduleid
		WHERE r.code = ANY($1)
		  AND r.isactive = TRUE AND r.deletedat IS NULL
		  AND m.isactive = TRUE AND m.deletedat IS NULL`

	rows, err := repository.pool.Query(context, query, roleCodes)
	if err != nil {
		return nil, fmt.Errorf("postgres_grant_repo_list_failed: %w", err)
	}
	defer rows.Close()

	grants := make([]Grant, 0)
	for rows.Next() {
		var grant Grant
		if err := rows.Scan(
			&grant.ModuleCode,
			&grant.Permissions.CanView,
			&grant.Permissions.CanCreate,
			&grant.Permissions.CanUpdate,
			&grant.Permissions.CanDelete,
			&grant.Permissions.CanViewAll,
			&grant.Permissions.CanDownload,
			&grant.Permissions.CanApprove,
		); err != nil {
			return nil, fmt.Errorf("postgres_grant_repo_scan_failed: %w", err)
		}
		grants = append(grants, grant)
	}

	return grants, rows.Err()
}
