package role

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/f-students-app/auth-service/internal/platform/database/schema"
	"github.com/f-students-app/auth-service/internal/platform/dberr"
	"github.com/f-students-app/auth-service/pkg/uuid"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListRoles(context context.Context, f Filter, limit, offset int) ([]*Role, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL
	`,
		schema.IAMRole.ID, schema.IAMRole.Code, schema.IAMRole.Name, schema.IAMRole.Description,
		schema.IAMRole.Level, schema.IAMRole.IsSystem, schema.IAMRole.IsActive, schema.IAMRole.CreatedAt, schema.IAMRole.UpdatedAt,
		schema.IAMRole.Table, schema.IAMRole.DeletedAt,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`, schema.IAMRole.Table, schema.IAMRole.DeletedAt)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		query += ` AND (code ILIKE $1 OR name ILIKE $1)`
		countQuery += ` AND (code ILIKE $1 OR name ILIKE $1)`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $", schema.IAMRole.Code) + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_roles")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_roles")
	}
	defer rows.Close()

	roles := make([]*Role, 0)
	for rows.Next() {
		r := &Role{}
		if err := rows.Scan(&r.ID, &r.Code, &r.Name, &r.Description, &r.Level, &r.IsSystem, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_role")
		}
		roles = append(roles, r)
	}

	return roles, total, nil
}

func (repository *PostgresRepository) GetRole(context context.Context, id string) (*Role, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.IAMRole.ID, schema.IAMRole.Code, schema.IAMRole.Name, schema.IAMRole.Description,
		schema.IAMRole.Level, schema.IAMRole.IsSystem, schema.IAMRole.IsActive, schema.IAMRole.CreatedAt, schema.IAMRole.UpdatedAt,
		schema.IAMRole.Table, schema.IAMRole.ID, schema.IAMRole.DeletedAt,
	)

	r := &Role{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&r.ID, &r.Code, &r.Name, &r.Description, &r.Level, &r.IsSystem, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	)

	return r, dberr.Wrap(err, "get_role")
}

func (repository *PostgresRepository) GetRoleByCode(context context.Context, code string) (*Role, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.IAMRole.ID, schema.IAMRole.Code, schema.IAMRole.Name, schema.IAMRole.Description,
		schema.IAMRole.Level, schema.IAMRole.IsSystem, schema.IAMRole.IsActive, schema.IAMRole.CreatedAt, schema.IAMRole.UpdatedAt,
		schema.IAMRole.Table, schema.IAMRole.Code, schema.IAMRole.DeletedAt,
	)

	r := &Role{}
	err := repository.db.QueryRow(context, query, code).Scan(
		&r.ID, &r.Code, &r.Name, &r.Description, &r.Level, &r.IsSystem, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	)

	return r, dberr.Wrap(err, "get_role_by_code")
}

func (repository *PostgresRepository) CreateRole(context context.Context, r *Role) error {
	r.ID = uuid.New()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.IAMRole.Table, schema.IAMRole.ID, schema.IAMRole.Code, schema.IAMRole.Name,
		schema.IAMRole.Description, schema.IAMRole.Level, schema.IAMRole.IsSystem, schema.IAMRole.IsActive,
		schema.IAMRole.CreatedAt, schema.IAMRole.UpdatedAt,
		schema.IAMRole.CreatedAt, schema.IAMRole.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, r.ID, r.Code, r.Name, r.Description, r.Level, r.IsSystem, r.IsActive).
		Scan(&r.CreatedAt, &r.UpdatedAt)
	return dberr.Wrap(err, "create_role")
}

func (repository *PostgresRepository) UpdateRole(context context.Context, r *Role) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.IAMRole.Table, schema.IAMRole.Name, schema.IAMRole.Description, schema.IAMRole.Level, schema.IAMRole.IsActive,
		schema.IAMRole.UpdatedAt, schema.IAMRole.ID, schema.IAMRole.DeletedAt,
		schema.IAMRole.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, r.ID, r.Name, r.Description, r.Level, r.IsActive).Scan(&r.UpdatedAt)
	return dberr.Wrap(err, "update_role")
}

func (repository *PostgresRepository) DeleteRole(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW(), %s = FALSE WHERE %s = $1 AND %s IS NULL`,
		schema.IAMRole.Table, schema.IAMRole.DeletedAt, schema.IAMRole.IsActive,
		schema.IAMRole.ID, schema.IAMRole.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_role")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) UpsertAccess(context context.Context, roleID string, grants []AccessGrant) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
	`,
		schema.IAMModuleAccess.Table, schema.IAMModuleAccess.ID, schema.IAMModuleAccess.RoleID, schema.IAMModuleAccess.ModuleID,
		schema.IAMModuleAccess.CanView, schema.IAMModuleAccess.CanCreate, schema.IAMModuleAccess.CanUpdate, schema.IAMModuleAccess.CanDelete,
		schema.IAMModuleAccess.CanViewAll, schema.IAMModuleAccess.CanDownload, schema.IAMModuleAccess.CanApprove,
		schema.IAMModuleAccess.CreatedAt, schema.IAMModuleAccess.UpdatedAt,
		schema.IAMModuleAccess.RoleID, schema.IAMModuleAccess.ModuleID,
		schema.IAMModuleAccess.CanView, schema.IAMModuleAccess.CanView,
		schema.IAMModuleAccess.CanCreate, schema.IAMModuleAccess.CanCreate,
		schema.IAMModuleAccess.CanUpdate, schema.IAMModuleAccess.CanUpdate,
		schema.IAMModuleAccess.CanDelete, schema.IAMModuleAccess.CanDelete,
		schema.IAMModuleAccess.CanViewAll, schema.IAMModuleAccess.CanViewAll,
		schema.IAMModuleAccess.CanDownload, schema.IAMModuleAccess.CanDownload,
		schema.IAMModuleAccess.CanApprove, schema.IAMModuleAccess.CanApprove,
		schema.IAMModuleAccess.UpdatedAt,
	)

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "upsert_access_begin")
	}
	defer transaction.Rollback(context)

	for _, grant := range grants {
		_, err := transaction.Exec(context, query,
			uuid.New(), roleID, grant.ModuleID,
			grant.CanView, grant.CanCreate, grant.CanUpdate, grant.CanDelete,
			grant.CanViewAll, grant.CanDownload, grant.CanApprove,
		)
		if err != nil {
			return dberr.Wrap(err, "upsert_access")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "upsert_access_commit")
	}
	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
