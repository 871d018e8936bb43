package module

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) ListModules(context context.Context, f Filter) ([]*Module, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL
	`,
		schema.IAMModule.ID, schema.IAMModule.Code, schema.IAMModule.Name, schema.IAMModule.ParentID,
		schema.IAMModule.SortOrder, schema.IAMModule.IsActive, schema.IAMModule.CreatedAt, schema.IAMModule.UpdatedAt,
		schema.IAMModule.Table, schema.IAMModule.DeletedAt,
	)

	if !f.IncludeInactive {
		query += fmt.Sprintf(` AND %s = TRUE`, schema.IAMModule.IsActive)
	}

	query += fmt.Sprintf(` ORDER BY %s ASC, %s ASC`, schema.IAMModule.SortOrder, schema.IAMModule.Code)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_modules")
	}
	defer rows.Close()

	modules := make([]*Module, 0)
	for rows.Next() {
		m := &Module{}
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.ParentID, &m.SortOrder, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_module")
		}
		modules = append(modules, m)
	}

	return modules, nil
}

func (repository *PostgresRepository) GetModule(context context.Context, id string) (*Module, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.IAMModule.ID, schema.IAMModule.Code, schema.IAMModule.Name, schema.IAMModule.ParentID,
		schema.IAMModule.SortOrder, schema.IAMModule.IsActive, schema.IAMModule.CreatedAt, schema.IAMModule.UpdatedAt,
		schema.IAMModule.Table, schema.IAMModule.ID, schema.IAMModule.DeletedAt,
	)

	m := &Module{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&m.ID, &m.Code, &m.Name, &m.ParentID, &m.SortOrder, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)

	return m, dberr.Wrap(err, "get_module")
}

func (repository *PostgresRepository) GetModuleByCode(context context.Context, code string) (*Module, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.IAMModule.ID, schema.IAMModule.Code, schema.IAMModule.Name, schema.IAMModule.ParentID,
		schema.IAMModule.SortOrder, schema.IAMModule.IsActive, schema.IAMModule.CreatedAt, schema.IAMModule.UpdatedAt,
		schema.IAMModule.Table, schema.IAMModule.Code, schema.IAMModule.DeletedAt,
	)

	m := &Module{}
	err := repository.db.QueryRow(context, query, code).Scan(
		&m.ID, &m.Code, &m.Name, &m.ParentID, &m.SortOrder, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)

	return m, dberr.Wrap(err, "get_module_by_code")
}

func (repository *PostgresRepository) CreateModule(context context.Context, m *Module) error {
	m.ID = uuid.New()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.IAMModule.Table, schema.IAMModule.ID, schema.IAMModule.Code, schema.IAMModule.Name,
		schema.IAMModule.ParentID, schema.IAMModule.SortOrder, schema.IAMModule.IsActive,
		schema.IAMModule.CreatedAt, schema.IAMModule.UpdatedAt,
		schema.IAMModule.CreatedAt, schema.IAMModule.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, m.ID, m.Code, m.Name, m.ParentID, m.SortOrder, m.IsActive).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	return dberr.Wrap(err, "create_module")
}

func (repository *PostgresRepository) UpdateModule(context context.Context, m *Module) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.IAMModule.Table, schema.IAMModule.Name, schema.IAMModule.ParentID, schema.IAMModule.SortOrder,
		schema.IAMModule.IsActive, schema.IAMModule.UpdatedAt, schema.IAMModule.ID, schema.IAMModule.DeletedAt,
		schema.IAMModule.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, m.ID, m.Name, m.ParentID, m.SortOrder, m.IsActive).Scan(&m.UpdatedAt)
	return dberr.Wrap(err, "update_module")
}

func (repository *PostgresRepository) DeleteModule(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW(), %s = FALSE WHERE %s = $1 AND %s IS NULL`,
		schema.IAMModule.Table, schema.IAMModule.DeletedAt, schema.IAMModule.IsActive,
		schema.IAMModule.ID, schema.IAMModule.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_module")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
