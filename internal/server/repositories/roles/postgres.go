package roles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rivalrockets/rivalrockets/internal/common"
	"github.com/rivalrockets/rivalrockets/internal/dbx"
	"github.com/rivalrockets/rivalrockets/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, role *models.Role) error {

	query :=
		`INSERT INTO roles (name, "default", permissions)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE
		 SET "default" = EXCLUDED."default", permissions = EXCLUDED.permissions
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		role.Name, role.Default, int64(role.Permissions)).Scan(&role.ID)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	query :=
		`SELECT id, name, "default", permissions FROM roles
		 WHERE id = $1
		 `
	return r.scanRole(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	query :=
		`SELECT id, name, "default", permissions FROM roles
		 WHERE name = $1
		 `
	return r.scanRole(r.db.QueryRowContext(ctx, query, name))
}

func (r *PostgresRepository) GetDefault(ctx context.Context) (*models.Role, error) {
	query :=
		`SELECT id, name, "default", permissions FROM roles
		 WHERE "default" = TRUE
		 `
	return r.scanRole(r.db.QueryRowContext(ctx, query))
}

func (r *PostgresRepository) GetByPermissions(ctx context.Context, p models.Permission) (*models.Role, error) {
	query :=
		`SELECT id, name, "default", permissions FROM roles
		 WHERE permissions = $1
		 `
	return r.scanRole(r.db.QueryRowContext(ctx, query, int64(p)))
}

func (r *PostgresRepository) scanRole(row *sql.Row) (*models.Role, error) {
	role := &models.Role{}
	var permissions int64

	err := row.Scan(&role.ID, &role.Name, &role.Default, &permissions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	role.Permissions = models.Permission(permissions)
	return role, nil
}
