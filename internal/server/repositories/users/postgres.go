package users

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

// userColumns joins the role row so loaded users always carry a
// resolved role for permission checks.
const userColumns = `u.id, u.email, u.username, u.password_hash, u.confirmed,
	u.name, u.location, u.about_me, u.member_since, u.last_seen, u.avatar_hash, u.role_id,
	r.id, r.name, r."default", r.permissions`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, username, password_hash, confirmed, name, location, about_me, avatar_hash, role_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, member_since, last_seen
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Confirmed,
		user.Name, user.Location, user.AboutMe, user.AvatarHash, user.RoleID).
		Scan(&user.ID, &user.MemberSince, &user.LastSeen)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users u
		 JOIN roles r ON r.id = u.role_id
		 WHERE u.id = $1
		 `, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users u
		 JOIN roles r ON r.id = u.role_id
		 WHERE u.email = $1
		 `, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users u
		 JOIN roles r ON r.id = u.role_id
		 WHERE u.username = $1
		 `, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query :=
		`UPDATE users SET password_hash = $2
		 WHERE id = $1
		 `
	return r.exec(ctx, query, id, passwordHash)
}

func (r *PostgresRepository) UpdateEmail(ctx context.Context, id int64, email, avatarHash string) error {
	query :=
		`UPDATE users SET email = $2, avatar_hash = $3
		 WHERE id = $1
		 `
	return r.exec(ctx, query, id, email, avatarHash)
}

func (r *PostgresRepository) SetConfirmed(ctx context.Context, id int64) error {
	query :=
		`UPDATE users SET confirmed = TRUE
		 WHERE id = $1
		 `
	return r.exec(ctx, query, id)
}

func (r *PostgresRepository) Ping(ctx context.Context, id int64) error {
	query :=
		`UPDATE users SET last_seen = now()
		 WHERE id = $1
		 `
	return r.exec(ctx, query, id)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{Role: &models.Role{}}
	var permissions int64

	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.Confirmed,
		&user.Name, &user.Location, &user.AboutMe, &user.MemberSince, &user.LastSeen,
		&user.AvatarHash, &user.RoleID,
		&user.Role.ID, &user.Role.Name, &user.Role.Default, &permissions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Role.Permissions = models.Permission(permissions)
	return user, nil
}
