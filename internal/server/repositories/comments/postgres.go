package comments

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

const commentColumns = `id, body, body_html, timestamp, disabled, author_id, machine_id`

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {

	query :=
		`INSERT INTO comments (body, body_html, disabled, author_id, machine_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, timestamp
		 `

	err := r.db.QueryRowContext(ctx, query,
		comment.Body, comment.BodyHTML, comment.Disabled,
		comment.AuthorID, comment.MachineID).Scan(&comment.ID, &comment.Timestamp)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM comments
		 WHERE id = $1
		 `, commentColumns)

	comment := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.Body, &comment.BodyHTML, &comment.Timestamp,
		&comment.Disabled, &comment.AuthorID, &comment.MachineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return comment, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*models.Comment, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM comments
		 ORDER BY timestamp DESC
		 LIMIT $1 OFFSET $2
		 `, commentColumns)
	return r.list(ctx, query, limit, offset)
}

func (r *PostgresRepository) ListByMachine(ctx context.Context, machineID int64, limit, offset int) ([]*models.Comment, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM comments
		 WHERE machine_id = $1
		 ORDER BY timestamp ASC
		 LIMIT $2 OFFSET $3
		 `, commentColumns)
	return r.list(ctx, query, machineID, limit, offset)
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) CountByMachine(ctx context.Context, machineID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE machine_id = $1`, machineID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment := &models.Comment{}
		err := rows.Scan(&comment.ID, &comment.Body, &comment.BodyHTML,
			&comment.Timestamp, &comment.Disabled, &comment.AuthorID, &comment.MachineID)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return comments, nil
}
