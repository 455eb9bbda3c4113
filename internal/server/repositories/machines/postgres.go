package machines

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

const machineColumns = `id, system_name, system_notes, system_notes_html, timestamp, owner, author_id, active_revision_id`

func (r *PostgresRepository) Create(ctx context.Context, machine *models.Machine) (*models.Machine, error) {

	query :=
		`INSERT INTO machines (system_name, system_notes, system_notes_html, owner, author_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, timestamp
		 `

	err := r.db.QueryRowContext(ctx, query,
		machine.SystemName, machine.SystemNotes, machine.SystemNotesHTML,
		machine.Owner, machine.AuthorID).Scan(&machine.ID, &machine.Timestamp)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return machine, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Machine, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM machines
		 WHERE id = $1
		 `, machineColumns)

	machine, err := scanMachine(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return machine, nil
}

func (r *PostgresRepository) Update(ctx context.Context, machine *models.Machine) error {
	query :=
		`UPDATE machines
		 SET system_name = $2, system_notes = $3, system_notes_html = $4, owner = $5, active_revision_id = $6
		 WHERE id = $1
		 `

	var activeRevision sql.NullInt64
	if machine.ActiveRevisionID != nil {
		activeRevision = sql.NullInt64{Int64: *machine.ActiveRevisionID, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query,
		machine.ID, machine.SystemName, machine.SystemNotes, machine.SystemNotesHTML,
		machine.Owner, activeRevision)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*models.Machine, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM machines
		 ORDER BY id
		 LIMIT $1 OFFSET $2
		 `, machineColumns)
	return r.list(ctx, query, limit, offset)
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*models.Machine, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM machines
		 WHERE author_id = $1
		 ORDER BY timestamp DESC
		 LIMIT $2 OFFSET $3
		 `, machineColumns)
	return r.list(ctx, query, authorID, limit, offset)
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM machines`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM machines WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Machine, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	machines := []*models.Machine{}
	for rows.Next() {
		machine, err := scanMachine(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		machines = append(machines, machine)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return machines, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMachine(row scanner) (*models.Machine, error) {
	machine := &models.Machine{}
	var activeRevision sql.NullInt64

	err := row.Scan(&machine.ID, &machine.SystemName, &machine.SystemNotes,
		&machine.SystemNotesHTML, &machine.Timestamp, &machine.Owner,
		&machine.AuthorID, &activeRevision)
	if err != nil {
		return nil, err
	}

	if activeRevision.Valid {
		machine.ActiveRevisionID = &activeRevision.Int64
	}
	return machine, nil
}
