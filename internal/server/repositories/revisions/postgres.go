package revisions

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

const revisionColumns = `id, cpu_make, cpu_name, cpu_socket, cpu_mhz, cpu_proc_cores, chipset,
	system_memory_mb, system_memory_mhz, gpu_name, gpu_make, gpu_memory_mb,
	revision_notes, revision_notes_html, pcpartpicker_url, timestamp, author_id, machine_id`

func (r *PostgresRepository) Create(ctx context.Context, revision *models.Revision) (*models.Revision, error) {

	query :=
		`INSERT INTO revisions (cpu_make, cpu_name, cpu_socket, cpu_mhz, cpu_proc_cores, chipset,
		     system_memory_mb, system_memory_mhz, gpu_name, gpu_make, gpu_memory_mb,
		     revision_notes, revision_notes_html, pcpartpicker_url, author_id, machine_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id, timestamp
		 `

	err := r.db.QueryRowContext(ctx, query,
		revision.CPUMake, revision.CPUName, revision.CPUSocket, revision.CPUMhz,
		revision.CPUProcCores, revision.Chipset, revision.SystemMemoryMB,
		revision.SystemMemoryMhz, revision.GPUName, revision.GPUMake,
		revision.GPUMemoryMB, revision.RevisionNotes, revision.RevisionNotesHTML,
		revision.PCPartPickerURL, revision.AuthorID, revision.MachineID).
		Scan(&revision.ID, &revision.Timestamp)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return revision, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Revision, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM revisions
		 WHERE id = $1
		 `, revisionColumns)

	revision, err := scanRevision(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return revision, nil
}

func (r *PostgresRepository) Update(ctx context.Context, revision *models.Revision) error {
	query :=
		`UPDATE revisions
		 SET cpu_make = $2, cpu_name = $3, cpu_socket = $4, cpu_mhz = $5, cpu_proc_cores = $6,
		     chipset = $7, system_memory_mb = $8, system_memory_mhz = $9, gpu_name = $10,
		     gpu_make = $11, gpu_memory_mb = $12, revision_notes = $13,
		     revision_notes_html = $14, pcpartpicker_url = $15
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		revision.ID, revision.CPUMake, revision.CPUName, revision.CPUSocket,
		revision.CPUMhz, revision.CPUProcCores, revision.Chipset,
		revision.SystemMemoryMB, revision.SystemMemoryMhz, revision.GPUName,
		revision.GPUMake, revision.GPUMemoryMB, revision.RevisionNotes,
		revision.RevisionNotesHTML, revision.PCPartPickerURL)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*models.Revision, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM revisions
		 ORDER BY id
		 LIMIT $1 OFFSET $2
		 `, revisionColumns)
	return r.list(ctx, query, limit, offset)
}

func (r *PostgresRepository) ListByMachine(ctx context.Context, machineID int64, limit, offset int) ([]*models.Revision, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM revisions
		 WHERE machine_id = $1
		 ORDER BY timestamp ASC
		 LIMIT $2 OFFSET $3
		 `, revisionColumns)
	return r.list(ctx, query, machineID, limit, offset)
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM revisions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) CountByMachine(ctx context.Context, machineID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM revisions WHERE machine_id = $1`, machineID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Revision, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	revisions := []*models.Revision{}
	for rows.Next() {
		revision, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		revisions = append(revisions, revision)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return revisions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRevision(row scanner) (*models.Revision, error) {
	revision := &models.Revision{}
	err := row.Scan(&revision.ID, &revision.CPUMake, &revision.CPUName,
		&revision.CPUSocket, &revision.CPUMhz, &revision.CPUProcCores,
		&revision.Chipset, &revision.SystemMemoryMB, &revision.SystemMemoryMhz,
		&revision.GPUName, &revision.GPUMake, &revision.GPUMemoryMB,
		&revision.RevisionNotes, &revision.RevisionNotesHTML,
		&revision.PCPartPickerURL, &revision.Timestamp, &revision.AuthorID,
		&revision.MachineID)
	if err != nil {
		return nil, err
	}
	return revision, nil
}
