package revisions

import (
	"context"

	"github.com/rivalrockets/rivalrockets/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, revision *models.Revision) (*models.Revision, error)
	GetByID(ctx context.Context, id int64) (*models.Revision, error)
	Update(ctx context.Context, revision *models.Revision) error

	// List returns one page in insertion order (id ascending).
	List(ctx context.Context, limit, offset int) ([]*models.Revision, error)

	// ListByMachine returns one page of a machine's revisions, oldest
	// first.
	ListByMachine(ctx context.Context, machineID int64, limit, offset int) ([]*models.Revision, error)

	Count(ctx context.Context) (int64, error)
	CountByMachine(ctx context.Context, machineID int64) (int64, error)
}
