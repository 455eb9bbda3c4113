package comments

import (
	"context"

	"github.com/rivalrockets/rivalrockets/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)

	// List returns one page of all comments, newest first.
	List(ctx context.Context, limit, offset int) ([]*models.Comment, error)

	// ListByMachine returns one page of a machine's comments, oldest
	// first.
	ListByMachine(ctx context.Context, machineID int64, limit, offset int) ([]*models.Comment, error)

	Count(ctx context.Context) (int64, error)
	CountByMachine(ctx context.Context, machineID int64) (int64, error)
}
