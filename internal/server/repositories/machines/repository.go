package machines

import (
	"context"

	"github.com/rivalrockets/rivalrockets/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, machine *models.Machine) (*models.Machine, error)
	GetByID(ctx context.Context, id int64) (*models.Machine, error)

	// Update persists every mutable column; merge-patch semantics are
	// applied by the service before calling this.
	Update(ctx context.Context, machine *models.Machine) error

	// List returns one page in insertion order (id ascending).
	List(ctx context.Context, limit, offset int) ([]*models.Machine, error)

	// ListByAuthor returns one page of a user's machines, newest first.
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*models.Machine, error)

	Count(ctx context.Context) (int64, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}
