package roles

import (
	"context"

	"github.com/rivalrockets/rivalrockets/internal/server/models"
)

type Repository interface {
	// Upsert inserts the role or, when a role with the same name
	// exists, updates its default flag and permission mask. The
	// role's ID is populated either way, making seeding idempotent.
	Upsert(ctx context.Context, role *models.Role) error

	GetByID(ctx context.Context, id int64) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)

	// GetDefault returns the role flagged as the default for new users.
	GetDefault(ctx context.Context) (*models.Role, error)

	// GetByPermissions returns the first role carrying exactly the
	// given mask (used to find the Administrator role by 0xFF).
	GetByPermissions(ctx context.Context, p models.Permission) (*models.Role, error)
}
