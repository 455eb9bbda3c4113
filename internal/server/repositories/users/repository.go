package users

import (
	"context"

	"github.com/rivalrockets/rivalrockets/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateEmail(ctx context.Context, id int64, email, avatarHash string) error
	SetConfirmed(ctx context.Context, id int64) error

	// Ping refreshes the user's last_seen timestamp.
	Ping(ctx context.Context, id int64) error
}
