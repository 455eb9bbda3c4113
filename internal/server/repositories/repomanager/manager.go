package repomanager

import (
	"context"
	"database/sql"

	"github.com/rivalrockets/rivalrockets/internal/dbx"
	"github.com/rivalrockets/rivalrockets/internal/server/repositories/comments"
	"github.com/rivalrockets/rivalrockets/internal/server/repositories/machines"
	"github.com/rivalrockets/rivalrockets/internal/server/repositories/revisions"
	"github.com/rivalrockets/rivalrockets/internal/server/repositories/roles"
	"github.com/rivalrockets/rivalrockets/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX,
// so services can run the same repository code inside and outside a
// transaction.
type RepositoryManager interface {
	Roles(db dbx.DBTX) roles.Repository
	Users(db dbx.DBTX) users.Repository
	Machines(db dbx.DBTX) machines.Repository
	Revisions(db dbx.DBTX) revisions.Repository
	Comments(db dbx.DBTX) comments.Repository

	// RunMigrations applies the embedded schema migrations.
	RunMigrations(ctx context.Context, db *sql.DB) error
}
