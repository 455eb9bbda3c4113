package services

import (
	"context"
	"database/sql"

	"github.com/rivalrockets/rivalrockets/internal/common"
	"github.com/rivalrockets/rivalrockets/internal/server/config"
	"github.com/rivalrockets/rivalrockets/internal/server/models"
	"github.com/rivalrockets/rivalrockets/internal/server/repositories/repomanager"
)

// RevisionService provides revision listing and gated mutations.
type RevisionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	perPage     int
}

func NewRevisionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *RevisionService {
	return &RevisionService{db: db, repomanager: m, perPage: cfg.RevisionsPerPage}
}

func (s *RevisionService) PerPage() int { return s.perPage }

// List returns one page of all revisions in insertion order plus the
// total count.
func (s *RevisionService) List(ctx context.Context, page int) ([]*models.Revision, int64, error) {
	repo := s.repomanager.Revisions(s.db)
	items, err := repo.List(ctx, s.perPage, pageOffset(page, s.perPage))
	if err != nil {
		return nil, 0, err
	}
	count, err := repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

// ListByMachine returns one page of a machine's revisions, oldest
// first. The machine must exist.
func (s *RevisionService) ListByMachine(ctx context.Context, machineID int64, page int) ([]*models.Revision, int64, error) {
	if _, err := s.repomanager.Machines(s.db).GetByID(ctx, machineID); err != nil {
		return nil, 0, err
	}
	repo := s.repomanager.Revisions(s.db)
	items, err := repo.ListByMachine(ctx, machineID, s.perPage, pageOffset(page, s.perPage))
	if err != nil {
		return nil, 0, err
	}
	count, err := repo.CountByMachine(ctx, machineID)
	if err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (s *RevisionService) Get(ctx context.Context, id int64) (*models.Revision, error) {
	return s.repomanager.Revisions(s.db).GetByID(ctx, id)
}

// Create attaches a new revision to an existing machine. Requires the
// CreateMachineData permission; a missing parent machine is a
// not-found error.
func (s *RevisionService) Create(ctx context.Context, user *models.User, machineID int64, in models.RevisionInput) (*models.Revision, error) {
	if !user.Can(models.PermissionCreateMachineData) {
		return nil, common.ErrorForbidden
	}
	if _, err := s.repomanager.Machines(s.db).GetByID(ctx, machineID); err != nil {
		return nil, err
	}
	revision, err := models.NewRevisionFromRequest(in)
	if err != nil {
		return nil, err
	}
	revision.AuthorID = user.ID
	revision.MachineID = machineID
	return s.repomanager.Revisions(s.db).Create(ctx, revision)
}

// Update merge-patches a revision. Only the author or an
// administrator may edit.
func (s *RevisionService) Update(ctx context.Context, user *models.User, id int64, patch models.RevisionPatch) (*models.Revision, error) {
	if !user.Can(models.PermissionCreateMachineData) {
		return nil, common.ErrorForbidden
	}
	repo := s.repomanager.Revisions(s.db)
	revision, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if revision.AuthorID != user.ID && !user.IsAdministrator() {
		return nil, common.ErrorForbidden
	}
	if err := patch.Apply(revision); err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, revision); err != nil {
		return nil, err
	}
	return revision, nil
}
