package services

import (
	"context"
	"database/sql"

	"github.com/rivalrockets/rivalrockets/internal/common"
	"github.com/rivalrockets/rivalrockets/internal/server/config"
	"github.com/rivalrockets/rivalrockets/internal/server/models"
	"github.com/rivalrockets/rivalrockets/internal/server/repositories/repomanager"
)

// MachineService provides machine listing and gated mutations.
type MachineService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	perPage     int
}

func NewMachineService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *MachineService {
	return &MachineService{db: db, repomanager: m, perPage: cfg.MachinesPerPage}
}

// PerPage exposes the configured page size so the HTTP layer can build
// prev/next links.
func (s *MachineService) PerPage() int { return s.perPage }

// List returns one page of machines in insertion order plus the total
// count. Pages past the end come back empty, not as an error.
func (s *MachineService) List(ctx context.Context, page int) ([]*models.Machine, int64, error) {
	repo := s.repomanager.Machines(s.db)
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

// ListByUser returns one page of a user's machines, newest first. The
// user must exist.
func (s *MachineService) ListByUser(ctx context.Context, userID int64, page int) ([]*models.Machine, int64, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	repo := s.repomanager.Machines(s.db)
	items, err := repo.ListByAuthor(ctx, userID, s.perPage, pageOffset(page, s.perPage))
	if err != nil {
		return nil, 0, err
	}
	count, err := repo.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

// Get returns one machine together with its revision and comment
// counts for the projection.
func (s *MachineService) Get(ctx context.Context, id int64) (*models.Machine, int64, int64, error) {
	machine, err := s.repomanager.Machines(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, 0, 0, err
	}
	revCount, comCount, err := s.Counts(ctx, id)
	if err != nil {
		return nil, 0, 0, err
	}
	return machine, revCount, comCount, nil
}

// Counts returns the revision and comment counts for one machine,
// used when projecting list pages.
func (s *MachineService) Counts(ctx context.Context, id int64) (int64, int64, error) {
	revCount, err := s.repomanager.Revisions(s.db).CountByMachine(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	comCount, err := s.repomanager.Comments(s.db).CountByMachine(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	return revCount, comCount, nil
}

// Create registers a machine authored by the given user. Requires the
// CreateMachineData permission.
func (s *MachineService) Create(ctx context.Context, user *models.User, in models.MachineInput) (*models.Machine, error) {
	if !user.Can(models.PermissionCreateMachineData) {
		return nil, common.ErrorForbidden
	}
	machine, err := models.NewMachineFromRequest(in)
	if err != nil {
		return nil, err
	}
	machine.AuthorID = user.ID
	return s.repomanager.Machines(s.db).Create(ctx, machine)
}

// Update merge-patches a machine. Only the author or an administrator
// may edit, and both still need the CreateMachineData permission.
// Fields absent from the patch keep their current values.
func (s *MachineService) Update(ctx context.Context, user *models.User, id int64, patch models.MachinePatch) (*models.Machine, error) {
	if !user.Can(models.PermissionCreateMachineData) {
		return nil, common.ErrorForbidden
	}
	repo := s.repomanager.Machines(s.db)
	machine, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if machine.AuthorID != user.ID && !user.IsAdministrator() {
		return nil, common.ErrorForbidden
	}
	if err := patch.Apply(machine); err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

// pageOffset converts a 1-based page number into a LIMIT/OFFSET
// offset. Pages below 1 clamp to the first page.
func pageOffset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
