package services

import (
	"context"
	"database/sql"

	"github.com/rivalrockets/rivalrockets/internal/common"
	"github.com/rivalrockets/rivalrockets/internal/server/config"
	"github.com/rivalrockets/rivalrockets/internal/server/models"
	"github.com/rivalrockets/rivalrockets/internal/server/repositories/repomanager"
)

// CommentService provides comment listing and creation.
type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	perPage     int
}

func NewCommentService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *CommentService {
	return &CommentService{db: db, repomanager: m, perPage: cfg.CommentsPerPage}
}

func (s *CommentService) PerPage() int { return s.perPage }

// List returns one page of all comments, newest first, plus the total
// count.
func (s *CommentService) List(ctx context.Context, page int) ([]*models.Comment, int64, error) {
	repo := s.repomanager.Comments(s.db)
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

// ListByMachine returns one page of a machine's comments, oldest
// first. The machine must exist.
func (s *CommentService) ListByMachine(ctx context.Context, machineID int64, page int) ([]*models.Comment, int64, error) {
	if _, err := s.repomanager.Machines(s.db).GetByID(ctx, machineID); err != nil {
		return nil, 0, err
	}
	repo := s.repomanager.Comments(s.db)
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

func (s *CommentService) Get(ctx context.Context, id int64) (*models.Comment, error) {
	return s.repomanager.Comments(s.db).GetByID(ctx, id)
}

// Create posts a comment on an existing machine. Requires the Comment
// permission; the body is rendered to sanitized HTML by the
// constructor.
func (s *CommentService) Create(ctx context.Context, user *models.User, machineID int64, in models.CommentInput) (*models.Comment, error) {
	if !user.Can(models.PermissionComment) {
		return nil, common.ErrorForbidden
	}
	if _, err := s.repomanager.Machines(s.db).GetByID(ctx, machineID); err != nil {
		return nil, err
	}
	comment, err := models.NewCommentFromRequest(in)
	if err != nil {
		return nil, err
	}
	comment.AuthorID = user.ID
	comment.MachineID = machineID
	return s.repomanager.Comments(s.db).Create(ctx, comment)
}
