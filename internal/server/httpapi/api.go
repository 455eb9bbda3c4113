// Package httpapi exposes the service layer as a versioned REST/JSON
// API. Routing and middleware are built on gin; every handler resolves
// errors through a single mapping onto the taxonomy in internal/common.
package httpapi

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rivalrockets/rivalrockets/internal/logging"
	"github.com/rivalrockets/rivalrockets/internal/server/config"
	"github.com/rivalrockets/rivalrockets/internal/server/models"
	"github.com/rivalrockets/rivalrockets/internal/server/services"
)

// BasePath is the version prefix all routes live under.
const BasePath = "/api/v1"

type userService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	IssueAuthToken(user *models.User, validity time.Duration) (string, time.Duration, error)
	UserFromToken(ctx context.Context, token string) (*models.User, error)
	ConfirmUser(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangeEmail(ctx context.Context, token string) error
	Get(ctx context.Context, id int64) (*models.User, int64, error)
}

type machineService interface {
	List(ctx context.Context, page int) ([]*models.Machine, int64, error)
	ListByUser(ctx context.Context, userID int64, page int) ([]*models.Machine, int64, error)
	Get(ctx context.Context, id int64) (*models.Machine, int64, int64, error)
	Counts(ctx context.Context, id int64) (int64, int64, error)
	Create(ctx context.Context, user *models.User, in models.MachineInput) (*models.Machine, error)
	Update(ctx context.Context, user *models.User, id int64, patch models.MachinePatch) (*models.Machine, error)
	PerPage() int
}

type revisionService interface {
	List(ctx context.Context, page int) ([]*models.Revision, int64, error)
	ListByMachine(ctx context.Context, machineID int64, page int) ([]*models.Revision, int64, error)
	Get(ctx context.Context, id int64) (*models.Revision, error)
	Create(ctx context.Context, user *models.User, machineID int64, in models.RevisionInput) (*models.Revision, error)
	Update(ctx context.Context, user *models.User, id int64, patch models.RevisionPatch) (*models.Revision, error)
	PerPage() int
}

type commentService interface {
	List(ctx context.Context, page int) ([]*models.Comment, int64, error)
	ListByMachine(ctx context.Context, machineID int64, page int) ([]*models.Comment, int64, error)
	Get(ctx context.Context, id int64) (*models.Comment, error)
	Create(ctx context.Context, user *models.User, machineID int64, in models.CommentInput) (*models.Comment, error)
	PerPage() int
}

// API holds the handler dependencies and builds the gin router.
type API struct {
	logger       logging.Logger
	urls         *models.URLBuilder
	externalBase string
	users        userService
	machines     machineService
	revisions    revisionService
	comments     commentService
}

func NewAPI(cfg *config.Config, logger logging.Logger,
	users userService, machines machineService,
	revisions revisionService, comments commentService) *API {
	return &API{
		logger:       logger,
		urls:         models.NewURLBuilder(cfg.ExternalBaseURL + BasePath),
		externalBase: cfg.ExternalBaseURL,
		users:        users,
		machines:     machines,
		revisions:    revisions,
		comments:     comments,
	}
}

// Router assembles the full route table.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), a.requestID(), a.requestLog(), a.authenticate())

	v1 := r.Group(BasePath)

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", a.register)
	authGroup.POST("/token", a.issueToken)
	authGroup.POST("/confirm", a.confirm)
	authGroup.POST("/reset", a.resetPassword)
	authGroup.POST("/change-email", a.changeEmail)

	v1.GET("/users/:id", a.getUser)
	v1.GET("/users/:id/machines/", a.listUserMachines)

	v1.GET("/machines/", a.listMachines)
	v1.GET("/machines/:id", a.getMachine)
	v1.POST("/machines/", a.requireUser(), a.createMachine)
	v1.PUT("/machines/:id", a.requireUser(), a.updateMachine)

	v1.GET("/machines/:id/revisions/", a.listMachineRevisions)
	v1.POST("/machines/:id/revisions/", a.requireUser(), a.createRevision)
	v1.GET("/revisions/", a.listRevisions)
	v1.GET("/revisions/:id", a.getRevision)
	v1.PUT("/revisions/:id", a.requireUser(), a.updateRevision)

	v1.GET("/machines/:id/comments/", a.listMachineComments)
	v1.POST("/machines/:id/comments/", a.requireUser(), a.createComment)
	v1.GET("/comments/", a.listComments)
	v1.GET("/comments/:id", a.getComment)

	return r
}
