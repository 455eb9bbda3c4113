// Package server wires the application together: configuration,
// logging, database, migrations, role seeding, and the HTTP server
// with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rivalrockets/rivalrockets/internal/logging"
	"github.com/rivalrockets/rivalrockets/internal/server/config"
	"github.com/rivalrockets/rivalrockets/internal/server/httpapi"
	"github.com/rivalrockets/rivalrockets/internal/server/repositories/repomanager"
	"github.com/rivalrockets/rivalrockets/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.API
	users  *services.UserService
	rm     repomanager.RepositoryManager
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	userService := services.NewUserService(db, rm, cfg)
	machineService := services.NewMachineService(db, rm, cfg)
	revisionService := services.NewRevisionService(db, rm, cfg)
	commentService := services.NewCommentService(db, rm, cfg)

	api := httpapi.NewAPI(cfg, logger,
		userService, machineService, revisionService, commentService)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		api:    api,
		users:  userService,
		rm:     rm,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run migrates the schema, seeds the roles, and serves HTTP until the
// context is cancelled or a shutdown signal arrives.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	app.logger.Info(ctx, "running migrations")
	if err := app.rm.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if err := app.users.SeedRoles(ctx); err != nil {
		return fmt.Errorf("role seeding error: %w", err)
	}

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.api.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	if err := app.db.Close(); err != nil {
		return fmt.Errorf("db close error: %w", err)
	}

	app.logger.Info(context.Background(), "server stopped")
	return nil
}
