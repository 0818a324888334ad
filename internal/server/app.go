// Package server initializes and runs the application server: it opens
// the record store, applies migrations, picks the session cache backend
// and serves HTTP until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"motoreg/internal/logging"
	"motoreg/internal/server/config"
	"motoreg/internal/server/repositories/repomanager"
	"motoreg/internal/server/services"
	"motoreg/internal/server/sessions"
	"motoreg/internal/server/web"
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	db                *sql.DB
	userService       *services.UserService
	motorcycleService *services.MotorcycleService
	sessionStore      sessions.Store
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	var store sessions.Store
	if c.RedisAddr != "" {
		rs := sessions.NewRedisStore(c.RedisAddr)
		if err := rs.Ping(context.Background()); err != nil {
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		store = rs
	} else {
		store = sessions.NewMemoryStore()
	}

	us := services.NewUserService(db, m, c)
	ms := services.NewMotorcycleService(db, m)

	return &App{
		config:            c,
		logger:            logger,
		db:                db,
		userService:       us,
		motorcycleService: ms,
		sessionStore:      store,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := web.NewServer(app.config.EndpointAddrHTTP, app.logger,
		app.userService, app.motorcycleService, app.sessionStore, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
