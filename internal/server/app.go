// Package server wires configuration, storage, the credential service and
// both transports into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/httpapi"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	service *services.CredentialService
}

// NewApp opens the database, applies migrations and builds the credential
// service. On success the App owns the DB handle; Run closes it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.Open(ctx, rm, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	logger.Info(ctx, "Database connected", "driver", rm.DriverName())

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	signer, err := auth.NewSigner([]byte(c.SecretKey), c.TokenValidityDuration)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	svc, err := services.NewCredentialService(db, rm, auth.NewBcryptHasher(c.PasswordHashCost), signer, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{config: c, logger: logger, db: db, service: svc}, nil
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.service)
	if err != nil {
		cancelFunc()
		return err
	}

	if err := s.Run(ctx); err != nil {
		cancelFunc()
		return fmt.Errorf("grpc server: %w", err)
	}
	return nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {

	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.service)

	if err := s.Run(ctx); err != nil {
		cancelFunc()
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Run serves until ctx is cancelled, a termination signal arrives or a
// transport fails. The first transport error is returned.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	report := func(err error) {
		if err != nil {
			app.logger.Error(ctx, err.Error())
			once.Do(func() { firstErr = err })
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		report(app.startGRPCServer(ctx, cancelFunc))
	}()

	if app.config.EndpointAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report(app.startHTTPServer(ctx, cancelFunc))
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		report(fmt.Errorf("db close: %w", err))
	}

	app.logger.Info(context.Background(), "App stopped")
	return firstErr
}
