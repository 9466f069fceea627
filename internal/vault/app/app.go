package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/credvault/internal/vault/http"
	"github.com/aussiebroadwan/credvault/internal/vault/service"
	"github.com/aussiebroadwan/credvault/internal/vault/store"
	"github.com/aussiebroadwan/credvault/internal/vault/store/drivers/sqlite"
	"github.com/aussiebroadwan/credvault/pkg/cryptox"
	"github.com/aussiebroadwan/credvault/pkg/otpx"
	"github.com/aussiebroadwan/credvault/pkg/slogx"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application holds the vault server and its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db   store.Store
	keys *Keys
	otp  *otpx.Engine

	authService    *service.AuthService
	mfaService     *service.MFAService
	accountService *service.AccountService
	groupService   *service.GroupService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "credvault",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	keys, err := InitKeys(cfg)
	if err != nil {
		return nil, err
	}
	app.keys = keys

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.otp = otpx.New()
	app.otp.Skew = cfg.TOTPSkew

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Logger returns the application logger.
func (app *Application) Logger() *slog.Logger { return app.logger }

// AuthService exposes operator management to the command line.
func (app *Application) AuthService() *service.AuthService { return app.authService }

// Run starts the server and blocks until a shutdown signal or server error.
func (app *Application) Run() error {
	app.logger.Info("vault starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down vault...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	return app.Close()
}

// Close releases the database without touching the HTTP server. Commands
// that never call Run use it directly.
func (app *Application) Close() error {
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	app.logger.Info("vault stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() error {
	loc, err := time.LoadLocation(app.cfg.ExportTZ)
	if err != nil {
		return fmt.Errorf("failed to load export time zone: %w", err)
	}

	app.authService = &service.AuthService{
		Store:    app.db,
		Cipher:   app.keys.Cipher,
		Hasher:   cryptox.Hasher{Pepper: app.keys.Pepper},
		OTP:      app.otp,
		Signer:   app.keys.Signer,
		Issuer:   app.cfg.Issuer,
		Audience: []string{app.cfg.Issuer},
		TTL:      app.cfg.SessionTTL,
	}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		Cipher: app.keys.Cipher,
		OTP:    app.otp,
		Issuer: app.cfg.Issuer,
	}
	app.accountService = &service.AccountService{
		Store:    app.db,
		Codec:    &service.AccountCodec{Cipher: app.keys.Cipher, Logger: app.logger},
		OTP:      app.otp,
		Exporter: service.Exporter{Location: loc},
	}
	app.groupService = &service.GroupService{Store: app.db}

	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.Verifier,
		app.keys.Cipher,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.SecureCookies = app.cfg.SecureCookies
	router.AuthService = app.authService
	router.MFAService = app.mfaService
	router.AccountService = app.accountService
	router.GroupService = app.groupService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
