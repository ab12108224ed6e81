// Command medidesk-server serves the dashboard JSON API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/and161185/medidesk/internal/authz"
	"github.com/and161185/medidesk/internal/config"
	"github.com/and161185/medidesk/internal/limiter"
	"github.com/and161185/medidesk/internal/migrate"
	"github.com/and161185/medidesk/internal/repository/postgres"
	httpserver "github.com/and161185/medidesk/internal/server/http"
	"github.com/and161185/medidesk/internal/service"
	"github.com/and161185/medidesk/internal/session"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and serves HTTP until SIGINT/SIGTERM.
func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	logger := newLogger(cfg.Dev)
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		logger.Fatal("postgres", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	productRepo := postgres.NewUserProductRepo(db)
	numberRepo := postgres.NewNumberRepo(db)
	ticketRepo := postgres.NewTicketRepo(db)
	noteRepo := postgres.NewNotificationRepo(db)
	settingsRepo := postgres.NewSettingsRepo(db)

	lim := limiter.NewPG(db.Pool, cfg.LoginWindow, cfg.LoginMaxFails, cfg.LoginBlockFor)
	sessions := session.NewManager([]byte(cfg.AuthSecret), cfg.SessionTTL, cfg.CookieSecure)
	guard := authz.NewGuard(productRepo, numberRepo)

	router := httpserver.NewRouter(httpserver.Deps{
		Log:           logger,
		Sessions:      sessions,
		Auth:          service.NewAuthService(userRepo, sessions, lim),
		Users:         service.NewUserService(userRepo),
		Products:      service.NewProductService(productRepo, guard),
		Numbers:       service.NewNumberService(numberRepo, guard),
		Tickets:       service.NewTicketService(ticketRepo, noteRepo),
		Notifications: service.NewNotificationService(noteRepo),
		Settings:      service.NewSettingsService(settingsRepo, guard),
		Ready:         db,
	})

	srv := httpserver.NewServer(cfg.Addr, router, logger, cfg.ShutdownTimeout)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func newLogger(dev bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}
