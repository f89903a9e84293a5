package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/alarm"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/api"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/app"
	iauth "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/auth"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/database"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/live"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("amateurs-server", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var configPath string
	fs.StringVar(&configPath, "config", "", "Path to configuration directory or file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadApplicationConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := app.ConfigureLogging(cfg.Server); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logger.Sync() // best effort

	log := logger.WithModule("bootstrap")

	db, err := database.Open(cfg.Database.DatabaseOpenConfig())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer closeDatabase(db, log)

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	jwtService, err := iauth.NewJWTService(iauth.JWTConfig{
		Secret: cfg.Auth.JWT.Secret,
		Issuer: cfg.Auth.JWT.Issuer,
		TTL:    cfg.Auth.JWT.TTL,
	})
	if err != nil {
		return fmt.Errorf("initialise jwt service: %w", err)
	}

	liveReg := live.NewRegistry(live.WithWriteTimeout(cfg.Alarm.WriteTimeout))

	commentProc, err := alarm.NewCommentProcessor(db)
	if err != nil {
		return fmt.Errorf("initialise comment processor: %w", err)
	}
	dmProc, err := alarm.NewDirectMessageProcessor(db)
	if err != nil {
		return fmt.Errorf("initialise direct message processor: %w", err)
	}
	registry, err := alarm.NewRegistry(commentProc, dmProc)
	if err != nil {
		return fmt.Errorf("build alarm registry: %w", err)
	}
	// Missing processors are a deployment mistake; refuse to start.
	if err := registry.Validate(alarm.AllEventTypes()...); err != nil {
		return fmt.Errorf("validate alarm registry: %w", err)
	}

	store, err := alarm.NewStore(db)
	if err != nil {
		return fmt.Errorf("build alarm store: %w", err)
	}
	pipeline, err := alarm.NewPipeline(registry, store, liveReg)
	if err != nil {
		return fmt.Errorf("build alarm pipeline: %w", err)
	}

	keeper, err := live.NewKeeper(liveReg, live.WithSchedule(cfg.Alarm.HeartbeatSchedule))
	if err != nil {
		return fmt.Errorf("build heartbeat keeper: %w", err)
	}
	if err := keeper.Start(); err != nil {
		return fmt.Errorf("start heartbeat keeper: %w", err)
	}
	defer keeper.Stop()

	router, err := api.NewRouter(db, jwtService, liveReg, pipeline, cfg)
	if err != nil {
		return fmt.Errorf("build api router: %w", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErrs error
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		shutdownErrs = multierr.Append(shutdownErrs, fmt.Errorf("graceful shutdown: %w", err))
	}

	if err, ok := <-serverErr; ok && err != nil {
		shutdownErrs = multierr.Append(shutdownErrs, fmt.Errorf("server error: %w", err))
	}

	if shutdownErrs != nil {
		return shutdownErrs
	}

	log.Info("server stopped gracefully")
	return nil
}

func loadApplicationConfig(path string) (*app.Config, error) {
	switch {
	case strings.TrimSpace(path) == "":
		return app.LoadConfig()
	default:
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				return app.LoadConfig(path)
			}
			return app.LoadConfig(filepath.Dir(path))
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config path %q does not exist", path)
		}
		return nil, fmt.Errorf("stat config path: %w", err)
	}
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("obtain sql db for close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("close database", zap.Error(err))
	}
}
