package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundrypro-backend/config"
	"laundrypro-backend/controllers"
	"laundrypro-backend/masker"
	"laundrypro-backend/routes"
	"laundrypro-backend/services"
	"laundrypro-backend/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	seed := flag.Bool("seed", false, "wipe all tables, load demo data and exit")
	flag.Parse()

	cfg, loaded, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if !loaded {
		logger.Info("no .env file found, using environment variables", zap.String("path", *envFile))
	}
	if err := masker.LogConfigs(logger, cfg); err != nil {
		logger.Fatal("error logging configs", zap.Error(err))
	}

	if err := run(cfg, logger, *seed); err != nil {
		logger.Fatal("laundry backend stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger, seed bool) error {
	db, err := config.ConnectDB(cfg.DBConfig)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	audit, err := services.NewAuditLog(cfg.AuditLogPath)
	if err != nil {
		return err
	}
	defer audit.Close()

	notifier, err := services.NewNotifier(cfg.NotifierConfig, logger)
	if err != nil {
		return err
	}

	svc := services.NewLaundryService(st, notifier, audit, logger, services.Options{
		ReadyMessage:    cfg.ReadyMessage,
		ReminderMessage: cfg.ReminderConfig.Message,
		PhoneCacheTTL:   cfg.PhoneCache,
	})

	if seed {
		if err := svc.Seed(ctx); err != nil {
			return err
		}
		logger.Info("demo data loaded")
		return nil
	}

	if cfg.Schedule != "" {
		reminders := services.NewReminderScheduler(svc, cfg.Schedule, logger)
		if err := reminders.Start(); err != nil {
			return fmt.Errorf("start reminders: %w", err)
		}
		defer func() { <-reminders.Stop().Done() }()
	}

	gin.SetMode(gin.ReleaseMode)
	r := routes.SetupRouter(controllers.NewHandler(svc, logger), cfg.ServerConfig, logger)
	for _, route := range r.Routes() {
		logger.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
