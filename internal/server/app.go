// Package server initializes and runs the dashboard backend: it opens the
// database, runs migrations, wires services and the HTTP surface, starts the
// post scheduler, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/socialboard/socialboard/internal/events"
	"github.com/socialboard/socialboard/internal/logging"
	"github.com/socialboard/socialboard/internal/server/config"
	"github.com/socialboard/socialboard/internal/server/httpapi"
	"github.com/socialboard/socialboard/internal/server/repositories/repomanager"
	"github.com/socialboard/socialboard/internal/server/services"
	"github.com/socialboard/socialboard/internal/server/storage"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	publisher events.Publisher
	httpSrv   *http.Server
	scheduler *services.Scheduler
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager()
	if err != nil {
		return nil, fmt.Errorf("repomanager init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		conn, err := events.DialWithRetry(ctx, events.ConnectionOptions{
			URL:           cfg.AMQPURL,
			RetryAttempts: 5,
			Delay:         time.Second,
			Logger:        logger,
		})
		if err != nil {
			return nil, fmt.Errorf("amqp dial error: %w", err)
		}
		publisher, err = events.NewPublisher(conn, cfg.AMQPExchange, logger)
		if err != nil {
			return nil, fmt.Errorf("amqp publisher error: %w", err)
		}
	}

	store := storage.NewS3Store(cfg)

	userSvc := services.NewUserService(db, rm, cfg)
	assetSvc := services.NewAssetService(db, rm, store, publisher, logger, cfg)
	postSvc := services.NewPostService(db, rm)
	campaignSvc := services.NewCampaignService(db, rm)
	accountSvc := services.NewSocialAccountService(db, rm)
	analyticsSvc := services.NewAnalyticsService(db, rm)
	copySvc := services.NewCopywriterService()

	api := httpapi.NewServer(cfg, logger,
		userSvc, assetSvc, postSvc, campaignSvc, accountSvc, analyticsSvc, copySvc)

	httpSrv := &http.Server{
		Addr:              cfg.EndpointAddrHTTP,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler := services.NewScheduler(postSvc, publisher, logger, cfg.SchedulerInterval)

	return &App{
		config:    cfg,
		logger:    logger,
		db:        db,
		publisher: publisher,
		httpSrv:   httpSrv,
		scheduler: scheduler,
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

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.scheduler.Run(ctx)
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.httpSrv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
	}

	wg.Wait()

	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error(ctx, "publisher close error", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
