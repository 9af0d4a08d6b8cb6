package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/config"
	"github.com/mamadbah2/feedlot/internal/repository/memory"
	"github.com/mamadbah2/feedlot/internal/repository/mongodb"
	"github.com/mamadbah2/feedlot/internal/repository/sheets"
	"github.com/mamadbah2/feedlot/internal/scheduler"
	"github.com/mamadbah2/feedlot/internal/server/handlers"
	"github.com/mamadbah2/feedlot/internal/server/router"
	penssvc "github.com/mamadbah2/feedlot/internal/service/pens"
	unitssvc "github.com/mamadbah2/feedlot/internal/service/units"
	"github.com/mamadbah2/feedlot/pkg/clients/feeder"
	"github.com/mamadbah2/feedlot/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	penStore := memory.NewPenStore()
	unitStore := memory.NewUnitStore(penStore)
	if cfg.Metrics.SeedSampleData {
		pens := penStore.Seed()
		unitStore.Seed(pens)
		baseLogger.Info("sample data seeded", zap.Int("pens", len(pens)))
	}

	// Optional snapshot backends; the scheduler skips whichever is nil.
	var archiveRepo mongodb.Repository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archiveRepo = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, snapshot archive disabled")
	}

	var exportRepo sheets.Repository
	if cfg.Sheets.CredentialsPath != "" {
		exportRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	} else {
		baseLogger.Warn("sheets credentials missing, snapshot export disabled")
	}

	pensSvc := penssvc.NewService(penStore, cfg.Metrics.FeedCostPerKg, baseLogger.Named("svc.pens"))
	unitsSvc := unitssvc.NewService(unitStore, baseLogger.Named("svc.units"))

	penHandler := handlers.NewPenHandler(pensSvc, baseLogger.Named("handlers.pens"))
	metricsHandler := handlers.NewMetricsHandler(pensSvc, baseLogger.Named("handlers.metrics"))
	unitHandler := handlers.NewUnitHandler(unitsSvc, baseLogger.Named("handlers.units"))
	engine := router.New(penHandler, metricsHandler, unitHandler, baseLogger.Named("router"))

	feederClient := feeder.NewClient()
	sched := scheduler.NewScheduler(*cfg, pensSvc, unitsSvc, archiveRepo, exportRepo, feederClient, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
