package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/carelinkhq/carebundle/internal/bundling"
	"github.com/carelinkhq/carebundle/internal/bundling/cost"
	"github.com/carelinkhq/carebundle/internal/bundling/template"
	"github.com/carelinkhq/carebundle/internal/cache"
	"github.com/carelinkhq/carebundle/internal/config"
	v1 "github.com/carelinkhq/carebundle/internal/handler/v1"
	"github.com/carelinkhq/carebundle/internal/repository"
	"github.com/carelinkhq/carebundle/internal/service"
	"github.com/carelinkhq/carebundle/pkg/database"
	"github.com/carelinkhq/carebundle/pkg/logger"
	"github.com/carelinkhq/carebundle/pkg/metrics"
	"github.com/carelinkhq/carebundle/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("service exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	collector := metrics.NewCollector("carebundle")

	poolDone := make(chan struct{})
	defer close(poolDone)
	go samplePoolStats(db, collector, poolDone)

	var store cache.ProfileCache
	switch cfg.Cache.Backend {
	case "redis":
		client := cache.NewRedisClient(cfg.Cache)
		if err := client.Ping(context.Background()).Err(); err != nil {
			return err
		}
		store = cache.NewRedisCache(client, cfg.Cache.TTL)
		log.Info("profile cache backend: redis", zap.String("addr", cfg.Cache.RedisAddr))
	default:
		store = cache.NewMemoryCache()
		log.Info("profile cache backend: memory")
	}

	patientRepo := repository.NewPatientRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	familyRepo := repository.NewFamilyInputRepository(db)

	profileSvc := service.NewProfileService(
		patientRepo, assessmentRepo, referralRepo, familyRepo,
		store, collector, log, cfg.Bundling, cfg.Cache.SingleFlight,
	)
	generator := bundling.NewGenerator(template.NewStaticResolver(), cost.NewAnnotator())
	scenarioSvc := service.NewScenarioService(profileSvc, generator, collector, log, cfg.Bundling)
	patientSvc := service.NewPatientService(patientRepo, log)
	recordSvc := service.NewRecordService(assessmentRepo, referralRepo, familyRepo, profileSvc, collector, log)

	router := v1.NewRouter(cfg, log, collector,
		v1.NewProfileHandler(profileSvc),
		v1.NewScenarioHandler(scenarioSvc),
		v1.NewRecordHandler(patientSvc, recordSvc),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.App.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}

	log.Info("server stopped")
	return nil
}

// samplePoolStats feeds the connection pool gauge every 15s until done closes.
func samplePoolStats(db *gorm.DB, collector *metrics.Collector, done <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if sqlDB, err := db.DB(); err == nil {
				collector.DBConnections.Set(float64(sqlDB.Stats().OpenConnections))
			}
		}
	}
}
