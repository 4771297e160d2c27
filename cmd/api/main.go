package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appanalysis "github.com/arqlabs/marketscope/internal/application/analysis"
	"github.com/arqlabs/marketscope/internal/config"
	domai "github.com/arqlabs/marketscope/internal/domain/ai"
	domain "github.com/arqlabs/marketscope/internal/domain/analysis"
	"github.com/arqlabs/marketscope/internal/infra/ai/deepseek"
	mysqlp "github.com/arqlabs/marketscope/internal/infra/db/mysql"
	postgresp "github.com/arqlabs/marketscope/internal/infra/db/postgres"
	"github.com/arqlabs/marketscope/internal/infra/httpserver"
	minioStore "github.com/arqlabs/marketscope/internal/infra/storage"
	"github.com/arqlabs/marketscope/internal/logger"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.WithError(err).Fatal("config load error")
	}

	ctx := context.Background()

	// connect store; the service keeps running without persistence
	var repo domain.Repository
	if cfg.DatabaseConfigured() {
		switch cfg.Database.Driver {
		case "mysql":
			db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
			if err != nil {
				logger.WithError(err).Warn("mysql connect error, running without persistence")
			} else {
				defer db.Close()
				repo = mysqlp.NewAnalysisRepository(db)
			}
		default:
			db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
			if err != nil {
				logger.WithError(err).Warn("postgres connect error, running without persistence")
			} else {
				defer db.Close()
				repo = postgresp.NewAnalysisRepository(db)
			}
		}
	} else {
		logger.Logger.Warn("no database configured, running without persistence")
	}

	// raw-reply archive is optional
	var archive domain.Archive
	if cfg.MinioConfigured() {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			logger.WithError(err).Warn("minio init error, running without reply archive")
		} else {
			archive = store
		}
	}

	// model client; nil forces the deterministic fallback path
	var aiClient domai.Client
	if cfg.DeepSeekConfigured() {
		aiClient = deepseek.NewClient(cfg.DeepSeek.APIKey, cfg.DeepSeek.BaseURL, cfg.DeepSeek.Model)
	} else {
		logger.Logger.Warn("DEEPSEEK_API_KEY not configured, analyses will use the fallback generator")
	}

	svc := &appanalysis.Service{
		Repo:    repo,
		AI:      aiClient,
		Archive: archive,
		Clock:   appanalysis.SystemClock{},
	}

	handler := httpserver.NewRouter(svc, repo, httpserver.ComponentStatus{
		DeepSeekConfigured: cfg.DeepSeekConfigured(),
		DatabaseConfigured: repo != nil,
		ArchiveConfigured:  archive != nil,
	}, cfg.CORS.Origins)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logger.WithField("addr", addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.WithError(err).Error("shutdown error")
	}
}
