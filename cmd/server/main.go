package main

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"compintel/server/config"
	"compintel/server/internal/api"
	"compintel/server/internal/history"
	"compintel/server/internal/license"
	"compintel/server/internal/narrative"
	"compintel/server/internal/pipeline"
	"compintel/server/internal/queue"
	"compintel/server/internal/runner"
	"compintel/server/internal/scraping"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := config.LoadRules(cfg.RulesDir); err != nil {
		logger.WithError(err).Fatal("Failed to load rule tables")
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		logger.WithError(err).Fatal("Failed to create data directory")
	}

	dbPath := filepath.Join(cfg.DataDir, "compintel.db")
	logger.Infof("Using history database at: %s", dbPath)
	store, err := history.NewSQLiteStore(dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize history store")
	}

	sources := scraping.NewScriptRunner(logger, "scripts")
	summarizer := narrative.NewService(
		logger,
		cfg.Narrative.APIKey,
		cfg.Narrative.URL,
		time.Duration(cfg.Narrative.TimeoutSeconds)*time.Second,
	)
	licenses := license.NewService(logger)

	pipe := pipeline.New(logger, sources, sources, pipeline.Options{
		Narrative:    summarizer,
		Licenses:     licenses,
		Store:        store,
		CutoffYear:   cfg.PermitCutoffYear,
		SummariesDir: filepath.Join(cfg.DataDir, "summaries"),
	})

	jobQueue := queue.NewReportQueue(cfg.Batch.QueueSize, logger)
	batchRunner := runner.NewBatchRunner(pipe, jobQueue, cfg, logger)
	batchRunner.Start()
	defer func() {
		jobQueue.Close()
		batchRunner.Stop()
	}()

	handler := api.NewHandler(pipe, store, jobQueue, logger)
	router := api.NewRouter(handler)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
