package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"agriflow/config"
	"agriflow/logger"
	"agriflow/models"
	"agriflow/pipeline"
)

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	configPath := flag.String("config", "config/config.yml", "Path to configuration file")
	item := flag.String("item", "", "Commodity name to query")
	region := flag.String("region", "", "Optional region filter")
	timeout := flag.Duration("timeout", 15*time.Second, "Overall query timeout")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		os.Exit(1)
	}

	if *item == "" {
		log.Error("an -item to query is required")
		os.Exit(1)
	}

	log.WithFields(logger.Fields{
		"service": cfg.Agriflow.Name,
		"version": cfg.Agriflow.Version,
	}).Info("starting agriflow")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutdown signal received")
		cancel()
	}()

	if cfg.Metrics.CloudWatch {
		logger.InitCloudWatch(cfg.Metrics.Region, cfg.Metrics.Namespace, cfg.Metrics.Namespace)
	}
	if strings.ToLower(cfg.Logging.Level) == "report" {
		logger.StartReport(ctx, log, 30*time.Second)
	}

	engine, err := pipeline.New(cfg)
	if err != nil {
		log.WithError(err).Error("failed to build engine")
		os.Exit(1)
	}

	queryCtx, queryCancel := context.WithTimeout(ctx, *timeout)
	defer queryCancel()

	result := engine.Run(queryCtx, models.Query{ProductName: *item, Region: *region})

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.WithError(err).Error("failed to encode result")
		os.Exit(1)
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}
