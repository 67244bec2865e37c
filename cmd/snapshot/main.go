package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"habit-tracker/internal/backup"
	"habit-tracker/internal/config"
	"habit-tracker/internal/repository/sqlite"
	"habit-tracker/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Bucket == "" {
		logger.Fatalf("storage bucket is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	store, err := storage.DialS3(ctx, storage.S3Options{
		Region:   cfg.Storage.Region,
		Endpoint: cfg.Storage.Endpoint,
		Profile:  cfg.AWS.Profile,
	})
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)

	snapshotter := backup.NewSnapshotter(db, store, backup.Config{
		Bucket:    cfg.Storage.Bucket,
		KeyPrefix: cfg.Storage.KeyPrefix,
		Logger:    logger,
	})

	location, err := snapshotter.Snapshot(ctx)
	if err != nil {
		logger.Fatalf("snapshot: %v", err)
	}

	snapshots, err := snapshotter.List(ctx)
	if err != nil {
		logger.Warnf("list snapshots: %v", err)
		return
	}
	logger.WithField("count", len(snapshots)).Infof("stored %s", location)
}
