package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"customer-service/internal/config"
	"customer-service/internal/db"
	"customer-service/internal/importer"
	"customer-service/internal/logger"
	customerrepo "customer-service/internal/repository/customer"
	customersvc "customer-service/internal/service/customer"
	"go.uber.org/zap"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to customer CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cfg.LogOutput})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log = log.Named("importer")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{Logger: log})
	if err != nil {
		log.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	repo, err := customerrepo.Open(cfg.DBDriver, pool, log, cfg.GormLogLevel)
	if err != nil {
		log.Fatal("init customer repository", zap.Error(err))
	}
	svc := customersvc.New(repo, log)
	imp := importer.NewCSVImporter(f, svc)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatal("import failed", zap.Int("imported", count), zap.Error(err))
	}

	log.Info("import finished",
		zap.String("file", filePath),
		zap.Int("imported", count),
		zap.Duration("took", time.Since(start).Truncate(time.Millisecond)),
	)
}
