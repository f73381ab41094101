// Command smoke runs a create/read/update/delete round trip against a live
// customer service and exits non-zero on the first unexpected answer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"customer-service/internal/client"
	"customer-service/internal/config"
	"customer-service/internal/domain"
	"customer-service/internal/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	baseURL := flag.String("url", cfg.APIBaseURL, "Base URL of the customer service")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cfg.LogOutput})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log = log.Named("smoke").With(zap.String("url", *baseURL))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, client.New(*baseURL), log); err != nil {
		log.Fatal("smoke test failed", zap.Error(err))
	}
	log.Info("smoke test passed")
}

func run(ctx context.Context, cl *client.Client, log *zap.Logger) error {
	id, err := cl.Create(ctx, domain.Customer{
		Firstname: "Alice",
		Address:   domain.Address{City: "Springfield"},
	})
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	log.Info("created", zap.Int64("customer_id", id))

	got, err := cl.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}
	if got.Firstname != "Alice" || got.Address.City != "Springfield" {
		return fmt.Errorf("get: unexpected customer %+v", got)
	}

	newName := "Alicia"
	updated, err := cl.Update(ctx, id, domain.CustomerPatch{Firstname: &newName})
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if updated.Firstname != newName || updated.Address.City != "Springfield" {
		return fmt.Errorf("update: unexpected customer %+v", updated)
	}
	log.Info("updated", zap.Int64("customer_id", id))

	if err := cl.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if _, err := cl.Get(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get after delete: want not found, got %v", err)
	}
	log.Info("deleted", zap.Int64("customer_id", id))
	return nil
}
