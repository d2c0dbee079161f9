package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rajgarments/storefront/internal/config"
	"github.com/rajgarments/storefront/internal/log"
	"github.com/rajgarments/storefront/internal/storage/db"
)

// Usage: rg-migrate [command [args...]]. The command defaults to "up".
func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Printf("error running migrate application: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	command := "up"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	logger.InfoContext(ctx, "running database migration", slog.String("command", command))

	if err := db.Migrate(ctx, pgxPool, command, args...); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	logger.InfoContext(ctx, "database migration completed successfully", slog.String("command", command))

	return nil
}
