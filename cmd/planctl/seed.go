package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/nktomer45/planboard/internal/config"
	"github.com/nktomer45/planboard/internal/repository"
	"github.com/nktomer45/planboard/internal/repository/postgres"
	"github.com/nktomer45/planboard/internal/source"
	"github.com/nktomer45/planboard/pkg/logger"
)

func runSeed(c *cli.Context, cfg *config.Config) error {
	dbURL := c.String("db-url")
	if dbURL == "" {
		dbURL = postgres.ConnString(cfg.Database)
	}

	fixture, err := source.NewFixtureSource(c.String("fixture"))
	if err != nil {
		return err
	}

	// Initialize database connection
	raw, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer raw.Close()

	// Test the connection
	if err := raw.PingContext(c.Context); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db := postgres.Wrap(sqlx.NewDb(raw, "pgx"))
	data := fixture.Fixture()

	logger.Log.Info().
		Int("stores", len(data.Stores)).
		Int("skus", len(data.SKUs)).
		Int("units", len(data.Units)).
		Msg("Starting database seeding...")

	err = db.WithTx(c.Context, func(tx *sql.Tx) error {
		repo := repository.NewIngestRepository(tx)
		if err := repo.EnsureSchema(c.Context); err != nil {
			return err
		}
		return seedFixture(c.Context, repo, data)
	})
	if err != nil {
		return err
	}

	logger.Log.Info().Msg("Database seeding completed successfully!")
	return nil
}

func seedFixture(ctx context.Context, repo *repository.IngestRepository, data source.Fixture) error {
	if err := seedEach(ctx, "stores", data.Stores, repo.UpsertStore); err != nil {
		return err
	}
	if err := seedEach(ctx, "skus", data.SKUs, repo.UpsertSKU); err != nil {
		return err
	}
	return seedEach(ctx, "units", data.Units, repo.UpsertUnitEntry)
}

func seedEach[T any](ctx context.Context, table string, items []T, upsert func(context.Context, T) error) error {
	bar := progressbar.Default(int64(len(items)), "seeding "+table)
	for _, item := range items {
		if err := upsert(ctx, item); err != nil {
			return fmt.Errorf("failed to seed %s: %w", table, err)
		}
		_ = bar.Add(1)
	}
	return nil
}
