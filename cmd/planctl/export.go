package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/nktomer45/planboard/internal/config"
	"github.com/nktomer45/planboard/internal/planning"
	"github.com/nktomer45/planboard/internal/service"
	"github.com/nktomer45/planboard/internal/source"
	"github.com/nktomer45/planboard/internal/storage"
	"github.com/nktomer45/planboard/pkg/logger"
)

func runCalendar(c *cli.Context, cfg *config.Config) error {
	calendar := planning.BuildCalendarN(cfg.Planning.Months, cfg.Planning.WeeksPerMonth)

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWEEK\tMONTH")
	for _, week := range calendar {
		fmt.Fprintf(w, "%s\t%s\t%s\n", week.ID, week.Week, week.Month)
	}
	return w.Flush()
}

func runExport(c *cli.Context, cfg *config.Config) error {
	ctx := c.Context

	opened, err := source.Open(ctx, cfg, c.String("source"))
	if err != nil {
		return err
	}
	defer opened.Close()

	var objectStore storage.ObjectStorage = storage.Disabled()
	if c.Bool("publish") {
		objectStore, err = storage.New(ctx, cfg.Storage)
		if err != nil {
			return err
		}
	}

	calendar := planning.BuildCalendarN(cfg.Planning.Months, cfg.Planning.WeeksPerMonth)
	svc := service.NewPlanningService(opened.Source, calendar, objectStore, service.PlanningOptions{
		FillMissingWeeks: c.Bool("fill-missing"),
		StoragePrefix:    cfg.Storage.Prefix,
	})

	result, err := svc.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("failed to load planning data: %w", err)
	}

	format := c.String("format")
	if c.Bool("publish") {
		info, err := svc.Publish(ctx, format)
		if err != nil {
			return err
		}
		logger.Log.Info().Str("key", info.Key).Int64("bytes", info.Size).Msg("Export published")
		return nil
	}

	var buf bytes.Buffer
	if err := svc.Export(&buf, format, nil); err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		out = service.ExportFileName(format, time.Now())
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	logger.Log.Info().
		Str("file", out).
		Str("source", result.Source).
		Int("rows", result.Rows).
		Msg("Export written")
	return nil
}

func runDownload(c *cli.Context, cfg *config.Config) error {
	objectStore, err := storage.New(c.Context, cfg.Storage)
	if err != nil {
		return err
	}

	key := c.String("key")
	out := c.String("out")
	if out == "" {
		out = filepath.Base(key)
	}

	if err := objectStore.DownloadObject(c.Context, key, out); err != nil {
		return err
	}

	logger.Log.Info().Str("key", key).Str("file", out).Msg("Export downloaded")
	return nil
}

func runInvalidate(c *cli.Context, cfg *config.Config) error {
	opened, err := source.Open(c.Context, cfg, c.String("source"))
	if err != nil {
		return err
	}
	defer opened.Close()

	if err := opened.Source.Invalidate(c.Context); err != nil {
		return err
	}

	logger.Log.Info().Str("source", opened.Source.Name()).Msg("Source cache invalidated")
	return nil
}
