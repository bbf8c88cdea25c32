// Command i18n-extract collects messages from Go packages and HTML templates
// and merges them into per-locale JSON catalogs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	i18n "github.com/goliatone/go-i18n-icu"
	"github.com/goliatone/go-i18n-icu/internal/telemetry"
	"github.com/goliatone/go-i18n-icu/source/goast"
	"github.com/goliatone/go-i18n-icu/source/markup"
)

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		reportError(err)
	}
	setupLogging(cfg.Log.Level, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		stop()
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "i18n-extract: %v\n", err)
	os.Exit(1)
}

func run(ctx context.Context, cfg extractConfig, out io.Writer) error {
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()
	started := time.Now()

	prev, err := i18n.ReadCatalog(cfg.CatalogDir, cfg.Locales)
	if err != nil {
		return err
	}

	units, err := sourceUnits(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info().Int("units", len(units)).Msg("Extracting messages")

	var opts []i18n.CollectorOption
	opts = append(opts, i18n.WithCollectLimit(cfg.Concurrency))
	if cfg.metrics != "" {
		telemetry.ConfigureTelemetry()
		opts = append(opts, i18n.WithCollectObserver(telemetry.Observer{}))
	}

	result, err := i18n.NewCollector(opts...).Collect(ctx, units...)
	if err != nil {
		return err
	}
	for _, extractErr := range result.Errors {
		logger.Error().Err(extractErr).Msg("Invalid messages skipped")
	}

	merged := i18n.Merge(prev, result.Catalog, cfg.SourceLocale, i18n.MergeOptions{
		Overwrite:      cfg.overwrite,
		FollowDefaults: cfg.FollowDefaults,
	})

	if cfg.diff {
		if err := writeDiff(out, prev, merged, cfg.clean); err != nil {
			return err
		}
	}

	if err := i18n.WriteCatalog(cfg.CatalogDir, merged, i18n.WriteOptions{Clean: cfg.clean}); err != nil {
		return err
	}

	stats := merged.Stats()
	if err := writeStats(out, stats, merged.Locales(), cfg.SourceLocale); err != nil {
		return err
	}

	if cfg.metrics != "" {
		telemetry.RecordStats(stats)
		telemetry.RecordRun(runID, time.Now())
		if err := telemetry.WriteTextfile(cfg.metrics); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	logger.Info().
		Int("messages", len(result.Catalog)).
		Dur("elapsed", time.Since(started)).
		Msg("Catalogs written")

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d source units had invalid messages", len(result.Errors))
	}
	return nil
}

func sourceUnits(ctx context.Context, cfg extractConfig) ([]i18n.Unit, error) {
	var units []i18n.Unit

	if len(cfg.Go.Patterns) > 0 {
		dir := cfg.Go.Dir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			dir = wd
		}
		pkgs, err := goast.Load(ctx, goast.Config{Dir: dir, Tests: cfg.Go.Tests}, cfg.Go.Patterns...)
		if err != nil {
			return nil, err
		}
		units = append(units, pkgs...)
	}

	if len(cfg.Markup.Globs) > 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		files, err := markup.Glob(markup.Config{Dir: wd, Root: cfg.Markup.Root}, cfg.Markup.Globs...)
		if err != nil {
			return nil, err
		}
		units = append(units, files...)
	}

	if len(units) == 0 {
		return nil, errors.New("nothing to extract: configure Go patterns or markup globs")
	}
	return units, nil
}
