package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kovalyov-valentin/atomfeed/internal/clock"
	"github.com/kovalyov-valentin/atomfeed/internal/collector"
	"github.com/kovalyov-valentin/atomfeed/internal/config"
	"github.com/kovalyov-valentin/atomfeed/internal/logging"
	"github.com/kovalyov-valentin/atomfeed/internal/model"
	"github.com/kovalyov-valentin/atomfeed/internal/publisher"
	"github.com/kovalyov-valentin/atomfeed/internal/source"
	"github.com/kovalyov-valentin/atomfeed/internal/storage"
	_ "github.com/lib/pq"
	flag "github.com/spf13/pflag"
)

func main() {
	var (
		configFiles = flag.StringArrayP("config", "c", nil, "extra hcl config file (repeatable)")
		output      = flag.StringP("output", "o", "", "output path, - for stdout (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configFiles...)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.Output = *output
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	// Пакеты, которые пишут через стандартный log, тоже идут через фильтр
	log.SetOutput(logger.Writer())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Println("[INFO] stopped")
			return
		}

		logger.Printf("[ERROR] failed to publish feed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	clk := clock.FromEpoch(cfg.SourceDateEpoch, time.Local)

	feed, err := buildFeed(cfg)
	if err != nil {
		return err
	}

	var sources []collector.Source

	if cfg.EntriesFile != "" {
		sources = append(sources, source.NewManifestSource(cfg.EntriesFile, source.NewRenderer(cfg.SanitizeHTML)))
	}

	if cfg.DatabaseDSN != "" {
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		sources = append(sources, storage.NewEntryPostgresStorage(db, clk, cfg.MaxEntries))
	}

	if len(sources) == 0 {
		logger.Println("[WARN] no entries_file or database_dsn configured, feed will be empty")
	}

	entries, err := collector.New(sources, cfg.FilterKeywords, cfg.MaxEntries).Collect(ctx)
	if err != nil {
		return err
	}

	pub := publisher.New(
		publisher.WithClock(clk),
		publisher.WithLogger(logger),
	)

	if cfg.Output == "-" {
		return pub.WriteFeed(feed, entries, os.Stdout)
	}

	if err := pub.WriteFile(feed, entries, cfg.Output); err != nil {
		return err
	}

	logger.Printf("[INFO] wrote %d entries to %s", len(entries), cfg.Output)
	return nil
}

// Незаполненные в конфиге поля не передаем в билдер,
// чтобы он сам сообщил, какого поля не хватает
func buildFeed(cfg config.Config) (model.Feed, error) {
	b := model.NewFeedBuilder()

	setIf(cfg.FeedID, func(v string) { b.ID(v) })
	setIf(cfg.FeedTitle, func(v string) { b.Title(v) })
	setIf(cfg.HomeURL, func(v string) { b.HomeURL(v) })
	setIf(cfg.FeedURL, func(v string) { b.FeedURL(v) })
	setIf(cfg.Author, func(v string) { b.Author(v) })
	setIf(cfg.Email, func(v string) { b.Email(v) })

	if cfg.Updated != "" {
		updated, err := time.Parse(time.RFC3339, cfg.Updated)
		if err != nil {
			return model.Feed{}, fmt.Errorf("updated: %w", err)
		}
		b.DateUpdated(updated)
	}

	return b.Build()
}

func setIf(value string, set func(string)) {
	if value != "" {
		set(value)
	}
}
