// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/insightd"
	"github.com/poiesic/insightd/ai"
	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/ingest"
	"github.com/poiesic/insightd/queue"
	"github.com/poiesic/insightd/reembed"
	"github.com/poiesic/insightd/search"
)

func main() {
	app := &cli.App{
		Name:   "insightd",
		Usage:  "Document-to-insight pipeline for project dashboards",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "worker",
				Usage:  "Run the extraction worker until interrupted",
				Action: workerCommand,
				Flags: append(aiFlags(),
					dbFlag(),
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of documents processed concurrently",
					},
					&cli.DurationFlag{
						Name:  "poll-interval",
						Usage: "How often an idle worker checks the queue",
						Value: 5 * time.Second,
					},
					&cli.DurationFlag{
						Name:  "stale-timeout",
						Usage: "Reclaim items stuck in processing longer than this",
						Value: 30 * time.Minute,
					},
				),
			},
			{
				Name:   "ingest",
				Usage:  "Ingest a document from a file",
				Action: ingestCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the document text",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Document title (defaults to the file name)",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Origin of the document",
						Value: "upload",
					},
				},
			},
			{
				Name:   "search",
				Usage:  "Search document chunks semantically",
				Action: searchCommand,
				Flags: append(aiFlags(),
					dbFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: search.DefaultLimit,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum similarity, exclusive",
						Value: search.DefaultThreshold,
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Show processing queue statistics",
				Action: statsCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:    "backfill",
				Aliases: []string{"enqueue-backfill"},
				Usage:   "Classify and enqueue documents missed by ingestion",
				Action: backfillCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:   "reset-failed",
				Usage:  "Move failed queue items back to pending",
				Action: resetFailedCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:   "cleanup",
				Usage:  "Delete completed queue items past the retention window",
				Action: cleanupCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "days",
						Usage: "Retention window in days",
						Value: 30,
					},
				},
			},
			{
				Name:   "reclaim",
				Usage:  "Return items stuck in processing to pending",
				Action: reclaimCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Items in processing longer than this are reclaimed",
						Value: 30 * time.Minute,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Re-embed all stored chunks with new embeddings",
				Action: reembedCommand,
				Flags: append(aiFlags(),
					dbFlag(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to process in each batch",
						Value: reembed.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for embedding calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:      "reprocess",
				Usage:     "Delete a document's insights and enqueue it again",
				ArgsUsage: "<document-id>",
				Action:    reprocessCommand,
				Flags:     []cli.Flag{dbFlag()},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func aiFlags() []cli.Flag {
	defaults := ai.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: defaults.EmbeddingHost,
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: defaults.EmbeddingModel,
		},
		&cli.StringFlag{
			Name:  "extractor-host",
			Usage: "Insight extraction service host URL",
			Value: defaults.ExtractorHost,
		},
		&cli.StringFlag{
			Name:  "extractor-model",
			Usage: "Insight extraction model name",
			Value: defaults.ExtractorModel,
		},
		&cli.Float64Flag{
			Name:  "min-confidence",
			Usage: "Drop extracted insights below this confidence",
			Value: float64(defaults.MinConfidence),
		},
	}
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithExtractorHost(c.String("extractor-host")),
		ai.WithExtractorModel(c.String("extractor-model")),
		ai.WithMinConfidence(float32(c.Float64("min-confidence"))),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func openDatabase(c *cli.Context, opts ...insightd.DatabaseOption) (*insightd.Database, error) {
	db, err := insightd.NewDatabase(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func workerCommand(c *cli.Context) error {
	config, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c, insightd.WithAIConfig(config))
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, err := db.NewQueueService()
	if err != nil {
		return err
	}

	var workerOpts []queue.WorkerOption
	if c.Int("pool-size") > 0 {
		workerOpts = append(workerOpts, queue.WithPoolSize(c.Int("pool-size")))
	}
	workerOpts = append(workerOpts, queue.WithPollInterval(c.Duration("poll-interval")))

	worker, err := db.NewWorker(ctx, workerOpts...)
	if err != nil {
		return err
	}
	defer worker.Release()

	// Sweep orphaned claims from a previous crash, then keep sweeping
	// alongside the poll loop.
	staleTimeout := c.Duration("stale-timeout")
	if _, err := service.ReclaimStale(ctx, staleTimeout); err != nil {
		return err
	}
	go func() {
		ticker := time.NewTicker(staleTimeout)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := service.ReclaimStale(ctx, staleTimeout); err != nil {
					slog.Error("error reclaiming stale items", "err", err)
				} else if n > 0 {
					slog.Warn("reclaimed stale queue items", "count", n)
				}
			}
		}
	}()

	slog.Info("worker started", "db", c.String("db"), "pollInterval", c.Duration("poll-interval"))
	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	slog.Info("worker stopped")
	return nil
}

func ingestCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	path := c.String("file")
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	title := c.String("title")
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), ".txt")
	}

	pipeline, err := db.NewIngestPipeline()
	if err != nil {
		return err
	}

	doc, err := pipeline.Ingest(c.Context, title, string(content), &ingest.IngestOptions{
		Source: c.String("source"),
	})
	if err != nil {
		pipeline.Release()
		return fmt.Errorf("ingestion failed: %w", err)
	}

	// Release waits implicitly: give the async enqueue a chance to land
	// before the process exits.
	time.Sleep(100 * time.Millisecond)
	pipeline.Release()

	fmt.Printf("Ingested document %d (%s)\n", doc.Id, categoryName(doc.Category))
	return nil
}

// categoryName returns the lowercase display name of a document category.
func categoryName(c core.DocumentCategory) string {
	switch c {
	case core.CategoryMeeting:
		return "meeting"
	case core.CategoryOther:
		return "other"
	default:
		return "unknown"
	}
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	config, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c, insightd.WithAIConfig(config))
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	results, err := searcher.SearchText(c.Context, query, &search.Options{
		Threshold: float32(c.Float64("threshold")),
		Limit:     c.Int("limit"),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		date := "unknown date"
		if !hit.Document.OccurredAt.IsZero() {
			date = hit.Document.OccurredAt.Format("2006-01-02")
		}
		fmt.Printf("%d: [%0.3f] %s (%s)\n", i, hit.Similarity, hit.Document.Title, date)
		fmt.Printf("   %s\n", firstLine(hit.Chunk.Content))
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	service, err := db.NewQueueService()
	if err != nil {
		return err
	}

	stats, err := service.Stats(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("Pending:    %d\n", stats.Pending)
	fmt.Printf("Processing: %d\n", stats.Processing)
	fmt.Printf("Completed:  %d\n", stats.Completed)
	fmt.Printf("Failed:     %d\n", stats.Failed)
	fmt.Printf("Total:      %d\n", stats.Total)
	if stats.OldestPendingAge > 0 {
		fmt.Printf("Oldest pending: %s\n", stats.OldestPendingAge.Round(time.Second))
	}
	return nil
}

func backfillCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	service, err := db.NewQueueService()
	if err != nil {
		return err
	}

	count, err := service.Backfill(c.Context)
	if err != nil {
		return err
	}
	fmt.Printf("Enqueued %d documents\n", count)
	return nil
}

func resetFailedCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	service, err := db.NewQueueService()
	if err != nil {
		return err
	}

	count, err := service.ResetFailed(c.Context)
	if err != nil {
		return err
	}
	fmt.Printf("Reset %d failed items\n", count)
	return nil
}

func cleanupCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	service, err := db.NewQueueService()
	if err != nil {
		return err
	}

	count, err := service.CleanupCompleted(c.Context, c.Int("days"))
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d completed items\n", count)
	return nil
}

func reclaimCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	service, err := db.NewQueueService()
	if err != nil {
		return err
	}

	count, err := service.ReclaimStale(c.Context, c.Duration("timeout"))
	if err != nil {
		return err
	}
	fmt.Printf("Reclaimed %d stale items\n", count)
	return nil
}

func reembedCommand(c *cli.Context) error {
	config, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c, insightd.WithAIConfig(config))
	if err != nil {
		return err
	}
	defer db.Close()

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder, err := db.NewReembedder(reembedConfig, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", config.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(c.Context); err != nil {
		return fmt.Errorf("re-embedding failed: %w", err)
	}
	return nil
}

func reprocessCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("a document ID is required")
	}
	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document ID: %w", err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	service, err := db.NewQueueService()
	if err != nil {
		return err
	}

	enqueued, err := service.ForceReprocess(c.Context, core.ID(id))
	if err != nil {
		return err
	}
	if !enqueued {
		return fmt.Errorf("document %d could not be enqueued", id)
	}
	fmt.Printf("Document %d enqueued for reprocessing\n", id)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
