package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"worldacross/internal/adapters/observability"
	redisad "worldacross/internal/adapters/redis"
	"worldacross/internal/adapters/remote"
	"worldacross/internal/app"
	"worldacross/internal/domain"
	"worldacross/internal/shared"
	"worldacross/internal/storage/memory"
	mysqlrepo "worldacross/internal/storage/mysql"
)

type options struct {
	source  string
	workers int
	migrate bool
}

func main() {
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	opts := options{workers: cfg.SeedWorkers}
	root := &cobra.Command{
		Use:   "seeder",
		Short: "Load the travel catalog into MySQL",
		Long: `Reads destinations, packages and memberships from the embedded dataset
(--source static) or an upstream catalog service (--source remote), upserts
them into MySQL and evicts the matching cache entries.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, opts)
		},
	}
	root.Flags().StringVar(&opts.source, "source", "static", "where records come from: static|remote")
	root.Flags().IntVar(&opts.workers, "workers", opts.workers, "concurrent upserts")
	root.Flags().BoolVar(&opts.migrate, "migrate", true, "create tables before seeding")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("seeding failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg shared.Config, opts options) error {
	if opts.workers <= 0 {
		return fmt.Errorf("--workers must be positive, got %d", opts.workers)
	}
	log.Info().
		Str("source", opts.source).
		Int("workers", opts.workers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()
	repo := mysqlrepo.New(db)
	if err := repo.Ping(ctx); err != nil {
		return fmt.Errorf("db.Ping: %w", err)
	}
	log.Info().Msg("db ping ok")

	if opts.migrate {
		if err := repo.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}
	seeder := app.NewSeedService(repo, cache)

	batch, err := load(ctx, cfg, opts.source, seeder)
	if err != nil {
		return err
	}
	log.Info().Int("records", batch.Len()).Msg("records loaded")

	sem := semaphore.NewWeighted(int64(opts.workers))
	var wg sync.WaitGroup
	var failed atomic.Int64

	for _, task := range seeder.Tasks(batch) {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			break // ctx cancelled
		}

		wg.Add(1)
		go func(t app.Task) {
			defer wg.Done()
			defer sem.Release(1)

			if err := t.Run(ctx); err != nil {
				failed.Add(1)
				log.Warn().Str("kind", t.Kind).Int64("id", t.ID).Err(err).Msg("seed failed")
				return
			}
			log.Debug().Str("kind", t.Kind).Int64("id", t.ID).Msg("seed ok")
		}(task)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d records failed", n, batch.Len())
	}
	log.Info().Msg("seeding completed")
	return nil
}

func load(ctx context.Context, cfg shared.Config, source string, s *app.SeedService) (app.Batch, error) {
	switch source {
	case "static":
		ds, err := memory.Seed()
		if err != nil {
			return app.Batch{}, err
		}
		return app.Batch{Destinations: ds.Destinations, Packages: ds.Packages, Memberships: ds.Memberships}, nil
	case "remote":
		client, err := remote.New(cfg.RemoteBase, cfg.RemoteKey, cfg.RemoteRPS)
		if err != nil {
			return app.Batch{}, fmt.Errorf("remote client: %w", err)
		}
		return s.FetchRemote(ctx, client)
	}
	return app.Batch{}, fmt.Errorf("unknown --source %q (want static or remote)", source)
}
