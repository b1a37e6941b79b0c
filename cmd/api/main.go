package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "worldacross/internal/adapters/http_server"
	"worldacross/internal/adapters/observability"
	redisad "worldacross/internal/adapters/redis"
	"worldacross/internal/adapters/token"
	"worldacross/internal/app"
	"worldacross/internal/domain"
	"worldacross/internal/shared"
	"worldacross/internal/storage/memory"
	mysqlrepo "worldacross/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// static data is always loaded: content comes from it, and so does the
	// catalog unless DATA_SOURCE=mysql
	store, err := memory.NewSeeded()
	if err != nil {
		log.Fatal().Err(err).Msg("static dataset invalid")
	}

	var repo domain.CatalogRepository = store
	if cfg.DataSource == "mysql" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		mr := mysqlrepo.New(db)
		if err := mr.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		repo = mr
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, serving without cache")
		} else {
			cache = rc
		}
	}

	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	api := app.NewAPI(q, store, app.Options{
		Latency: cfg.MockLatency,
		Tokens:  token.NewMaker(cfg.JWTSecret, cfg.TokenTTL),
	})

	// http
	reg := observability.InitRegistry()
	srv := server.New(cfg.MockLatency+15*time.Second, cfg.TrustProxy)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		API:     api,
		Contact: server.NewIPLimiter(cfg.ContactRPS, cfg.ContactBurst),
	})

	servers := []*http.Server{{Addr: cfg.HTTPAddr, Handler: srv.Mux()}}
	if cfg.MetricsAddr != "" {
		mm := http.NewServeMux()
		mm.Handle("/metrics", observability.MetricsHandler(reg))
		servers = append(servers, &http.Server{Addr: cfg.MetricsAddr, Handler: mm})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, hs := range servers {
		hs := hs
		g.Go(func() error {
			log.Info().Str("addr", hs.Addr).Str("source", cfg.DataSource).Msg("listening")
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, hs := range servers {
			if err := hs.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Str("addr", hs.Addr).Msg("shutdown failed")
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("bye")
}
