package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"nostalgiajars/pkg/api"
	"nostalgiajars/pkg/catalog"
	"nostalgiajars/pkg/config"
	"nostalgiajars/pkg/identity"
	"nostalgiajars/pkg/live"
	"nostalgiajars/pkg/logger"
	"nostalgiajars/pkg/metrics"
	"nostalgiajars/pkg/otel"
	"nostalgiajars/pkg/storefront"
	"nostalgiajars/pkg/storefront/memory"
	sfredis "nostalgiajars/pkg/storefront/redis"
)

const serviceName = "nostalgiajars"

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()
			return serve(cmd.Context(), log, cfg)
		},
	}
}

func setup() (config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger.New(os.Stdout, level, serviceName, otel.GetTraceID), nil
}

func serve(ctx context.Context, log *logger.Logger, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, shutdownTracing, err := otel.InitTracing(log, otel.Config{
		ServiceName: serviceName,
		Host:        cfg.OtelHost,
		Probability: cfg.OtelProbability,
	})
	if err != nil {
		log.Error(ctx, "init tracing", "error", err)
		return err
	}
	defer shutdownTracing(context.Background())

	cat, err := loadCatalog(ctx, log, cfg, true)
	if err != nil {
		log.Error(ctx, "load catalog", "error", err)
		return err
	}

	registry, err := newRegistry(ctx, log, cfg, cat)
	if err != nil {
		log.Error(ctx, "storefront registry", "error", err)
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	sim := identity.NewSimulated()

	handler := api.New(api.Config{
		Log:          log,
		Catalog:      cat,
		Registry:     registry,
		Verifier:     sim,
		CodeSender:   sim,
		Hub:          live.NewHub(m.LiveClients()),
		Metrics:      m,
		Tracer:       tp.Tracer(serviceName),
		VisitorTTL:   cfg.SessionTTL,
		SecureCookie: cfg.TLS(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.Addr, "tls", cfg.TLS())
		if cfg.TLS() {
			errc <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server closed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error(sctx, "shutdown", "error", err)
		return err
	}
	return nil
}

func newRegistry(ctx context.Context, log *logger.Logger, cfg config.Config, cat *catalog.Catalog) (storefront.Registry, error) {
	if cfg.RedisAddr == "" {
		mem := memory.New(cfg.SessionTTL)
		go mem.Run(ctx, time.Minute)
		log.Info(ctx, "storefronts kept in memory", "ttl", cfg.SessionTTL)
		return mem, nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	log.Info(ctx, "storefronts kept in redis", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
	return sfredis.New(client, cat, cfg.SessionTTL), nil
}
