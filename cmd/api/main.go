package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/events"
	"storefront/internal/fixture"
	"storefront/internal/gateway"
	"storefront/internal/httpserver"
	"storefront/internal/idempotency"
	"storefront/internal/logger"
	"storefront/internal/mode"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal("connect to redis", zap.Error(err))
		}
		defer rdb.Close()
	}

	var overrides mode.OverrideStore = mode.NewFileStore(cfg.MockStateFile)
	if rdb != nil {
		overrides = mode.NewRedisStore(rdb)
	}
	state := mode.Resolve(ctx, cfg.MockData, overrides, log)

	fixtures, err := fixture.Load()
	if err != nil {
		log.Fatal("load fixtures", zap.Error(err))
	}
	log.Info("fixtures loaded", zap.String("version", fixtures.Version()))

	deps := httpserver.Deps{
		Mode:           state,
		Verifier:       auth.NewVerifier(cfg.JWTSecret),
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}
	if !deps.Verifier.Enabled() && !state.Active().Mock() {
		log.Warn("JWT_SECRET is empty; every protected route will answer 401")
	}

	var live gateway.Store
	if !state.Active().Mock() {
		dbpool, err := db.Open(ctx, cfg.DBConnString)
		if err != nil {
			log.Fatal("configure db pool", zap.Error(err))
		}
		defer dbpool.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := dbpool.Ping(pingCtx); err != nil {
			log.Warn("db unreachable at startup, reads will serve fixtures until it recovers", zap.Error(err))
		}
		cancel()
		live = gateway.NewLiveStore(dbpool, log)
		deps.DB = dbpool
	}

	opts := []gateway.Option{
		gateway.WithLogger(log),
		gateway.WithFallbackWrites(cfg.FallbackWrites),
		gateway.WithFeaturedLimit(cfg.FeaturedLimit),
	}
	if rdb != nil {
		opts = append(opts, gateway.WithIdempotency(idempotency.NewRedisStore(rdb, idempotency.DefaultTTL)))
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.OrderEventsTopic, log)
		defer publisher.Close()
		opts = append(opts, gateway.WithPublisher(publisher))
	}

	gw, err := gateway.New(state.Active(), live, fixtures, opts...)
	if err != nil {
		log.Fatal("init gateway", zap.Error(err))
	}
	deps.Store = gw

	if len(cfg.KafkaBrokers) > 0 {
		consumer := events.NewStatusConsumer(cfg.KafkaBrokers, cfg.OrderStatusTopic, cfg.KafkaGroupID, gw, log)
		defer consumer.Close()
		go func() {
			if err := consumer.Run(ctx); err != nil {
				log.Error("order status consumer stopped", zap.Error(err))
			}
		}()
	}

	srv, err := httpserver.New(cfg.HTTPAddr, log, deps)
	if err != nil {
		log.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting http server", zap.String("addr", cfg.HTTPAddr), zap.String("mode", string(state.Active())))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	} else {
		log.Info("server stopped")
	}
}
