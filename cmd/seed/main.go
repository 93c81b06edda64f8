package main

import (
	"context"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/fixture"
	"storefront/internal/logger"
	"storefront/internal/seed"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	snap, err := fixture.ParseSnapshot()
	if err != nil {
		log.Fatal("load fixtures", zap.Error(err))
	}

	if _, err := seed.Apply(ctx, pool, snap, log); err != nil {
		log.Fatal("seed apply", zap.Error(err))
	}
}
