package main

import (
	"context"
	"flag"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logger"
	"storefront/internal/migrate"
	"go.uber.org/zap"
)

func main() {
	down := flag.Int("down", 0, "Roll back this many migrations instead of applying")
	flag.Parse()

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

	if *down > 0 {
		if err := migrate.Rollback(ctx, pool, *down); err != nil {
			log.Fatal("roll back migrations", zap.Int("steps", *down), zap.Error(err))
		}
	} else if err := migrate.Apply(ctx, pool); err != nil {
		log.Fatal("apply migrations", zap.Error(err))
	}

	version, dirty, err := migrate.Version(ctx, pool)
	if err != nil {
		log.Fatal("read migration version", zap.Error(err))
	}
	log.Info("migrations done", zap.Uint("version", version), zap.Bool("dirty", dirty))
}
