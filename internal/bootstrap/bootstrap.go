// Package bootstrap opens the store and cache selected by configuration.
// Both binaries share it.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"hotel_merge/internal/adapters/memcache"
	redisad "hotel_merge/internal/adapters/redis"
	"hotel_merge/internal/domain"
	"hotel_merge/internal/shared"
	mysqlrepo "hotel_merge/internal/storage/mysql"
	pgrepo "hotel_merge/internal/storage/postgres"
)

const (
	maxOpenConns = 10
	maxIdleConns = 1
)

// Store is a HotelRepository that can create its own schema.
type Store interface {
	domain.HotelRepository
	Migrate(ctx context.Context) error
}

// OpenStore connects to the configured database, pings it and migrates the
// schema. The caller closes the returned *sql.DB.
func OpenStore(ctx context.Context, cfg shared.Config) (Store, *sql.DB, error) {
	driver, dsn := "mysql", cfg.MySQLDSN
	if cfg.StoreDriver == "postgres" {
		driver, dsn = "postgres", cfg.PostgresURL
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	var st Store
	if driver == "postgres" {
		st = pgrepo.New(db)
	} else {
		st = mysqlrepo.New(db)
	}
	if err := st.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate %s: %w", driver, err)
	}
	log.Info().Str("driver", driver).Msg("database ready")
	return st, db, nil
}

// OpenCache returns the configured cache and a func releasing it.
func OpenCache(cfg shared.Config) (domain.Cache, func()) {
	if cfg.CacheBackend == "redis" {
		c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis cache")
		return c, func() { _ = c.Close() }
	}
	log.Info().Msg("using in-process cache")
	return memcache.New(cfg.CacheTTL), func() {}
}
