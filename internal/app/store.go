package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/odyssey-erp/catalog/internal/masterdata/categories"
	"github.com/odyssey-erp/catalog/internal/masterdata/vendors"
	"github.com/odyssey-erp/catalog/internal/platform/cache"
	"github.com/odyssey-erp/catalog/internal/platform/db"
	"github.com/odyssey-erp/catalog/internal/resource"
	"github.com/odyssey-erp/catalog/internal/store/postgres"
	"github.com/odyssey-erp/catalog/internal/store/redisdoc"
)

var (
	_ resource.Repository[categories.Category] = (*postgres.Collection[categories.Category])(nil)
	_ resource.Repository[vendors.Vendor]      = (*postgres.Collection[vendors.Vendor])(nil)
	_ resource.Repository[categories.Category] = (*redisdoc.Collection[categories.Category])(nil)
	_ resource.Repository[vendors.Vendor]      = (*redisdoc.Collection[vendors.Vendor])(nil)
)

// Stores holds the repository handles for every collection.
type Stores struct {
	Categories resource.Repository[categories.Category]
	Vendors    resource.Repository[vendors.Vendor]
	closeFn    func()
}

// Close releases the backing connections.
func (s *Stores) Close() {
	if s != nil && s.closeFn != nil {
		s.closeFn()
	}
}

// OpenStores connects the backend selected by STORE_DRIVER and prepares the
// collections.
func OpenStores(ctx context.Context, cfg *Config, logger *slog.Logger) (*Stores, error) {
	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		pool, err := db.New(ctx, cfg.PGDSN, db.PoolOptions{MaxConns: cfg.PGMaxConns, MaxConnIdleTime: 5 * time.Minute})
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool, categories.Kind, vendors.Kind); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("store ready", slog.String("driver", cfg.StoreDriver))
		return &Stores{
			Categories: postgres.NewCollection[categories.Category](pool, categories.Kind),
			Vendors:    postgres.NewCollection[vendors.Vendor](pool, vendors.Kind),
			closeFn:    pool.Close,
		}, nil
	case StoreDriverRedis:
		client, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		logger.Info("store ready", slog.String("driver", cfg.StoreDriver))
		return &Stores{
			Categories: redisdoc.NewCollection[categories.Category](client, categories.Kind),
			Vendors:    redisdoc.NewCollection[vendors.Vendor](client, vendors.Kind),
			closeFn: func() {
				if err := client.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
