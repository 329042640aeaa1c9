// Package backend opens the narrator store and the diagram cache named by
// a configuration.
package backend

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mki/isnad/internal/fixtures"
	"github.com/mki/isnad/pkg/cache"
	"github.com/mki/isnad/pkg/config"
	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/httputil"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/repository"
	"github.com/mki/isnad/pkg/repository/csvstore"
	"github.com/mki/isnad/pkg/repository/memstore"
	"github.com/mki/isnad/pkg/repository/mongostore"
	"github.com/mki/isnad/pkg/repository/sqlstore"
)

// connectTimeout bounds opening and migrating a database store.
const connectTimeout = 30 * time.Second

// OpenStore opens the store selected by cfg. Database stores are migrated
// so that an empty database is usable. client fetches CSV exports for
// kind http; nil uses an uncached client.
func OpenStore(ctx context.Context, cfg config.StoreConfig, client *httputil.Client, logger *log.Logger) (repository.Store, error) {
	if logger == nil {
		logger = log.Default()
	}

	switch cfg.Kind {
	case config.StoreMemory, "":
		logger.Debug("using built-in demo data")
		return memstore.New(fixtures.Narrators(), fixtures.Hadiths()), nil

	case config.StoreCSV:
		s, err := csvstore.LoadFile(cfg.Narrators, cfg.Hadiths)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.StoreHTTP:
		if client == nil {
			client = httputil.NewClient(nil, 0)
		}
		s, err := csvstore.LoadURL(ctx, client, cfg.Narrators, cfg.Hadiths)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.StoreSQLite, config.StorePostgres:
		s, err := sqlstore.Open(sqlstore.Dialect(cfg.Kind), cfg.DSN)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		logger.Debug("opened sql store", "dialect", cfg.Kind)
		return s, nil

	case config.StoreMongo:
		s, err := mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := s.EnsureIndexes(ctx); err != nil {
			s.Close()
			return nil, err
		}
		logger.Debug("opened mongo store", "database", cfg.MongoDB)
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store kind %q", cfg.Kind)
}

// Importer is implemented by stores that accept bulk loads.
type Importer interface {
	Import(ctx context.Context, narrators []isnad.Narrator, hadiths []isnad.Hadith) error
}

// OpenCache opens the diagram cache selected by cfg and the keyer that
// scopes its keys with cfg.Prefix.
func OpenCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Prefix)
	switch cfg.Kind {
	case config.CacheNone:
		return cache.NewNullCache(), keyer, nil
	case config.CacheFile, "":
		if cfg.Dir == "" {
			return cache.NewNullCache(), keyer, nil
		}
		c, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return c, keyer, nil
	case config.CacheRedis:
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeNetwork, err, "open redis cache")
		}
		return c, keyer, nil
	}
	return nil, nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache kind %q", cfg.Kind)
}
