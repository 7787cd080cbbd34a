package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/creatorhub/memberkit/internal/config"
	"github.com/creatorhub/memberkit/internal/credentials"
)

// OpenCredentialStore builds the store selected by CREDENTIAL_STORE. The returned
// closer releases any connection the store holds and is never nil.
func OpenCredentialStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (credentials.Store, func(), error) {
	noop := func() {}

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return credentials.NewMemoryStore(), noop, nil

	case config.StoreDriverFile:
		return credentials.NewFileStore(cfg.Store.FilePath), noop, nil

	case config.StoreDriverRedis:
		r, err := NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, noop, err
		}
		return credentials.NewRedisStore(r.Client, cfg.Store.Namespace), r.Close, nil

	case config.StoreDriverPostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.Pool, logger); err != nil {
				pg.Close()
				return nil, noop, err
			}
		}
		return credentials.NewPostgresStore(pg.Pool, cfg.Store.Namespace), pg.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown credential store driver %q", cfg.Store.Driver)
}
