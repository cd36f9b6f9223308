package persistence

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dmitrijs2005/accountkeeper/internal/account"
	"github.com/dmitrijs2005/accountkeeper/internal/config"
	"github.com/dmitrijs2005/accountkeeper/internal/dbx"
	"github.com/dmitrijs2005/accountkeeper/internal/filex"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/repositories/metadata"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the persister named by cfg.Backend. The returned Closer
// releases the backend's connections and must be called once the store is
// no longer used.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (account.Persister, io.Closer, error) {
	p, closer, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info(ctx, "persistence backend ready", "backend", cfg.Backend, "sealed", cfg.Passphrase != "")

	if cfg.Passphrase != "" {
		p = NewSealed(p, cfg.Passphrase)
	}
	if cfg.PersistTimeout > 0 {
		p = WithTimeout(p, cfg.PersistTimeout)
	}
	return p, closer, nil
}

func openBackend(ctx context.Context, cfg *config.Config) (account.Persister, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nopCloser{}, nil

	case config.BackendSQLite:
		dir, err := filex.EnsureDir(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("data dir: %w", err)
		}
		db, err := dbx.OpenSQLite(ctx, filepath.Join(dir, cfg.SQLiteFile))
		if err != nil {
			return nil, nil, err
		}
		return metadata.NewSQLiteRepository(db), db, nil

	case config.BackendPostgres:
		db, err := dbx.OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return metadata.NewPostgresRepository(db), db, nil

	case config.BackendRedis:
		rdb, err := NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisPersister(rdb, cfg.RedisTTL), rdb, nil

	case config.BackendS3:
		client, err := NewS3Client(ctx, S3Options{
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return NewS3Persister(client, cfg.S3Bucket, cfg.S3Prefix), nopCloser{}, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
