// Package storage implements device storage on SQLite, a gocloud.dev bucket
// or Redis, plus the ordered write queue every store persists through.
package storage

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the device storage selected by storage.driver and closes it on stop.
func New(params Params) (repository.DeviceStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	storage, err := Open(ctx, params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return storage.Close()
		},
	})

	return storage, nil
}

// Open opens the device storage selected by storage.driver.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.DeviceStorage, error) {
	storageCfg := cfg.Storage

	var (
		storage repository.DeviceStorage
		err     error
	)
	switch storageCfg.Driver {
	case config.StorageDriverSQLite:
		storage, err = NewSQLiteStorage(storageCfg.Path, logger, cfg)
	case config.StorageDriverBlob:
		storage, err = NewBlobStorage(ctx, storageCfg.BucketURL)
	case config.StorageDriverRedis:
		storage, err = NewRedisStorage(ctx, storageCfg.Redis)
	default:
		return nil, errors.Errorf("unknown storage driver: %s", storageCfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Device storage opened", slog.String("driver", storageCfg.Driver))

	return storage, nil
}

// WriterParams defines the parameters for the storage write queue
type WriterParams struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Storage repository.DeviceStorage
}

// NewWriter starts the write queue; it drains on stop, before storage closes.
func NewWriter(params WriterParams) repository.StorageWriter {
	writer := NewQueueWriter(
		params.Storage,
		params.Logger,
		params.Config.Storage.WriteTimeout,
		params.Config.Storage.QueueSize,
	)

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			return writer.Close(stopCtx)
		},
	})

	return writer
}
