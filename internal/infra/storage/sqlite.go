package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// deviceItemModel is one key of device storage.
type deviceItemModel struct {
	Key       string `gorm:"column:item_key;primaryKey"`
	Value     string `gorm:"column:item_value;not null"`
	UpdatedAt time.Time
}

func (deviceItemModel) TableName() string {
	return "device_items"
}

type sqliteStorage struct {
	db *gorm.DB
}

// NewSQLiteStorage opens (and migrates) the SQLite database at path.
// Use ":memory:" for a throwaway store.
func NewSQLiteStorage(path string, logger *slog.Logger, cfg *config.Config) (repository.DeviceStorage, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrap(err, "failed to create storage directory")
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, cfg),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite storage")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	// SQLite allows one writer; a single connection also keeps ":memory:" databases alive.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&deviceItemModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate SQLite storage")
	}

	return &sqliteStorage{db: db}, nil
}

func (s *sqliteStorage) GetItem(ctx context.Context, key string) (string, error) {
	var item deviceItemModel
	err := s.db.WithContext(ctx).Where("item_key = ?", key).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repository.ErrStorageKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read key %s", key)
	}

	return item.Value, nil
}

func (s *sqliteStorage) SetItem(ctx context.Context, key, value string) error {
	item := deviceItemModel{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"item_value", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		return errors.Wrapf(err, "failed to write key %s", key)
	}

	return nil
}

func (s *sqliteStorage) RemoveItems(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Where("item_key IN ?", keys).Delete(&deviceItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to remove keys")
	}

	return nil
}

func (s *sqliteStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get SQLite sql.DB")
	}

	return errors.WithStack(sqlDB.Close())
}
