package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"skillora/internal/market"
)

// KVEntry is the row model of the postgres store.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string { return "kv_entries" }

// PostgresStore implements market.Store on a gorm-managed postgres table.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects to dsn and migrates the kv_entries table.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return NewPostgresStoreFromDB(db)
}

// NewPostgresStoreFromDB wraps an open gorm connection and migrates the
// kv_entries table. The store takes ownership of db.
func NewPostgresStoreFromDB(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("migrating kv_entries: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var e KVEntry
	err := p.db.WithContext(ctx).Where("key = ?", key).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("getting %s: %w", key, err)
	}
	return e.Value, nil
}

func (p *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	e := KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("putting %s: %w", key, err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	if err := p.db.WithContext(ctx).Where("key = ?", key).Delete(&KVEntry{}).Error; err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (p *PostgresStore) Clear(ctx context.Context) error {
	err := p.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&KVEntry{}).Error
	if err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}
	return nil
}

func (p *PostgresStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := p.db.WithContext(ctx).Model(&KVEntry{}).Order(`key COLLATE "C"`).Pluck("key", &keys).Error; err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	return keys, nil
}

func (p *PostgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("getting postgres handle: %w", err)
	}
	return sqlDB.Close()
}

// Compile-time check that PostgresStore implements market.Store interface
var _ market.Store = (*PostgresStore)(nil)
