package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"emotiguide/internal/kv"
	"emotiguide/internal/model"
)

// KVRepository is a gorm-backed kv.Store over the kv_entries table.
type KVRepository struct {
	db *gorm.DB
}

var _ kv.Store = (*KVRepository)(nil)

// NewKVRepository builds a GORM-backed key-value repository.
func NewKVRepository(db *gorm.DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get returns the stored value or nil when the key is missing.
func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntry
	err := r.db.WithContext(ctx).Where("`key` = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

// Set inserts or replaces the value stored under key.
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	entry := model.KVEntry{Key: key, Value: string(value)}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Delete removes key; a missing key is not an error.
func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Where("`key` = ?", key).Delete(&model.KVEntry{}).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// likeEscaper escapes LIKE wildcards using '!' as the escape character,
// which both sqlite and mysql accept in an ESCAPE clause.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Keys lists stored keys with the given prefix, ordered.
func (r *KVRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	var matched []string
	err := r.db.WithContext(ctx).Model(&model.KVEntry{}).
		Where("`key` LIKE ? ESCAPE '!'", likeEscaper.Replace(prefix)+"%").
		Order("`key`").
		Pluck("key", &matched).Error
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	// sqlite LIKE ignores ASCII case.
	keys := matched[:0]
	for _, key := range matched {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
