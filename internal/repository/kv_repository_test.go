package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emotiguide/internal/db"
)

func newTestRepository(t *testing.T) *KVRepository {
	t.Helper()
	gormDB, err := db.NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewKVRepository(gormDB)
}

func TestKVRepository_SetGetDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	missing, err := repo.Get(ctx, "default:emotiguide_user")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Set(ctx, "default:emotiguide_user", []byte(`{"version":1,"data":{"id":"a"}}`)))
	require.NoError(t, repo.Set(ctx, "default:emotiguide_user", []byte(`{"version":1,"data":{"id":"b"}}`)))

	got, err := repo.Get(ctx, "default:emotiguide_user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"data":{"id":"b"}}`, string(got))

	require.NoError(t, repo.Delete(ctx, "default:emotiguide_user"))
	gone, err := repo.Get(ctx, "default:emotiguide_user")
	require.NoError(t, err)
	assert.Nil(t, gone)

	require.NoError(t, repo.Delete(ctx, "default:emotiguide_user"))
}

func TestKVRepository_Keys(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, key := range []string{"lab:emotiguide_user", "lab:emotiguide_history", "home:emotiguide_history"} {
		require.NoError(t, repo.Set(ctx, key, []byte("{}")))
	}

	keys, err := repo.Keys(ctx, "lab:")
	require.NoError(t, err)
	assert.Equal(t, []string{"lab:emotiguide_history", "lab:emotiguide_user"}, keys)
}

func TestKVRepository_KeysTreatsPrefixLiterally(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, key := range []string{"lab_1:emotiguide_user", "labX1:emotiguide_user", "Lab_1:emotiguide_user", "100%:emotiguide_user", "100x:emotiguide_user"} {
		require.NoError(t, repo.Set(ctx, key, []byte("{}")))
	}

	tests := []struct {
		prefix   string
		expected []string
	}{
		{prefix: "lab_", expected: []string{"lab_1:emotiguide_user"}},
		{prefix: "100%", expected: []string{"100%:emotiguide_user"}},
		{prefix: "", expected: []string{"100%:emotiguide_user", "100x:emotiguide_user", "Lab_1:emotiguide_user", "labX1:emotiguide_user", "lab_1:emotiguide_user"}},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			keys, err := repo.Keys(ctx, tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, keys)
		})
	}
}
