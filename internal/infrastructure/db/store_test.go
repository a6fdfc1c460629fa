package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animetrack/anime-tracker/internal/pkg/config"
)

func TestOpen_SQLiteMemory(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, config.StoreConfig{Driver: config.StoreSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	defer store.Close(ctx)

	assert.Equal(t, "sqlite", store.Driver)
	assert.NotNil(t, store.Users)
	assert.NotNil(t, store.Animes)
	assert.NoError(t, store.Ping(ctx))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "redis"})
	assert.Error(t, err)
}
