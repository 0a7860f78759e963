package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveillance-map/be/database"
)

func TestGormBackendRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	db, err := database.Open(dsn)
	require.NoError(t, err)
	b := NewGormBackend(db)
	t.Cleanup(func() { _ = b.Close() })
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, sampleCameras()))
	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleCameras(), loaded)

	require.NoError(t, b.Save(ctx, nil))
	loaded, err = b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
