package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveillance-map/be/config"
	"surveillance-map/be/models"
)

func intPtr(v int) *int { return &v }

func sampleCameras() []models.Camera {
	return []models.Camera{
		{ID: "WAPOL-1001", Lat: -32.0157, Lng: 115.8355, Type: "Red-Light Speed", Coverage: "360", Suburb: "Applecross"},
		{ID: "COP-17", Lat: -31.95, Lng: 115.86, Type: "Public Safety", Coverage: "directional", Direction: intPtr(90)},
		{ID: "USER-1730000000000", Lat: 0, Lng: 0, Type: "Traffic", DetectionTypes: []string{"speed"}},
	}
}

func TestFileBackendMissingFileLoadsEmpty(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "cameras.json"))

	cameras, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cameras)
	assert.Empty(t, cameras)
}

func TestFileBackendRoundTripKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cameras.json")
	b := NewFileBackend(path)
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, sampleCameras()))

	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleCameras(), loaded)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {", "document should be indented")
	assert.Contains(t, string(raw), `"direction": null`)
}

func TestFileBackendSaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cameras.json")
	b := NewFileBackend(path)

	require.NoError(t, b.Save(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestFileBackendCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cameras.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileBackend(path).Load(context.Background())
	assert.Error(t, err)
}

func TestFileBackendSaveFailureKeepsDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cameras.json")
	b := NewFileBackend(path)
	ctx := context.Background()
	require.NoError(t, b.Save(ctx, sampleCameras()))

	missing := NewFileBackend(filepath.Join(dir, "no-such-dir", "cameras.json"))
	assert.Error(t, missing.Save(ctx, sampleCameras()))

	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 3)
}

func TestOpenSelectsBackend(t *testing.T) {
	b, err := Open(config.StoreConfig{Backend: "file", FilePath: "x.json"})
	require.NoError(t, err)
	assert.Equal(t, "file:x.json", b.Name())

	_, err = Open(config.StoreConfig{Backend: "etcd"})
	assert.Error(t, err)
}
