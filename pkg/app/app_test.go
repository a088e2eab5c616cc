package app

import (
	"context"
	"path/filepath"
	"testing"

	"bouldern/pkg/config"
	"bouldern/pkg/sheets"
	"bouldern/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptions(t *testing.T) {
	assert.Empty(t, clientOptions(&config.Config{}))
	assert.Len(t, clientOptions(&config.Config{CredentialsFile: "/secrets/sa.json"}), 1)
}

func TestNewSourceXLSX(t *testing.T) {
	dir := t.TempDir()
	src, err := newSource(context.Background(), &config.Config{XLSXDir: dir}, nil)
	require.NoError(t, err)
	fs, ok := src.(*sheets.FileSource)
	require.True(t, ok)
	assert.Equal(t, dir, fs.Dir)
}

func TestNewStoreLocal(t *testing.T) {
	dir := t.TempDir()
	st, err := newStore(context.Background(), &config.Config{TargetDir: dir}, nil)
	require.NoError(t, err)
	fs, ok := st.(*store.FileStore)
	require.True(t, ok)
	assert.Equal(t, dir, fs.Dir)
}

func TestBuildMissingGyms(t *testing.T) {
	cfg := &config.Config{GymsFile: filepath.Join(t.TempDir(), "gyms.toml")}
	_, err := Build(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to load gyms")
}
