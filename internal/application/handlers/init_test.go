package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rolodex/internal/domain/mocks"
	"github.com/ersonp/rolodex/internal/domain/ports"
	"github.com/ersonp/rolodex/internal/infrastructure/config"
)

func TestInitHandler_Handle_Success(t *testing.T) {
	tmpDir := t.TempDir()

	var opened config.SQLiteConfig
	handler := NewInitHandler(func(cfg config.SQLiteConfig) (ports.GraphStore, error) {
		opened = cfg
		return mocks.NewGraphStore(), nil
	})

	result, err := handler.Handle(t.Context(), tmpDir)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.ConfigPath, "config.yaml")
	assert.Equal(t, config.DatabasePath(tmpDir), result.DatabasePath)
	assert.Equal(t, result.DatabasePath, opened.Path)
	assert.True(t, config.Exists(tmpDir))
}

func TestInitHandler_Handle_AlreadyInitialized(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, config.WriteDefault(tmpDir))

	handler := NewInitHandler(func(config.SQLiteConfig) (ports.GraphStore, error) {
		t.Fatal("store must not be opened")
		return nil, nil
	})

	_, err := handler.Handle(t.Context(), tmpDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestInitHandler_Handle_OpenError(t *testing.T) {
	handler := NewInitHandler(func(config.SQLiteConfig) (ports.GraphStore, error) {
		return nil, errors.New("unable to open database file")
	})

	_, err := handler.Handle(t.Context(), t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening database")
}
