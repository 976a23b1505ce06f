package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/rolodex/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantDebug bool
		wantErr   bool
	}{
		{name: "development defaults to debug", cfg: config.LogConfig{Env: "development"}, wantDebug: true},
		{name: "production defaults to info", cfg: config.LogConfig{Env: "production"}},
		{name: "explicit level wins", cfg: config.LogConfig{Env: "production", Level: "debug"}, wantDebug: true},
		{name: "bad level", cfg: config.LogConfig{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDebug, logger.Core().Enabled(zap.DebugLevel))
		})
	}
}
