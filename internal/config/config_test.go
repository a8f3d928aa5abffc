package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "config/rules.yaml", cfg.Rules.File)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxBytes)
	assert.Equal(t, 20, cfg.Report.TailLines)
	assert.True(t, cfg.Server.Enabled)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestExtensionAllowed(t *testing.T) {
	cfg := UploadConfig{Extensions: []string{".log", ".txt"}}

	assert.True(t, cfg.ExtensionAllowed("app.log"))
	assert.True(t, cfg.ExtensionAllowed("APP.LOG"))
	assert.True(t, cfg.ExtensionAllowed("notes.txt"))
	assert.False(t, cfg.ExtensionAllowed("image.png"))
	assert.False(t, cfg.ExtensionAllowed("logfile"))
}

func TestExtensionAllowedEmptyList(t *testing.T) {
	cfg := UploadConfig{}
	assert.True(t, cfg.ExtensionAllowed("anything.bin"))
}
