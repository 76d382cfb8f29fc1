package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	HTTP struct {
		Port string `yaml:"port" env:"SAMPLE_HTTP_PORT"`
	} `yaml:"http"`
	Vendor struct {
		Insecure bool          `yaml:"insecure"`
		Timeout  time.Duration `yaml:"timeout"`
		Retries  uint8         `yaml:"retries"`
	} `yaml:"vendor"`
	Name string `yaml:"name" validate:"required"`
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: \"9000\"\nname: adapter\nvendor:\n  insecure: false\n"), 0o600))

	t.Setenv(FileEnv, path)
	t.Setenv("SAMPLE_HTTP_PORT", "9100")
	t.Setenv("VENDOR_INSECURE", "true")
	t.Setenv("VENDOR_TIMEOUT", "3s")

	var cfg sample
	require.NoError(t, LoadConfig(&cfg))

	assert.Equal(t, "9100", cfg.HTTP.Port)
	assert.True(t, cfg.Vendor.Insecure)
	assert.Equal(t, 3*time.Second, cfg.Vendor.Timeout)
	assert.Equal(t, "adapter", cfg.Name)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Setenv(FileEnv, "")

	var cfg sample
	err := LoadConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")
}

func TestLoadConfigBadEnv(t *testing.T) {
	t.Setenv(FileEnv, "")
	t.Setenv("NAME", "x")
	t.Setenv("VENDOR_RETRIES", "many")

	var cfg sample
	err := LoadConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VENDOR_RETRIES")
}

func TestLoadConfigRejectsNonPointer(t *testing.T) {
	assert.Error(t, LoadConfig(sample{}))
	assert.Error(t, LoadConfig(nil))
}
