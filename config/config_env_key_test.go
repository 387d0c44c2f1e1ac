package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"storage": map[string]any{
			"bucketUrl": "mem://",
			"redis": map[string]any{
				"keyPrefix": "storefront:",
			},
		},
		"api": map[string]any{
			"baseUrl": "",
			"ports": map[string]any{
				"paymentMethods": 8082,
			},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "STORAGE_BUCKETURL", want: "storage.bucketUrl"},
		{envKey: "STORAGE_REDIS_KEYPREFIX", want: "storage.redis.keyPrefix"},
		{envKey: "API_PORTS_PAYMENTMETHODS", want: "api.ports.paymentMethods"},
		{envKey: "API_BASEURL", want: "api.baseUrl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestLoadWithEnv_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yamlContent := `
env:
  env: test
  log:
    level: debug
http:
  port: 9000
storage:
  driver: blob
  bucketUrl: mem://
  writeTimeout: 2s
api:
  baseUrl: http://api.example.test:8080
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlContent), 0o600))

	t.Chdir(dir)
	t.Setenv("HTTP_PORT", "9100")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env.Env)
	assert.Equal(t, 9100, cfg.HTTP.Port)
	require.NotNil(t, cfg.Storage)
	assert.Equal(t, StorageDriverBlob, cfg.Storage.Driver)
	assert.Equal(t, "mem://", cfg.Storage.BucketURL)
	assert.Equal(t, 2*time.Second, cfg.Storage.WriteTimeout)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("does-not-exist")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, StorageDriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, defaultStoragePath, cfg.Storage.Path)
	assert.Equal(t, defaultQueueSize, cfg.Storage.QueueSize)
	assert.Equal(t, 8082, cfg.API.Ports.PaymentMethods)
	assert.Equal(t, 8088, cfg.API.Ports.Orders)
	assert.Equal(t, 8089, cfg.API.Ports.Carts)
	assert.Equal(t, defaultCountriesURL, cfg.Country.URL)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, 8070, cfg.HTTP.Port)
	assert.Equal(t, "1M", cfg.HTTP.MaxRequestBodySize)
}
