package config_test

import (
	"testing"

	"github.com/JainamDedhia/Eduthon-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the process environment cannot
// leak into a test. Viper treats empty variables as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"SERVER_PORT", "SERVER_MODE", "LOG_LEVEL",
		"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_ALLOWED_ORIGINS",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION",
		"S3_BUCKET_NAME", "S3_ENDPOINT", "S3_USE_SSL",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	clearEnv(t)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS_ACCESS_KEY_ID")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "test-access")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test-secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Server.ReadTimeout)
	assert.Equal(t, 60, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)

	assert.Equal(t, "test-access", cfg.Storage.AccessKey)
	assert.Equal(t, "test-secret", cfg.Storage.SecretKey)
	assert.Equal(t, "eu-north-1", cfg.Storage.Region)
	assert.Equal(t, "study2material", cfg.Storage.Bucket)
	assert.Equal(t, "s3.eu-north-1.amazonaws.com", cfg.Storage.Endpoint)
	assert.True(t, cfg.Storage.UseSSL)
}

func TestLoadEndpointFollowsRegion(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "test-access")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test-secret")
	t.Setenv("AWS_REGION", "us-west-2")
	t.Setenv("S3_BUCKET_NAME", "assets")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", cfg.Storage.Region)
	assert.Equal(t, "assets", cfg.Storage.Bucket)
	assert.Equal(t, "s3.us-west-2.amazonaws.com", cfg.Storage.Endpoint)
}

func TestLoadExplicitEndpoint(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "test-access")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test-secret")
	t.Setenv("S3_ENDPOINT", "localhost:9000")
	t.Setenv("S3_USE_SSL", "false")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_READ_TIMEOUT", "30")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	assert.False(t, cfg.Storage.UseSSL)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
}
