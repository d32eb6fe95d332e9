package config_test

import (
	"testing"
	"time"

	"github.com/MGabeD/chrysus/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 8, cfg.Views.TopCategories)
	assert.Equal(t, 5, cfg.Security.RateLimitPerSecond)
	assert.Equal(t, 10, cfg.Security.RateLimitBurst)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("BACKEND_URL", "http://analysis:8000/")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("VIEW_TOP_CATEGORIES", "4")

	cfg := config.Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 4, cfg.Views.TopCategories)
}

func TestLoad_MalformedIntFallsBackToDefault(t *testing.T) {
	t.Setenv("VIEW_TOP_CATEGORIES", "lots")
	t.Setenv("BACKEND_TIMEOUT", "soon")

	cfg := config.Load()

	assert.Equal(t, 8, cfg.Views.TopCategories)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
}

func TestServerConfig_Address(t *testing.T) {
	cfg := config.ServerConfig{Host: "0.0.0.0", Port: "8080"}
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
}

func TestBackendConfig_BackendBase_TrimsTrailingSlash(t *testing.T) {
	cfg := config.BackendConfig{BaseURL: "http://analysis:8000/"}
	assert.Equal(t, "http://analysis:8000", cfg.BackendBase())

	bare := config.BackendConfig{BaseURL: "http://analysis:8000"}
	assert.Equal(t, "http://analysis:8000", bare.BackendBase())
}
