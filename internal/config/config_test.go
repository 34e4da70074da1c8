package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BLOGCLI_API_URL", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("BLOGCLI_PAGE_SIZE", "")
	t.Setenv("BLOGCLI_HTTP_TIMEOUT", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:8000/v1", cfg.APIBaseURL)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Mock.TokenTTL)
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("API_BASE_URL", "http://legacy.example")
	t.Setenv("BLOGCLI_API_URL", "http://api.example/v1")
	t.Setenv("BLOGCLI_STATE_DIR", dir)
	t.Setenv("BLOGCLI_SESSION_DIR", filepath.Join(dir, "run"))
	t.Setenv("BLOGCLI_PAGE_SIZE", "-3")
	t.Setenv("BLOGCLI_HTTP_TIMEOUT", "5s")

	cfg := Load()
	assert.Equal(t, "http://api.example/v1", cfg.APIBaseURL)
	assert.Equal(t, filepath.Join(dir, "state.db"), cfg.DurablePath())
	assert.Equal(t, filepath.Join(dir, "run", "session.db"), cfg.SessionPath())
	assert.Equal(t, 10, cfg.PageSize, "non-positive page size falls back")
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestLoadLegacyAPIVariable(t *testing.T) {
	t.Setenv("BLOGCLI_API_URL", "")
	t.Setenv("API_BASE_URL", "http://legacy.example")

	assert.Equal(t, "http://legacy.example", Load().APIBaseURL)
}
