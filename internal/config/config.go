package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string
	StateDir    string
	SessionDir  string
	HTTPTimeout time.Duration
	PageSize    int
	LogLevel    string
	Mock        Mock
}

// Mock configures the local stand-in for the blog API.
type Mock struct {
	Addr      string
	JWTSecret string
	TokenTTL  time.Duration

	// AuthPerMinute caps /auth calls per client address. Zero disables it.
	AuthPerMinute int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	apiURL := envString("BLOGCLI_API_URL", "")
	if apiURL == "" {
		apiURL = envString("API_BASE_URL", "http://localhost:8000/v1")
	}

	cfg := Config{
		APIBaseURL:  apiURL,
		StateDir:    envString("BLOGCLI_STATE_DIR", defaultStateDir()),
		SessionDir:  envString("BLOGCLI_SESSION_DIR", defaultSessionDir()),
		HTTPTimeout: envDuration("BLOGCLI_HTTP_TIMEOUT", 30*time.Second),
		PageSize:    envInt("BLOGCLI_PAGE_SIZE", 10),
		LogLevel:    envString("BLOGCLI_LOG_LEVEL", "warn"),
		Mock: Mock{
			Addr:          envString("BLOGMOCK_ADDR", ":8000"),
			JWTSecret:     envString("BLOGMOCK_JWT_SECRET", "dev-jwt-secret"),
			TokenTTL:      envDuration("BLOGMOCK_TOKEN_TTL", 24*time.Hour),
			AuthPerMinute: envInt("BLOGMOCK_AUTH_PER_MINUTE", 30),
		},
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}

	return cfg
}

func (c Config) DurablePath() string {
	return filepath.Join(c.StateDir, "state.db")
}

func (c Config) SessionPath() string {
	return filepath.Join(c.SessionDir, "session.db")
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".blogcli"
	}
	return filepath.Join(home, ".blogcli")
}

// defaultSessionDir lives in the per-login runtime directory so the session
// area goes away with the login session.
func defaultSessionDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "blogcli")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("blogcli-%d", os.Getuid()))
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
