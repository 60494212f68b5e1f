package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// ClientConfig configures the todo CLI.
type ClientConfig struct {
	APIURL      string
	UseMock     bool
	MockLatency time.Duration
	SessionFile string
	Timeout     time.Duration
}

// LoadClient reads the client settings. Flags may override them afterwards.
func LoadClient() *ClientConfig {
	_ = godotenv.Load()

	cfg := &ClientConfig{
		APIURL:      getenv("TODO_API_URL", "http://localhost:8080"),
		UseMock:     getbool("TODO_USE_MOCK", false),
		MockLatency: 300 * time.Millisecond,
		SessionFile: os.Getenv("TODO_SESSION_FILE"),
		Timeout:     10 * time.Second,
	}

	if v := os.Getenv("TODO_MOCK_LATENCY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.MockLatency = d
		}
	}

	if cfg.SessionFile == "" {
		cfg.SessionFile = defaultSessionFile()
	}

	return cfg
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "todoapp", "session.json")
}
