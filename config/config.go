package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds the node-level settings read from the environment. Everything
// economic lives in types.Params instead, because proposals can change it at
// runtime.
type Config struct {
	DataDir        string   `valid:"required"`
	ListenAddr     string   `valid:"required"`
	AllowedOrigins []string `valid:"-"`
	SnapshotEvery  int64    `valid:"-"` // persist a sequence-keyed snapshot every N mutations, 0 disables
	NotifyBacklog  int      `valid:"-"`
}

// Load reads the optional .env file and assembles the node configuration.
func Load() (*Config, error) {
	// Missing .env is fine, the defaults below cover a fresh checkout.
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:        envOr("AXONSIM_DATA_DIR", "./data"),
		ListenAddr:     envOr("AXONSIM_LISTEN_ADDR", "0.0.0.0:8545"),
		AllowedOrigins: splitOrigins(envOr("AXONSIM_ALLOWED_ORIGINS", "*")),
		SnapshotEvery:  cast.ToInt64(envOr("AXONSIM_SNAPSHOT_EVERY", "25")),
		NotifyBacklog:  cast.ToInt(envOr("AXONSIM_NOTIFY_BACKLOG", "100")),
	}

	if cfg.NotifyBacklog <= 0 {
		cfg.NotifyBacklog = NotificationBacklog
	}
	if cfg.SnapshotEvery < 0 {
		return nil, fmt.Errorf("AXONSIM_SNAPSHOT_EVERY must not be negative, got %d", cfg.SnapshotEvery)
	}

	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
