package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port            string
	APIBaseURL      string
	UpstreamTimeout time.Duration

	// Snapshot storage: DataDir backs the file store; a non-empty
	// DatabaseURL switches the POS console to the shared Postgres store.
	DataDir     string
	DatabaseURL string

	CORSAllowOrigins []string
}

// LoadStorefront reads the storefront app's environment.
func LoadStorefront() Config {
	return load("8090")
}

// LoadPOS reads the POS console's environment.
func LoadPOS() Config {
	cfg := load("8091")
	cfg.DatabaseURL = getenv("POS_DATABASE_URL", "")
	return cfg
}

func load(defaultPort string) Config {
	return Config{
		Port:             getenv("PORT", defaultPort),
		APIBaseURL:       getenv("STORE_API_URL", "http://localhost:8080/api"),
		UpstreamTimeout:  parseDuration(getenv("UPSTREAM_TIMEOUT", "10s"), 10*time.Second),
		DataDir:          getenv("DATA_DIR", "./data"),
		CORSAllowOrigins: splitCSV(getenv("CORS_ALLOW_ORIGINS", "*")),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
