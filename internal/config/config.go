package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/me/voirie/pkg/model"
)

// Config holds the deployment configuration shared by both clients.
// Everything is sourced from environment variables (optionally seeded
// from a .env file), never from user input.
type Config struct {
	APIBaseURL string // backend origin, no trailing slash
	APIPrefix  string // mounted path prefix, default "/api"
	AuthMode   model.AuthMode
	AdminKey   string // static key for privileged endpoints; may be empty

	FirebaseAPIKey    string
	FirebaseProjectID string
}

// ConsoleConfig holds settings specific to the manager web console.
type ConsoleConfig struct {
	Addr      string // listen address (default ":8090")
	LogLevel  string
	LogFormat string
	DBPath    string // SQLite session database (":memory:" for tests)
	Secure    bool   // secure cookies (HTTPS deployments)
}

// Load reads the shared configuration from the environment. A .env
// file in the working directory is loaded first when present; real
// environment variables win over .env values.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:        NormalizeBaseURL(envOr("VOIRIE_API_BASE_URL", "http://localhost:8081")),
		APIPrefix:         NormalizePrefix(envOr("VOIRIE_API_PREFIX", "/api")),
		AuthMode:          model.ParseAuthMode(os.Getenv("VOIRIE_AUTH_MODE")),
		AdminKey:          strings.TrimSpace(os.Getenv("VOIRIE_ADMIN_API_KEY")),
		FirebaseAPIKey:    strings.TrimSpace(os.Getenv("VOIRIE_FIREBASE_API_KEY")),
		FirebaseProjectID: strings.TrimSpace(os.Getenv("VOIRIE_FIREBASE_PROJECT_ID")),
	}
}

// LoadConsole reads the console server settings from the environment.
func LoadConsole() *ConsoleConfig {
	return &ConsoleConfig{
		Addr:      envOr("VOIRIE_CONSOLE_ADDR", ":8090"),
		LogLevel:  envOr("VOIRIE_LOG_LEVEL", "info"),
		LogFormat: envOr("VOIRIE_LOG_FORMAT", "text"),
		DBPath:    envOr("VOIRIE_CONSOLE_DB", "console.db"),
		Secure:    strings.EqualFold(os.Getenv("VOIRIE_CONSOLE_SECURE"), "true"),
	}
}

// APIRoot returns the base URL with the path prefix appended, e.g.
// "http://localhost:8081/api".
func (c *Config) APIRoot() string {
	return c.APIBaseURL + c.APIPrefix
}

// NormalizeBaseURL trims whitespace and trailing slashes.
func NormalizeBaseURL(v string) string {
	return strings.TrimRight(strings.TrimSpace(v), "/")
}

// NormalizePrefix ensures a leading slash; "" and "/" both collapse to
// the empty prefix.
func NormalizePrefix(v string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" || trimmed == "/" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "/") {
		return "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
