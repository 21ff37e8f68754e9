package cli

import (
	"os"
	"strings"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/session"
)

// Config holds CLI configuration. The auth and admin endpoints usually live
// on one server, but each can be overridden individually for split
// deployments.
type Config struct {
	ServerURL     string
	AuthEndpoint  string
	AdminEndpoint string
	SessionDir    string
	Output        string
	Verbose       bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:     getEnvOrDefault("POEHALI_SERVER", "http://localhost:8080"),
		AuthEndpoint:  os.Getenv("POEHALI_AUTH_URL"),
		AdminEndpoint: os.Getenv("POEHALI_ADMIN_URL"),
		SessionDir:    getEnvOrDefault("POEHALI_SESSION_DIR", session.DefaultDir()),
		Output:        "text",
		Verbose:       false,
	}
}

// AuthURL returns the full auth endpoint URL
func (c *Config) AuthURL() string {
	if c.AuthEndpoint != "" {
		return c.AuthEndpoint
	}
	return strings.TrimSuffix(c.ServerURL, "/") + "/api/auth"
}

// AdminURL returns the full admin endpoint URL
func (c *Config) AdminURL() string {
	if c.AdminEndpoint != "" {
		return c.AdminEndpoint
	}
	return strings.TrimSuffix(c.ServerURL, "/") + "/api/admin"
}

// HealthURL returns the health check endpoint URL
func (c *Config) HealthURL() string {
	return strings.TrimSuffix(c.ServerURL, "/") + "/api/health"
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
