package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/myreply/docket/pkg/middleware"
)

const EnvDocketAPIBasePath = "DOCKET_API_BASE_PATH"

// APIConfig holds API surface settings.
type APIConfig struct {
	BasePath string                `toml:"base_path"`
	CORS     middleware.CORSConfig `toml:"cors"`
}

// Merge overwrites non-zero fields from overlay.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if v := os.Getenv(EnvDocketAPIBasePath); v != "" {
		c.BasePath = v
	}

	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /: %q", c.BasePath)
	}
	c.BasePath = strings.TrimSuffix(c.BasePath, "/")

	return c.CORS.Finalize()
}
