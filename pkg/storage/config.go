package storage

import (
	"fmt"
	"os"
)

// Storage driver identifiers.
const (
	DriverAzure      = "azure"
	DriverFilesystem = "filesystem"
)

// Config holds storage driver selection and connection parameters.
// ContainerName and ConnectionString apply to the azure driver; Root applies
// to the filesystem driver.
type Config struct {
	Driver           string `toml:"driver"`
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	Root             string `toml:"root"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Driver           string
	ContainerName    string
	ConnectionString string
	Root             string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Driver != "" {
		c.Driver = overlay.Driver
	}
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.Root != "" {
		c.Root = overlay.Root
	}
}

func (c *Config) loadDefaults() {
	if c.Driver == "" {
		c.Driver = DriverFilesystem
	}
	if c.ContainerName == "" {
		c.ContainerName = "artifacts"
	}
	if c.Root == "" {
		c.Root = "generated_pdfs"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Driver != "" {
		if v := os.Getenv(env.Driver); v != "" {
			c.Driver = v
		}
	}
	if env.ContainerName != "" {
		if v := os.Getenv(env.ContainerName); v != "" {
			c.ContainerName = v
		}
	}
	if env.ConnectionString != "" {
		if v := os.Getenv(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
	}
	if env.Root != "" {
		if v := os.Getenv(env.Root); v != "" {
			c.Root = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Driver {
	case DriverAzure:
		if c.ContainerName == "" {
			return fmt.Errorf("container_name required")
		}
		if c.ConnectionString == "" {
			return fmt.Errorf("connection_string required")
		}
	case DriverFilesystem:
		if c.Root == "" {
			return fmt.Errorf("root required")
		}
	default:
		return fmt.Errorf("unknown driver: %q", c.Driver)
	}
	return nil
}
