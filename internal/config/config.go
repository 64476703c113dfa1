// Package config loads neoctl settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable, e.g. NEOCTL_ROOT.
const Prefix = "NEOCTL"

// Config holds neoctl configuration. Command-line flags override it.
type Config struct {
	Root            string `envconfig:"ROOT" default:"~/neo4j"`
	ImportDirectory string `envconfig:"IMPORT_DIRECTORY" default:"."`
	Password        string `envconfig:"PASSWORD"`

	Image         string `envconfig:"IMAGE" default:"neo4j:latest"`
	AdminImport   string `envconfig:"ADMIN_IMPORT" default:"bin/neo4j-admin import"`
	PageCacheSize string `envconfig:"PAGECACHE_SIZE" default:"1024M"`
	HeapMaxSize   string `envconfig:"HEAP_MAX_SIZE" default:"1024M"`
	HTTPPort      int    `envconfig:"HTTP_PORT" default:"7474"`
	BoltPort      int    `envconfig:"BOLT_PORT" default:"7687"`
	Docker        string `envconfig:"DOCKER"`

	BoltURI  string `envconfig:"BOLT_URI" default:"bolt://localhost:7687"`
	Database string `envconfig:"DATABASE" default:"neo4j"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

// Load reads an optional .env file from the working directory, then the
// NEOCTL_* environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("processing environment configuration: %w", err)
	}
	return &cfg, nil
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Abs(p)
}
