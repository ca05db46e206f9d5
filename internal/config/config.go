// Package config loads the memory bank daemon's configuration: graph
// engine connection settings and the two transports' listen addresses.
// Precedence follows the teacher's layering: environment variables >
// config file > defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds every setting the daemon needs to start.
type Config struct {
	Store     StoreConfig     `toml:"store"`
	Server    ServerConfig    `toml:"server"`
	Transport TransportConfig `toml:"transport"`
	Log       LogConfig       `toml:"log"`
}

// StoreConfig holds the graph engine connection the Client Registry opens
// a Store Client against.
type StoreConfig struct {
	URI        string `toml:"uri"`
	Username   string `toml:"username"`
	Password   string `toml:"password"`
	DBFilename string `toml:"db_filename"` // on-disk marker directory per project root
}

// ServerConfig holds MCP server metadata reported on initialize.
type ServerConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// TransportConfig holds listen settings for the HTTP/SSE transport. The
// duplex line transport has no configuration of its own: it always speaks
// over stdio.
type TransportConfig struct {
	Mode           string `toml:"mode"` // "stdio" or "http"
	Host           string `toml:"host"`
	Port           string `toml:"port"`            // JSON-RPC POST/GET/DELETE endpoint
	HTTPStreamPort string `toml:"http_stream_port"` // reserved for a split SSE listener; falls back to Port when empty
	CORSOrigins    string `toml:"cors_origins"`
}

// LogConfig holds logging configuration. Level is an integer 0-4 matching
// the DEBUG environment variable from spec §6, rather than a named level.
type LogConfig struct {
	Level int `toml:"level"`
}

// Load builds a Config from defaults, an optional TOML file, then
// environment variables, in that order of increasing precedence.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Store: StoreConfig{
			URI:        "bolt://localhost:7687",
			Username:   "neo4j",
			Password:   "neo4j",
			DBFilename: "memory-bank.db",
		},
		Server: ServerConfig{
			Name:    "membankd",
			Version: "0.1.0",
		},
		Transport: TransportConfig{
			Mode:        "stdio",
			Host:        "0.0.0.0",
			Port:        "8765",
			CORSOrigins: "*",
		},
		Log: LogConfig{Level: 2},
	}

	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(configPath string) error {
	path := resolveConfigPath(configPath)
	if path == "" {
		return nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("MEMBANK_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat("membank.toml"); err == nil {
		return "membank.toml"
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := home + "/.config/membank/membank.toml"
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyEnv overlays the environment variables named in spec §6
// ("DB_FILENAME", "PORT", "HTTP_STREAM_PORT", "HOST", "DEBUG"), plus the
// Neo4j connection variables the Store Client needs that the kernel
// specification leaves as an external interface detail but that any
// runnable daemon requires.
func (c *Config) applyEnv() {
	envOverride("NEO4J_URI", &c.Store.URI)
	envOverride("NEO4J_USER", &c.Store.Username)
	envOverride("NEO4J_PASSWORD", &c.Store.Password)
	envOverride("DB_FILENAME", &c.Store.DBFilename)

	envOverride("MEMBANK_TRANSPORT", &c.Transport.Mode)
	envOverride("HOST", &c.Transport.Host)
	envOverride("PORT", &c.Transport.Port)
	envOverride("HTTP_STREAM_PORT", &c.Transport.HTTPStreamPort)
	envOverride("MEMBANK_CORS_ORIGINS", &c.Transport.CORSOrigins)

	if v := os.Getenv("DEBUG"); v != "" {
		if level, err := strconv.Atoi(v); err == nil && level >= 0 && level <= 4 {
			c.Log.Level = level
		}
	}
}

// Validate checks that required fields are present for the selected
// transport mode.
func (c *Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode: %q (must be \"stdio\" or \"http\")", c.Transport.Mode)
	}
	if c.Store.URI == "" {
		return fmt.Errorf("store.uri is required: set NEO4J_URI or store.uri in the config file")
	}
	return nil
}

// StreamPort returns the HTTP/SSE listen port, falling back to the main
// JSON-RPC port when no separate stream port is configured.
func (c *Config) StreamPort() string {
	if c.Transport.HTTPStreamPort != "" {
		return c.Transport.HTTPStreamPort
	}
	return c.Transport.Port
}

// SlogLevel maps the 0-4 DEBUG verbosity scale onto log/slog's levels:
// 0-1 are error/warn, 2 is the default info, 3-4 are debug.
func (l LogConfig) SlogLevel() slog.Level {
	switch {
	case l.Level <= 0:
		return slog.LevelError
	case l.Level == 1:
		return slog.LevelWarn
	case l.Level == 2:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

func envOverride(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
