/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/freyjastate/pkg/persistence"
	"github.com/ssargent/freyjastate/pkg/stream"
)

// Config represents the freyjastate configuration
type Config struct {
	DataDir     string      `yaml:"data_dir"`
	Persistence Persistence `yaml:"persistence"`
	Stream      Stream      `yaml:"stream"`
	Logging     Logging     `yaml:"logging"`
}

// Persistence contains persistence engine limits
type Persistence struct {
	ScratchSize int `yaml:"scratch_size"`
	MaxAlloc    int `yaml:"max_alloc"`    // 0 = unlimited
	MaxElements int `yaml:"max_elements"` // 0 = unlimited
}

// Stream contains file stream configuration
type Stream struct {
	BufferSize    int           `yaml:"buffer_size"`
	FsyncInterval time.Duration `yaml:"fsync_interval"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Persistence: Persistence{
			ScratchSize: persistence.DefaultScratchSize,
			MaxAlloc:    16 << 20,
			MaxElements: 1 << 20,
		},
		Stream: Stream{
			BufferSize:    stream.DefaultBufferSize,
			FsyncInterval: 0,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path. Fields missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig writes a default configuration, optionally pointing at
// dataDir, and returns it
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// Validate rejects settings the engine cannot run with
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must be set")
	}
	if c.Persistence.ScratchSize < 0 || c.Persistence.MaxAlloc < 0 || c.Persistence.MaxElements < 0 {
		return fmt.Errorf("persistence limits must not be negative")
	}
	if c.Stream.BufferSize < 0 || c.Stream.FsyncInterval < 0 {
		return fmt.Errorf("stream settings must not be negative")
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a configured level name to a slog level. The empty name
// means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

// EngineOptions returns the persistence options the config describes
func (c *Config) EngineOptions(logger *slog.Logger) []persistence.Option {
	return []persistence.Option{
		persistence.WithLogger(logger),
		persistence.WithScratchSize(c.Persistence.ScratchSize),
		persistence.WithMaxAlloc(c.Persistence.MaxAlloc),
		persistence.WithMaxElements(c.Persistence.MaxElements),
	}
}

// WriterConfig returns the file writer settings for path. Snapshot files
// are always rewritten from scratch.
func (c *Config) WriterConfig(path string) stream.FileWriterConfig {
	return stream.FileWriterConfig{
		FilePath:      path,
		FsyncInterval: c.Stream.FsyncInterval,
		BufferSize:    c.Stream.BufferSize,
		Truncate:      true,
	}
}

// ReaderConfig returns the file reader settings for path
func (c *Config) ReaderConfig(path string) stream.FileReaderConfig {
	return stream.FileReaderConfig{
		FilePath:   path,
		BufferSize: c.Stream.BufferSize,
	}
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	// Use OS-specific default locations
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./freyjastate.yaml"
	}

	// For Linux/macOS, use ~/.config/freyjastate/config.yaml
	configDir := filepath.Join(homeDir, ".config", "freyjastate")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
