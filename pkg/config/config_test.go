package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/freyjastate/pkg/persistence"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "./data", config.DataDir)
	assert.Equal(t, 512, config.Persistence.ScratchSize)
	assert.Equal(t, 16<<20, config.Persistence.MaxAlloc)
	assert.Equal(t, 1<<20, config.Persistence.MaxElements)
	assert.Equal(t, 4096, config.Stream.BufferSize)
	assert.Equal(t, time.Duration(0), config.Stream.FsyncInterval)
	assert.Equal(t, "info", config.Logging.Level)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "freyjastate_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "config.yaml")
		expectedConfig := &Config{
			DataDir: "/custom/data",
			Persistence: Persistence{
				ScratchSize: 64,
				MaxAlloc:    1024,
				MaxElements: 10,
			},
			Stream: Stream{
				BufferSize:    8192,
				FsyncInterval: 250 * time.Millisecond,
			},
			Logging: Logging{
				Level: "debug",
			},
		}

		err = SaveConfig(expectedConfig, configPath)
		require.NoError(t, err)

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expectedConfig, loadedConfig)
	})

	t.Run("missing fields keep defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "partial.yaml")
		err := os.WriteFile(configPath, []byte("data_dir: /srv/state\nstream:\n  fsync_interval: 1s\n"), 0600)
		require.NoError(t, err)

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "/srv/state", loadedConfig.DataDir)
		assert.Equal(t, time.Second, loadedConfig.Stream.FsyncInterval)
		assert.Equal(t, 4096, loadedConfig.Stream.BufferSize)
		assert.Equal(t, 512, loadedConfig.Persistence.ScratchSize)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := LoadConfig("/non/existent/config.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("load invalid yaml", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "freyjastate_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "invalid.yaml")
		err = os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644)
		require.NoError(t, err)

		_, err = LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("load invalid values", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		err := os.WriteFile(configPath, []byte("logging:\n  level: loud\n"), 0600)
		require.NoError(t, err)

		_, err = LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown log level")
	})
}

func TestSaveConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "freyjastate_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	config := DefaultConfig()

	err = SaveConfig(config, configPath)
	require.NoError(t, err)

	// Verify file exists
	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// Verify content
	loadedConfig, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loadedConfig)
}

func TestBootstrapConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "freyjastate_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	dataDir := "/custom/data/dir"

	config, err := BootstrapConfig(configPath, dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, config.DataDir)
	assert.Equal(t, "info", config.Logging.Level)

	// Verify file was created
	assert.True(t, ConfigExists(configPath))

	// Verify we can load it back
	loadedConfig, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loadedConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unlimited", func(c *Config) { c.Persistence.MaxAlloc = 0; c.Persistence.MaxElements = 0 }, false},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
		{"negative max alloc", func(c *Config) { c.Persistence.MaxAlloc = -1 }, true},
		{"negative buffer", func(c *Config) { c.Stream.BufferSize = -1 }, true},
		{"negative fsync", func(c *Config) { c.Stream.FsyncInterval = -time.Second }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestEngineOptions(t *testing.T) {
	config := DefaultConfig()
	config.Persistence.MaxAlloc = 4

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	c, err := persistence.NewRestore(bytes.NewReader([]byte{0, 0, 0, 5, 1, 2, 3, 4, 5}), config.EngineOptions(logger)...)
	require.NoError(t, err)

	var buf []byte
	err = c.SizedBuffer(&buf)
	assert.ErrorIs(t, err, persistence.ErrOutOfMemory)
	assert.Contains(t, logs.String(), "cannot allocate buffer")
}

func TestStreamConfigs(t *testing.T) {
	config := DefaultConfig()
	config.Stream.FsyncInterval = time.Second

	w := config.WriterConfig("/tmp/a.bin")
	assert.Equal(t, "/tmp/a.bin", w.FilePath)
	assert.Equal(t, time.Second, w.FsyncInterval)
	assert.Equal(t, 4096, w.BufferSize)
	assert.True(t, w.Truncate)

	r := config.ReaderConfig("/tmp/a.bin")
	assert.Equal(t, "/tmp/a.bin", r.FilePath)
	assert.Equal(t, int64(0), r.StartOffset)
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "freyjastate")
	assert.Contains(t, path, "config.yaml")
}

func TestConfigExists(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "freyjastate_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	existingPath := filepath.Join(tmpDir, "exists.yaml")
	nonExistentPath := filepath.Join(tmpDir, "does-not-exist.yaml")

	// Create a file
	err = os.WriteFile(existingPath, []byte("test"), 0644)
	require.NoError(t, err)

	assert.True(t, ConfigExists(existingPath))
	assert.False(t, ConfigExists(nonExistentPath))
}

func TestConfigYAMLMarshalling(t *testing.T) {
	config := &Config{
		DataDir: "/test/data",
		Persistence: Persistence{
			ScratchSize: 128,
		},
		Stream: Stream{
			BufferSize:    1024,
			FsyncInterval: 5 * time.Second,
		},
		Logging: Logging{
			Level: "warn",
		},
	}

	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fsync_interval: 5s")

	var unmarshalled Config
	err = yaml.Unmarshal(data, &unmarshalled)
	require.NoError(t, err)

	assert.Equal(t, config, &unmarshalled)
}

func TestSaveConfigErrorHandling(t *testing.T) {
	config := DefaultConfig()

	// A regular file where a directory is expected cannot be created over
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	err := SaveConfig(config, filepath.Join(blocker, "sub", "config.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create config directory")
}
