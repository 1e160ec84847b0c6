package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StreamConfig represents stream pipeline configuration
type StreamConfig struct {
	// Encoding is the character encoding used to decode input bytes
	Encoding string `yaml:"encoding"`

	// ChunkSize is the read size in bytes for streaming input
	ChunkSize int `yaml:"chunk_size"`

	// Decompress selects transparent input decompression (gzip, zstd)
	Decompress string `yaml:"decompress"`

	// Separator is the line separator; empty means universal newlines
	Separator string `yaml:"separator"`

	// KeepEnds retains line terminators on emitted lines
	KeepEnds bool `yaml:"keep_ends"`
}

// Config represents pathsieve configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs will be written
	LogDir string `yaml:"log_dir"`

	// Color controls colorized output (auto, always, never)
	Color string `yaml:"color"`

	// Stream contains stream pipeline configuration
	Stream StreamConfig `yaml:"stream"`

	// Groups maps group names to lists of pathspec arguments that can be
	// referenced on the command line instead of spelling out the specs
	Groups map[string][]string `yaml:"groups"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		LogDir:   ".pathsieve/logs",
		Color:    "auto",
		Stream: StreamConfig{
			Encoding:   "utf-8",
			ChunkSize:  64 * 1024,
			Decompress: "",
			Separator:  "",
			KeepEnds:   false,
		},
		Groups: nil,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlCfg Config
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.Color != "" {
		cfg.Color = yamlCfg.Color
	}
	if yamlCfg.Groups != nil {
		cfg.Groups = yamlCfg.Groups
	}

	// Merge Stream config - need to check which fields the section
	// actually provided, since zero values are legitimate settings
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if streamSection, exists := rawMap["stream"]; exists && streamSection != nil {
			stream := yamlCfg.Stream
			streamMap, _ := streamSection.(map[string]interface{})

			if _, exists := streamMap["encoding"]; exists {
				cfg.Stream.Encoding = stream.Encoding
			}
			if _, exists := streamMap["chunk_size"]; exists {
				cfg.Stream.ChunkSize = stream.ChunkSize
			}
			if _, exists := streamMap["decompress"]; exists {
				cfg.Stream.Decompress = stream.Decompress
			}
			if _, exists := streamMap["separator"]; exists {
				cfg.Stream.Separator = stream.Separator
			}
			if _, exists := streamMap["keep_ends"]; exists {
				cfg.Stream.KeepEnds = stream.KeepEnds
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .pathsieve/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".pathsieve", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(logLevel *string, color *string, encoding *string, chunkSize *int, decompress *string) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if color != nil {
		c.Color = *color
	}
	if encoding != nil {
		c.Stream.Encoding = *encoding
	}
	if chunkSize != nil {
		c.Stream.ChunkSize = *chunkSize
	}
	if decompress != nil {
		c.Stream.Decompress = *decompress
	}
}

// Group returns the pathspec arguments registered under the given group
// name. The second return value reports whether the group exists.
func (c *Config) Group(name string) ([]string, bool) {
	specs, ok := c.Groups[name]
	return specs, ok
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	// Validate log_level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	// Validate color mode
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	// Validate stream configuration
	if c.Stream.ChunkSize <= 0 {
		return fmt.Errorf("stream.chunk_size must be > 0, got %d", c.Stream.ChunkSize)
	}
	switch c.Stream.Decompress {
	case "", "gzip", "zstd":
	default:
		return fmt.Errorf("invalid stream.decompress %q, must be one of: gzip, zstd", c.Stream.Decompress)
	}

	// Validate groups
	for name, specs := range c.Groups {
		if name == "" {
			return fmt.Errorf("group name cannot be empty")
		}
		if len(specs) == 0 {
			return fmt.Errorf("group %q has no pathspecs", name)
		}
	}

	return nil
}
