package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the optional application configuration. Command-line
// flags always take precedence over values found here.
type Config struct {
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`
	Output OutputConfig `yaml:"output"`
}

// FFmpegConfig contains settings for locating the external tool
type FFmpegConfig struct {
	// Path overrides the ffmpeg executable path (default: "ffmpeg" on PATH)
	Path string `yaml:"path"`
}

// OutputConfig contains output path generation settings
type OutputConfig struct {
	// DefaultDirectory is used when --output is omitted in single-file mode
	DefaultDirectory string `yaml:"default_directory"`

	// TimestampSubsecondDigits, when set, overrides the per-mode default for
	// sub-second precision in generated [timestamp] substitutions
	// (single-file mode: 4, batch mode: 0)
	TimestampSubsecondDigits *int `yaml:"timestamp_subsecond_digits"`
}

// Load reads and parses the configuration from the specified YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
