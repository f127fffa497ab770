package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/nspcc-dev/wirecodec/pkg/config/limits"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultLogLevel is used when no LogLevel is configured.
	DefaultLogLevel = "info"
	// DefaultFormat is used when no Format is configured.
	DefaultFormat = "hex"
)

// Version is the version of the tool, set at build time.
var Version = "dev"

// Formats lists supported data encodings.
var Formats = []string{"hex", "base64", "base58"}

// Config top level struct representing the config for the tool.
type Config struct {
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
	Decoder                  DecoderConfiguration     `yaml:"Decoder"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ApplicationConfiguration: ApplicationConfiguration{
			LogLevel:    DefaultLogLevel,
			LogEncoding: "console",
			Format:      DefaultFormat,
		},
		Decoder: DecoderConfiguration{
			MaxArraySize: limits.MaxArraySize,
		},
	}
}

// LoadFile loads config from the provided path, missing settings are taken
// from Default.
func LoadFile(configPath string) (Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config '%s' doesn't exist", configPath)
	}

	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return Parse(configData)
}

// Parse decodes YAML configuration data, unknown fields are an error.
func Parse(configData []byte) (Config, error) {
	config := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(configData))
	decoder.KnownFields(true)
	err := decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if !slices.Contains(Formats, c.ApplicationConfiguration.Format) {
		return fmt.Errorf("unknown Format %q", c.ApplicationConfiguration.Format)
	}
	switch c.ApplicationConfiguration.LogEncoding {
	case "console", "json":
	default:
		return fmt.Errorf("unknown LogEncoding %q", c.ApplicationConfiguration.LogEncoding)
	}
	return c.Decoder.Validate()
}
