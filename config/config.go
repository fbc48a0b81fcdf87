// Package config loads CLI configuration from an optional config file,
// an optional .env file, and LT_* environment variables. Values here are
// defaults only: command-line flags always win.
package config

import (
	"time"

	"github.com/kbukum/lightning-transcriber/logger"
)

// Config is the application configuration.
type Config struct {
	// Model is the default transcription model.
	Model string `mapstructure:"model" json:"model"`
	// BatchSize is the default engine batch size.
	BatchSize int `mapstructure:"batch_size" json:"batch_size" validate:"omitempty,gt=0"`
	// Quant is the default weight quantization ("4bit", "8bit", or empty).
	Quant string `mapstructure:"quant" json:"quant" validate:"omitempty,oneof=4bit 8bit"`
	// Language is an optional language hint forwarded to the engine.
	Language string `mapstructure:"language" json:"language"`
	// Backend selects the transcription backend.
	Backend string `mapstructure:"backend" json:"backend" validate:"omitempty,oneof=mlx whisper"`
	// Timeout bounds a single transcription run. Zero means no timeout.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`

	Python  PythonConfig  `mapstructure:"python" json:"python"`
	Whisper WhisperConfig `mapstructure:"whisper" json:"whisper"`
	Logging logger.Config `mapstructure:"logging" json:"logging"`
}

// PythonConfig configures the host Python runtime.
type PythonConfig struct {
	// Binary is the interpreter to use. Empty means resolve from PATH.
	Binary string `mapstructure:"binary" json:"binary"`
}

// WhisperConfig configures the optional faster-whisper sidecar backend.
type WhisperConfig struct {
	URL     string        `mapstructure:"url" json:"url"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

// ApplyDefaults fills in defaults for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = "mlx"
	}
	c.Logging.ApplyDefaults()
}
