package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/lightning-transcriber/config"
	"github.com/kbukum/lightning-transcriber/transcription/mlx"
	"github.com/kbukum/lightning-transcriber/validation"
)

// Options is the fully resolved invocation: flags layered over config
// defaults. Quant and batch size are validated before any mode runs.
type Options struct {
	AudioPath   string        `json:"audio_path"`
	Model       string        `json:"model" validate:"required"`
	BatchSize   int           `json:"batch_size" validate:"gt=0"`
	Quant       string        `json:"quant" validate:"omitempty,oneof=4bit 8bit"`
	Language    string        `json:"language"`
	Timeout     time.Duration `json:"timeout"`
	CheckDeps   bool          `json:"check_deps"`
	InstallDeps bool          `json:"install_deps"`
	ShowVersion bool          `json:"show_version"`
}

// QuantPtr returns the quant choice as a pointer, nil for full precision.
// The output schema needs the pointer form so absent quant marshals as null.
func (o *Options) QuantPtr() *string {
	if o.Quant == "" {
		return nil
	}
	q := o.Quant
	return &q
}

// parseOptions parses args with config values as flag defaults. Parse and
// validation failures are reported on errOut; nothing is written to stdout.
func parseOptions(args []string, cfg *config.Config, errOut io.Writer) (*Options, error) {
	o := &Options{}

	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&o.Model, "model", stringOr(cfg.Model, mlx.DefaultModel), "Model to use")
	fs.IntVar(&o.BatchSize, "batch-size", intOr(cfg.BatchSize, mlx.DefaultBatchSize), "Batch size")
	fs.StringVar(&o.Quant, "quant", cfg.Quant, "Quantization level (4bit or 8bit)")
	fs.StringVar(&o.Language, "language", cfg.Language, "Language hint for the engine")
	fs.DurationVar(&o.Timeout, "timeout", cfg.Timeout, "Transcription timeout (0 = none)")
	fs.BoolVar(&o.CheckDeps, "check-deps", false, "Check if dependencies are installed")
	fs.BoolVar(&o.InstallDeps, "install-deps", false, "Install dependencies")
	fs.BoolVar(&o.ShowVersion, "version", false, "Print version information")
	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s [flags] [audio_path]\n\nFlags:\n%s", appName, fs.FlagUsages())
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.AudioPath = fs.Arg(0)

	if err := validation.Validate(o); err != nil {
		fmt.Fprintf(errOut, "%s: %v\n", appName, err)
		return nil, err
	}
	return o, nil
}

func stringOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func intOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
