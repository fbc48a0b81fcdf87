// Package cli implements the transcriber's command-line contract: flag
// parsing, mode dispatch, and the single-line JSON output every
// invocation produces on stdout.
//
// Exit codes: 0 for every completed invocation, including engine and
// install failures (those are reported through the JSON document), 1 for
// transcription pre-flight failures (missing path, missing dependency,
// missing file), 2 for argument errors.
package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/kbukum/lightning-transcriber/config"
	goerrors "github.com/kbukum/lightning-transcriber/errors"
	"github.com/kbukum/lightning-transcriber/logger"
	"github.com/kbukum/lightning-transcriber/provider"
	"github.com/kbukum/lightning-transcriber/python"
	"github.com/kbukum/lightning-transcriber/transcription"
	"github.com/kbukum/lightning-transcriber/transcription/mlx"
	"github.com/kbukum/lightning-transcriber/transcription/whisper"
	"github.com/kbukum/lightning-transcriber/version"
)

const appName = "lightning-transcriber"

// audioPathRequiredMessage is part of the output contract; callers match
// on it verbatim.
const audioPathRequiredMessage = "Audio file path is required for transcription"

// App wires the CLI to its collaborators. Tests swap them out through
// Options; main runs with the defaults.
type App struct {
	cfg      *config.Config
	log      *logger.Logger
	runtime  python.Runtime
	registry *provider.Registry[transcription.Provider]
	engine   transcription.Provider // overrides registry lookup when set
	stdout   io.Writer
	stderr   io.Writer
}

// Option configures an App.
type Option func(*App)

// WithConfig sets the configuration, skipping config.Load.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) { a.cfg = cfg }
}

// WithRuntime sets the Python runtime.
func WithRuntime(rt python.Runtime) Option {
	return func(a *App) { a.runtime = rt }
}

// WithEngine pins the transcription engine, bypassing backend selection.
func WithEngine(engine transcription.Provider) Option {
	return func(a *App) { a.engine = engine }
}

// WithStdout sets the result stream.
func WithStdout(w io.Writer) Option {
	return func(a *App) { a.stdout = w }
}

// WithStderr sets the diagnostic stream.
func WithStderr(w io.Writer) Option {
	return func(a *App) { a.stderr = w }
}

// New creates an App. A broken config never aborts the process; the CLI
// falls back to defaults and reports the problem on stderr, keeping the
// JSON output contract intact.
func New(opts ...Option) *App {
	a := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	var cfgErr error
	if a.cfg == nil {
		a.cfg, cfgErr = config.Load()
		if a.cfg == nil {
			a.cfg = &config.Config{}
		}
	}
	a.cfg.ApplyDefaults()

	base := logger.New(&a.cfg.Logging, appName)
	logger.SetGlobalLogger(base)
	a.log = base.WithComponent("cli").WithFields(logger.Fields(
		logger.FieldInvocationID, uuid.NewString(),
	))
	if cfgErr != nil {
		a.log.Warn("config load failed, using defaults", logger.Fields(
			logger.FieldError, cfgErr.Error(),
		))
	}

	if a.runtime == nil {
		a.runtime = python.NewInterpreter(a.cfg.Python.Binary)
	}

	a.registry = transcription.NewRegistry()
	a.registry.RegisterFactory(mlx.ProviderName, mlx.Factory(a.runtime))
	a.registry.RegisterFactory(whisper.ProviderName, whisper.Factory())

	return a
}

// Run executes one invocation and returns the process exit code.
func (a *App) Run(args []string) int {
	opts, err := parseOptions(args, a.cfg, a.stderr)
	if err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx := context.Background()
	switch {
	case opts.ShowVersion:
		return a.emit(version.Get(), 0)
	case opts.CheckDeps:
		return a.runCheckDeps(ctx, opts)
	case opts.InstallDeps:
		return a.runInstallDeps(ctx)
	default:
		return a.runTranscribe(ctx, opts)
	}
}

// runCheckDeps resolves the engine and probes its availability. Always
// exits 0; the verdict lives in the JSON field.
func (a *App) runCheckDeps(ctx context.Context, opts *Options) int {
	engine, err := a.engineFor(opts)
	if err != nil {
		a.log.Error("backend resolution failed", logger.ErrorFields("check-deps", err))
		return a.emit(checkResult{DependenciesInstalled: false}, 0)
	}
	installed := engine.IsAvailable(ctx)
	a.log.Debug("dependency check finished", logger.Fields(
		logger.FieldBackend, engine.Name(),
		logger.FieldStatus, installed,
	))
	return a.emit(checkResult{DependenciesInstalled: installed}, 0)
}

// runInstallDeps installs the engine package with pip. Installer output is
// captured so only the JSON line reaches stdout; on failure the installer's
// stderr goes to our stderr for operator diagnosis. Always exits 0.
func (a *App) runInstallDeps(ctx context.Context) int {
	result, err := a.runtime.Install(ctx, mlx.PackageName)
	if err != nil {
		detail := err.Error()
		if result != nil {
			if tail := result.StderrTail(20); tail != "" {
				detail = tail
			}
		}
		fmt.Fprintf(a.stderr, "Installation failed: %s\n", detail)
		return a.emit(installResult{InstallationSuccess: false}, 0)
	}
	a.log.Info("package installed", logger.Fields("package", mlx.PackageName))
	return a.emit(installResult{InstallationSuccess: true}, 0)
}

// runTranscribe validates pre-flight conditions (exit 1 on failure), then
// runs the engine, mapping either outcome to the JSON schema (exit 0).
func (a *App) runTranscribe(ctx context.Context, opts *Options) int {
	if opts.AudioPath == "" {
		return a.emit(preflightResult{Success: false, Error: audioPathRequiredMessage}, 1)
	}

	engine, err := a.engineFor(opts)
	if err != nil {
		return a.emit(preflightResult{Success: false, Error: err.Error()}, 1)
	}

	if !engine.IsAvailable(ctx) {
		return a.emit(preflightResult{Success: false, Error: unavailableMessage(engine)}, 1)
	}

	if _, err := os.Stat(opts.AudioPath); err != nil {
		msg := goerrors.NotFound("Audio file", opts.AudioPath).Message
		return a.emit(preflightResult{Success: false, Error: msg}, 1)
	}

	resp, err := engine.Transcribe(ctx, transcription.Request{
		AudioPath: opts.AudioPath,
		Model:     opts.Model,
		BatchSize: opts.BatchSize,
		Quant:     opts.QuantPtr(),
		Language:  opts.Language,
	})
	if err != nil {
		a.log.Error("transcription failed", logger.ErrorFields("transcribe", err))
		return a.emit(failureResult{
			Success:   false,
			Error:     errorMessage(err),
			Model:     opts.Model,
			BatchSize: opts.BatchSize,
			Quant:     opts.QuantPtr(),
		}, 0)
	}

	segments := resp.Segments
	if segments == nil {
		segments = []transcription.Segment{}
	}
	return a.emit(successResult{
		Success:   true,
		Text:      resp.Text,
		Segments:  segments,
		Language:  resp.Language,
		Model:     opts.Model,
		BatchSize: opts.BatchSize,
		Quant:     opts.QuantPtr(),
	}, 0)
}

// engineFor resolves the transcription backend for this invocation.
func (a *App) engineFor(opts *Options) (transcription.Provider, error) {
	if a.engine != nil {
		return a.engine, nil
	}
	cfg := map[string]any{
		"model":      opts.Model,
		"batch_size": opts.BatchSize,
		"quant":      opts.Quant,
		"language":   opts.Language,
		"timeout":    opts.Timeout,
	}
	if a.cfg.Backend == whisper.ProviderName {
		cfg["url"] = a.cfg.Whisper.URL
		cfg["timeout"] = a.cfg.Whisper.Timeout
	}
	return a.registry.Create(a.cfg.Backend, cfg)
}

// emit writes v as a single JSON line to stdout and returns code.
func (a *App) emit(v any, code int) int {
	data, err := json.Marshal(v)
	if err != nil {
		// Result types marshal unconditionally; this path exists so a bug
		// still produces valid JSON on stdout.
		fmt.Fprintln(a.stdout, `{"success": false, "error": "failed to encode result"}`)
		a.log.Error("result encoding failed", logger.ErrorFields("emit", err))
		return code
	}
	fmt.Fprintln(a.stdout, string(data))
	return code
}

// unavailableMessage builds the pre-flight error for an unavailable
// backend. The MLX wording is part of the output contract.
func unavailableMessage(engine transcription.Provider) string {
	if engine.Name() == mlx.ProviderName {
		return goerrors.DependencyMissing(mlx.PackageName).Message
	}
	return fmt.Sprintf("%s backend is not available", engine.Name())
}

// errorMessage extracts the engine's own message when present so it is
// surfaced verbatim, falling back to the error string.
func errorMessage(err error) string {
	var engineErr *transcription.EngineError
	if stderrors.As(err, &engineErr) {
		return engineErr.Message
	}
	if appErr, ok := goerrors.AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}
