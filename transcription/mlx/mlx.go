// Package mlx implements transcription.Provider on top of the
// lightning-whisper-mlx Python package. Each call runs a short python -c
// shim that loads the engine, transcribes one file, and reports back as a
// single JSON line on the shim's stdout.
package mlx

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/kbukum/lightning-transcriber/logger"
	"github.com/kbukum/lightning-transcriber/provider"
	"github.com/kbukum/lightning-transcriber/python"
	"github.com/kbukum/lightning-transcriber/transcription"
)

const (
	// ProviderName is the registered name for the MLX provider.
	ProviderName = "mlx"
	// ModuleName is the Python module the engine lives in.
	ModuleName = "lightning_whisper_mlx"
	// PackageName is the pip-installable package name.
	PackageName = "lightning-whisper-mlx"

	// DefaultModel is the engine model used when none is configured.
	DefaultModel = "distil-medium.en"
	// DefaultBatchSize is the engine batch size used when none is configured.
	DefaultBatchSize = 12
)

// shimScript is the python -c program that drives the engine. Parameters
// come in as argv so no value is ever interpolated into Python source.
// On an engine exception it prints a JSON failure line and exits 0, so a
// non-zero exit always means something outside the engine went wrong.
const shimScript = `
import json, sys

def main():
    audio, model, batch, quant, language = sys.argv[1:6]
    batch = int(batch)
    quant = quant or None
    language = language or None
    try:
        from lightning_whisper_mlx import LightningWhisperMLX
        whisper = LightningWhisperMLX(model=model, batch_size=batch, quant=quant)
        if language:
            result = whisper.transcribe(audio_path=audio, language=language)
        else:
            result = whisper.transcribe(audio_path=audio)
        segments = []
        for seg in result.get("segments") or []:
            if isinstance(seg, dict):
                segments.append({
                    "start": float(seg.get("start", 0.0)),
                    "end": float(seg.get("end", 0.0)),
                    "text": seg.get("text", ""),
                })
            elif isinstance(seg, (list, tuple)) and len(seg) >= 3:
                segments.append({
                    "start": float(seg[0]) / 1000.0,
                    "end": float(seg[1]) / 1000.0,
                    "text": seg[2],
                })
        print(json.dumps({
            "success": True,
            "text": result.get("text", ""),
            "segments": segments,
            "language": result.get("language") or "",
        }))
    except Exception as e:
        print(json.dumps({"success": False, "error": str(e)}))

main()
`

// Config holds configuration for the MLX transcription provider.
type Config struct {
	Model     string        `json:"model" yaml:"model"`
	BatchSize int           `json:"batch_size" yaml:"batch_size"`
	Quant     *string       `json:"quant,omitempty" yaml:"quant"`
	Language  string        `json:"language,omitempty" yaml:"language"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
}

// Provider implements transcription.Provider using lightning-whisper-mlx.
type Provider struct {
	cfg     Config
	runtime python.Runtime
	log     *logger.Logger
}

// NewProvider creates a new MLX transcription provider.
func NewProvider(runtime python.Runtime, cfg Config) *Provider {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Provider{
		cfg:     cfg,
		runtime: runtime,
		log:     logger.WithComponent(ProviderName),
	}
}

// Factory returns a provider.Factory that creates MLX Provider instances
// from a generic config map.
func Factory(runtime python.Runtime) provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		mc := Config{}
		if v, ok := cfg["model"].(string); ok {
			mc.Model = v
		}
		if v, ok := cfg["batch_size"].(int); ok {
			mc.BatchSize = v
		}
		if v, ok := cfg["quant"].(string); ok && v != "" {
			mc.Quant = &v
		}
		if v, ok := cfg["language"].(string); ok {
			mc.Language = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			mc.Timeout = v
		}
		return NewProvider(runtime, mc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the lightning-whisper-mlx module can be imported.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return p.runtime.ModuleAvailable(ctx, ModuleName)
}

// Transcribe runs the engine shim against the audio file and returns the
// transcription. Failures the engine reports itself come back as
// *transcription.EngineError with the engine's message verbatim.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := p.runtime.Run(ctx, shimScript, p.shimArgs(req))
	p.log.Debug("engine shim finished", logger.Fields(
		logger.FieldAudioPath, req.AudioPath,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))

	if result != nil && len(result.Stdout) > 0 {
		var out shimResult
		if jsonErr := json.Unmarshal(result.Stdout, &out); jsonErr == nil {
			return out.toResponse()
		}
	}
	if err != nil {
		if result != nil {
			if tail := result.StderrTail(5); tail != "" {
				return nil, &transcription.EngineError{Message: tail}
			}
		}
		return nil, &transcription.EngineError{Message: err.Error()}
	}
	return nil, &transcription.EngineError{Message: "engine produced no parseable output"}
}

// shimArgs builds the shim's argv from the request, falling back to the
// provider config for unset fields.
func (p *Provider) shimArgs(req transcription.Request) []string {
	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	batch := p.cfg.BatchSize
	if req.BatchSize > 0 {
		batch = req.BatchSize
	}
	quant := ""
	switch {
	case req.Quant != nil:
		quant = *req.Quant
	case p.cfg.Quant != nil:
		quant = *p.cfg.Quant
	}
	language := p.cfg.Language
	if req.Language != "" {
		language = req.Language
	}
	return []string{req.AudioPath, model, strconv.Itoa(batch), quant, language}
}

// --- shim output ---

type shimResult struct {
	Success  bool                    `json:"success"`
	Text     string                  `json:"text"`
	Segments []transcription.Segment `json:"segments"`
	Language string                  `json:"language"`
	Error    string                  `json:"error"`
}

func (s *shimResult) toResponse() (*transcription.Response, error) {
	if !s.Success {
		return nil, &transcription.EngineError{Message: s.Error}
	}
	segments := s.Segments
	if segments == nil {
		segments = []transcription.Segment{}
	}
	return &transcription.Response{
		Text:     s.Text,
		Segments: segments,
		Language: s.Language,
	}, nil
}
