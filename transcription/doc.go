// Package transcription defines the provider interface and common types
// for interacting with speech-to-text backends.
//
// It follows the provider pattern with a pluggable registry for
// runtime-selectable backends.
//
// # Backends
//
//   - transcription/mlx: lightning-whisper-mlx via the host Python runtime (default)
//   - transcription/whisper: faster-whisper HTTP sidecar
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	reg.RegisterFactory(mlx.ProviderName, mlx.Factory(runtime))
//	engine, err := reg.Create(mlx.ProviderName, cfg)
//	result, err := engine.Transcribe(ctx, req)
package transcription
