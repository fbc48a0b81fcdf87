package cli

import "github.com/kbukum/lightning-transcriber/transcription"

// Output schemas. Field order here fixes the key order of the emitted
// JSON document, so keep these in sync with the documented contract.

// checkResult is the --check-deps output.
type checkResult struct {
	DependenciesInstalled bool `json:"dependencies_installed"`
}

// installResult is the --install-deps output.
type installResult struct {
	InstallationSuccess bool `json:"installation_success"`
}

// preflightResult reports a failure before the engine was ever invoked:
// missing audio path, missing dependency, or missing file.
type preflightResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// failureResult reports an engine failure. Quant is a pointer so full
// precision marshals as null.
type failureResult struct {
	Success   bool    `json:"success"`
	Error     string  `json:"error"`
	Model     string  `json:"model"`
	BatchSize int     `json:"batch_size"`
	Quant     *string `json:"quant"`
}

// successResult reports a completed transcription.
type successResult struct {
	Success   bool                    `json:"success"`
	Text      string                  `json:"text"`
	Segments  []transcription.Segment `json:"segments"`
	Language  string                  `json:"language"`
	Model     string                  `json:"model"`
	BatchSize int                     `json:"batch_size"`
	Quant     *string                 `json:"quant"`
}
