package transcription

// Request holds parameters for a transcription call.
type Request struct {
	// AudioPath is the path to the audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Model is the transcription model to use.
	Model string `json:"model,omitempty"`
	// BatchSize is the number of audio chunks processed per forward pass.
	BatchSize int `json:"batch_size,omitempty"`
	// Quant is the weight quantization level ("4bit" or "8bit"); nil means
	// full precision.
	Quant *string `json:"quant,omitempty"`
	// Language is the expected language of the audio (e.g. "en").
	Language string `json:"language,omitempty"`
}

// Response holds the result of a transcription call.
type Response struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Segments contains time-aligned transcript segments.
	Segments []Segment `json:"segments"`
	// Language is the detected or specified language.
	Language string `json:"language"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
}

// EngineError is a failure reported by the engine itself, as opposed to a
// transport or environment failure around it. Message carries the engine's
// own description verbatim so callers can surface it unchanged.
type EngineError struct {
	Message string
}

func (e *EngineError) Error() string { return e.Message }
