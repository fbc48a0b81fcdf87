// Command lightning-transcriber exposes the lightning-whisper-mlx
// speech-to-text engine through a JSON-in/JSON-out CLI: check or install
// the engine dependency, or transcribe a single audio file. Every
// invocation writes exactly one JSON document to stdout; diagnostics go
// to stderr only.
package main

import (
	"os"

	"github.com/kbukum/lightning-transcriber/cli"
)

func main() {
	os.Exit(cli.New().Run(os.Args[1:]))
}
