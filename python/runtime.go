// Package python adapts the host Python environment: interpreter
// resolution, module presence checks, and pip installs. The inference
// engine itself lives in a Python package, so every interaction with it
// goes through a Runtime.
package python

import (
	"context"
	"os/exec"

	"github.com/kbukum/lightning-transcriber/errors"
	"github.com/kbukum/lightning-transcriber/logger"
	"github.com/kbukum/lightning-transcriber/process"
)

// Runtime is the interface the rest of the program uses to talk to Python.
// Implementations must never write to the parent's stdout or stderr; all
// child output is captured and returned.
type Runtime interface {
	// ModuleAvailable reports whether the named module can be imported.
	ModuleAvailable(ctx context.Context, module string) bool
	// Install installs a package with pip. The returned Result carries the
	// captured installer output even when the install failed.
	Install(ctx context.Context, pkg string) (*process.Result, error)
	// Run executes an inline script (python -c) with positional arguments.
	Run(ctx context.Context, script string, args []string) (*process.Result, error)
}

// Interpreter is the real Runtime backed by a python binary.
type Interpreter struct {
	binary string
	log    *logger.Logger
}

var _ Runtime = (*Interpreter)(nil)

// NewInterpreter creates an Interpreter for the given binary. An empty
// binary resolves python3 then python from PATH; if neither resolves the
// Interpreter is still returned and every call will report unavailability,
// which is the behavior the CLI contract wants.
func NewInterpreter(binary string) *Interpreter {
	if binary == "" {
		binary = "python3"
		for _, candidate := range []string{"python3", "python"} {
			if _, err := exec.LookPath(candidate); err == nil {
				binary = candidate
				break
			}
		}
	}
	return &Interpreter{
		binary: binary,
		log:    logger.WithComponent("python"),
	}
}

// Binary returns the resolved interpreter binary.
func (i *Interpreter) Binary() string { return i.binary }

// ModuleAvailable reports whether the named module can be imported.
func (i *Interpreter) ModuleAvailable(ctx context.Context, module string) bool {
	result, err := process.Run(ctx, process.Command{
		Binary: i.binary,
		Args:   []string{"-c", "import " + module},
	})
	if err != nil {
		i.log.Debug("module import check failed", logger.Fields(
			"module", module,
			"error", err.Error(),
		))
		return false
	}
	return result.ExitCode == 0
}

// Install installs a package with pip, capturing all installer output.
func (i *Interpreter) Install(ctx context.Context, pkg string) (*process.Result, error) {
	i.log.Info("installing package", logger.Fields("package", pkg))
	result, err := process.Run(ctx, process.Command{
		Binary: i.binary,
		Args:   []string{"-m", "pip", "install", pkg},
	})
	if err != nil {
		return result, errors.ExternalServiceError("pip", err)
	}
	return result, nil
}

// Run executes an inline script with positional arguments.
func (i *Interpreter) Run(ctx context.Context, script string, args []string) (*process.Result, error) {
	cmdArgs := append([]string{"-c", script}, args...)
	return process.Run(ctx, process.Command{
		Binary: i.binary,
		Args:   cmdArgs,
	})
}
