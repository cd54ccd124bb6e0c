package checker

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/raphaelgruber/ma5-go/internal/metrics"
)

// Runner invokes an external tool once and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs tools as child processes.
type ExecRunner struct {
	// Env is the child environment; nil inherits the current process.
	Env []string

	// Metrics receives one timing record per invocation; optional.
	Metrics *metrics.Collector
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = r.Env

	start := time.Now()
	out, err := cmd.CombinedOutput()
	if r.Metrics != nil {
		r.Metrics.RecordProbe(filepath.Base(name), time.Since(start), err != nil)
	}
	return strings.TrimSpace(string(out)), err
}

// toolMissing reports whether a probe shows the tool is absent, as opposed
// to present but exiting non-zero (dvipdf without arguments does that).
func toolMissing(out string, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return true
	}
	lower := strings.ToLower(out)
	return strings.Contains(lower, "not found") || strings.Contains(lower, "no such file")
}
