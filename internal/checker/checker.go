// Package checker detects the compiler toolchain and the optional physics
// libraries available on the host.
//
// Each check follows the same policy: a user veto disables the dependency
// without touching the filesystem; otherwise the known search paths are
// scanned, then the bundled tools/ directory. Successful discoveries extend
// the checker's build environment, which is handed back in the Report rather
// than written to the process environment.
package checker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphaelgruber/ma5-go/internal/buildenv"
	"github.com/raphaelgruber/ma5-go/internal/options"
	"github.com/raphaelgruber/ma5-go/internal/records"
)

// Config configures a Checker.
type Config struct {
	Options options.InstallationOptions
	BaseDir string       // toolkit root; the bundled installs live in BaseDir/tools
	Env     buildenv.Env // starting search state
	Runner  Runner       // nil uses ExecRunner
	Out     io.Writer    // status lines; nil uses os.Stdout
	Logger  *slog.Logger // nil uses slog.Default()
	Editor  string

	// OnOutcome, when set, is called after every check of Run.
	OnOutcome func(Outcome)
}

// Checker runs dependency checks and accumulates their side effects.
type Checker struct {
	opts    options.InstallationOptions
	base    string
	runner  Runner
	printer *Printer
	logger  *slog.Logger
	editor  string
	notify  func(Outcome)

	env  buildenv.Env
	recs records.Set
}

// New creates a Checker.
func New(cfg Config) *Checker {
	if cfg.Runner == nil {
		cfg.Runner = ExecRunner{}
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Checker{
		opts:    cfg.Options,
		base:    cfg.BaseDir,
		runner:  cfg.Runner,
		printer: NewPrinter(cfg.Out),
		logger:  cfg.Logger,
		editor:  cfg.Editor,
		notify:  cfg.OnOutcome,
		env:     cfg.Env,
		recs:    records.NewSet(),
	}
}

// Env returns the build environment accumulated so far.
func (c *Checker) Env() buildenv.Env { return c.env }

// Records returns the files located so far.
func (c *Checker) Records() records.Set { return c.recs }

type check func(context.Context) Outcome

func (c *Checker) mandatory() []check {
	return []check{c.CheckGPP, c.CheckMake, c.CheckROOT}
}

func (c *Checker) optional() []check {
	return []check{
		c.CheckGfortran,
		c.CheckZlib,
		c.CheckDelphes,
		c.CheckDelfes,
		c.CheckMCatNLOUtils,
		c.CheckFastJet,
		c.CheckPdfLatex,
		c.CheckLatex,
		c.CheckDvipdf,
		c.CheckTextEditor,
	}
}

// Count returns the number of checks Run performs when nothing fails.
func (c *Checker) Count() int {
	return len(c.mandatory()) + len(c.optional())
}

// Run performs every check. A failing mandatory check stops the run and the
// partial report is returned together with ErrMandatoryMissing.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	for _, run := range c.mandatory() {
		o := c.record(report, run(ctx))
		if o.Fatal() {
			c.fill(report)
			return report, fmt.Errorf("%w: %s", ErrMandatoryMissing, o.Capability)
		}
	}
	for _, run := range c.optional() {
		if err := ctx.Err(); err != nil {
			c.fill(report)
			return report, err
		}
		c.record(report, run(ctx))
	}

	c.fill(report)
	return report, nil
}

func (c *Checker) record(r *Report, o Outcome) Outcome {
	r.Outcomes = append(r.Outcomes, o)
	if c.notify != nil {
		c.notify(o)
	}
	return o
}

func (c *Checker) fill(r *Report) {
	r.Env = c.env
	r.Records = c.recs
	r.Editor = c.editor
}

// tools returns a path inside the bundled installation directory.
func (c *Checker) tools(elem ...string) string {
	return filepath.Join(append([]string{c.base, "tools"}, elem...)...)
}

// ok prints [OK] and builds a successful outcome.
func (c *Checker) ok(o Outcome) Outcome {
	o.Result = Ok
	c.printer.OK()
	return o
}

// fail prints the failure tag, logs the messages and returns the outcome.
// Hard failures log at error level, soft ones at warning level.
func (c *Checker) fail(o Outcome, result Result, msgs ...string) Outcome {
	o.Result = result
	o.Messages = msgs
	c.printer.Fail(!o.Mandatory)
	for _, m := range msgs {
		if o.Mandatory {
			c.logger.Error(m, "dependency", string(o.Capability))
		} else {
			c.logger.Warn(m, "dependency", string(o.Capability))
		}
	}
	return o
}

// findFile returns the first existing dir/name over dirs x names, skipping
// paths that contain exclude (when non-empty).
func findFile(dirs, names []string, exclude string) (path, dir string, ok bool) {
	for _, d := range dirs {
		for _, n := range names {
			p := filepath.Join(d, n)
			if exclude != "" && strings.Contains(p, exclude) {
				continue
			}
			if isFile(p) {
				return p, d, true
			}
		}
	}
	return "", "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// withOverride puts a user-specified directory ahead of the search list.
func withOverride(override string, dirs []string) []string {
	if override == "" {
		return dirs
	}
	return append([]string{override}, dirs...)
}

func (c *Checker) recordLibrary(name, path string) {
	if r, err := records.Stat(path); err == nil {
		c.recs.Libraries[name] = r
	}
}

func (c *Checker) recordHeader(name, path string) {
	if r, err := records.Stat(path); err == nil {
		c.recs.Headers[name] = r
	}
}
