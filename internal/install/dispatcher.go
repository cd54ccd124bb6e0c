package install

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DeactPrefix marks a deactivated installation under tools/.
const DeactPrefix = "DEACT_"

// Installer performs the actual download and build of a package. Both
// methods report success; details are the installer's to log.
type Installer interface {
	Execute(ctx context.Context, name string) bool
	Deactivate(name string) bool
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Options configures a Dispatcher.
type Options struct {
	ToolsDir string
	Forced   bool     // skip confirmations
	Prompter Prompter // nil declines every confirmation
	Logger   *slog.Logger
}

// Dispatcher maps install requests onto Installer calls.
type Dispatcher struct {
	installer Installer
	toolsDir  string
	forced    bool
	prompter  Prompter
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(installer Installer, opts Options) *Dispatcher {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Dispatcher{
		installer: installer,
		toolsDir:  opts.ToolsDir,
		forced:    opts.Forced,
		prompter:  opts.Prompter,
		logger:    opts.Logger,
	}
}

// labels are the display names used in activation messages.
var labels = map[Component]string{
	Delphes:        "Delphes",
	DelphesMA5tune: "DelphesMA5tune",
}

// Install handles "install <component> [archive]". Syntax problems are
// errors wrapping ErrUsage or ErrUnknownComponent; installer failures are
// reported through the boolean. Nothing is rolled back on failure.
func (d *Dispatcher) Install(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("%w: wrong number of arguments for the command 'install'", ErrUsage)
	}
	c, err := ParseComponent(args[0])
	if err != nil {
		return false, err
	}
	switch {
	case c == PADForMA5tuneLocal && len(args) != 2:
		return false, fmt.Errorf("%w: the syntax is not correct", ErrUsage)
	case c != PADForMA5tuneLocal && len(args) != 1:
		return false, fmt.Errorf("%w: wrong number of arguments for the command 'install'", ErrUsage)
	}

	d.logger.Debug("install requested", "component", c.String())

	switch c {
	case Delphes:
		return d.activate(ctx, Delphes, DelphesMA5tune), nil
	case DelphesMA5tune:
		d.logger.Warn("The package 'delphesMA5tune' is now obsolete. It is replaced by Delphes with special MA5-tuned cards.")
		if !d.forced {
			ok, err := d.confirm("Are you sure to install this package? (Y/N)")
			if err != nil {
				return false, err
			}
			if !ok {
				return false, ErrDeclined
			}
		}
		return d.activate(ctx, DelphesMA5tune, Delphes), nil
	case FastJet:
		if !d.installer.Execute(ctx, FastJet.String()) {
			return false, nil
		}
		return d.installer.Execute(ctx, "fastjet-contrib"), nil
	case PAD:
		if !d.activate(ctx, Delphes, DelphesMA5tune) {
			return false, nil
		}
		return d.installer.Execute(ctx, PAD.String()), nil
	case PADForMA5tune:
		if !d.activate(ctx, DelphesMA5tune, Delphes) {
			return false, nil
		}
		return d.installer.Execute(ctx, PADForMA5tune.String()), nil
	case PADForMA5tuneLocal:
		if !d.activate(ctx, DelphesMA5tune, Delphes) {
			return false, nil
		}
		return d.installer.Execute(ctx, "PADForMA5tunelocal_xxx_"+args[1]), nil
	default:
		return d.installer.Execute(ctx, c.String()), nil
	}
}

func (d *Dispatcher) confirm(question string) (bool, error) {
	if d.prompter == nil {
		return false, nil
	}
	ok, err := d.prompter.Confirm(question)
	if err != nil {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	return ok, nil
}

// activate makes target the active Delphes variant: rival is deactivated,
// then a deactivated copy of target is moved back, or target is installed
// when no copy exists at all.
func (d *Dispatcher) activate(ctx context.Context, target, rival Component) bool {
	if !d.installer.Deactivate(rival.String()) {
		return false
	}

	name := target.String()
	label := labels[target]
	dir := filepath.Join(d.toolsDir, name)
	deact := filepath.Join(d.toolsDir, DeactPrefix+name)

	if isDir(deact) {
		d.logger.Warn(label + " deactivated. Activating it...")
		if err := os.Rename(deact, dir); err != nil {
			d.logger.Error("activating "+label, "error", err)
			return false
		}
		return true
	}
	if !isDir(dir) {
		d.logger.Info("A previous installation has not been found... installing...", "component", name)
		return d.installer.Execute(ctx, name)
	}
	d.logger.Warn("A previous installation of " + label + " has been found. Skipping the installation.")
	d.logger.Warn("To update " + label + ", please remove the tools/" + name + " directory")
	return true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
