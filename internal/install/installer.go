package install

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// ExecInstaller delegates package builds to an external install manager,
// invoked as "<Command> <name>". Deactivation is a rename under ToolsDir.
type ExecInstaller struct {
	Command  string
	ToolsDir string
	Env      []string // child environment; nil inherits
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
}

func (i ExecInstaller) logger() *slog.Logger {
	if i.Logger == nil {
		return slog.Default()
	}
	return i.Logger
}

// Execute runs the install manager for name.
func (i ExecInstaller) Execute(ctx context.Context, name string) bool {
	cmd := exec.CommandContext(ctx, i.Command, name)
	cmd.Env = i.Env
	cmd.Stdout = i.Stdout
	cmd.Stderr = i.Stderr

	i.logger().Info("installing", "component", name, "installer", i.Command)
	if err := cmd.Run(); err != nil {
		i.logger().Error("installation failed", "component", name, "error", err)
		return false
	}
	return true
}

// Deactivate moves tools/<name> to tools/DEACT_<name>, replacing a stale
// deactivated copy. A missing installation is not an error.
func (i ExecInstaller) Deactivate(name string) bool {
	dir := filepath.Join(i.ToolsDir, name)
	if !isDir(dir) {
		return true
	}
	deact := filepath.Join(i.ToolsDir, DeactPrefix+name)
	if err := os.RemoveAll(deact); err != nil {
		i.logger().Error("removing stale deactivated installation", "path", deact, "error", err)
		return false
	}
	if err := os.Rename(dir, deact); err != nil {
		i.logger().Error("deactivating "+name, "error", err)
		return false
	}
	i.logger().Warn(name + " is now deactivated.")
	return true
}
