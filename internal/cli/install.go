package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/raphaelgruber/ma5-go/internal/buildenv"
	"github.com/raphaelgruber/ma5-go/internal/install"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <component> [archive]",
	Short: "Install a MadAnalysis component",
	Long: `Download and install a MadAnalysis component through the install manager.

Installing delphes deactivates delphesMA5tune and the other way around; a
deactivated copy under tools/DEACT_<name> is restored instead of being
downloaded again.

Examples:
  ma5 install fastjet
  ma5 install PAD
  ma5 install PADForMA5tunelocal ./PADForMA5tune.tgz`,
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: completeComponents,
	RunE:              runInstall,
}

func completeComponents(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	var names []string
	for _, c := range install.Components() {
		names = append(names, c.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	env := buildenv.FromEnviron(os.Environ(), cfg.BaseDir)
	installer := install.ExecInstaller{
		Command:  cfg.Installer,
		ToolsDir: cfg.ToolsDir(),
		Env:      env.Environ(os.Environ()),
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
		Logger:   logger,
	}

	opts := install.Options{
		ToolsDir: cfg.ToolsDir(),
		Forced:   cfg.Forced,
		Logger:   logger,
	}
	if interactive() {
		opts.Prompter = install.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	ok, err := install.NewDispatcher(installer, opts).Install(ctx, args)
	if errors.Is(err, install.ErrUsage) || errors.Is(err, install.ErrUnknownComponent) {
		return fmt.Errorf("%w\n%s", err, install.Usage())
	}
	if errors.Is(err, install.ErrDeclined) {
		fmt.Fprintln(cmd.OutOrStdout(), "Installation cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("installation of %s failed", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Installation of "+args[0]+" complete.")
	return nil
}
