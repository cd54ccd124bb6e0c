package cli

import (
	"fmt"

	"github.com/raphaelgruber/ma5-go/internal/options"
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show the installation options",
	Long: `Show the installation options read from installation_options.dat.

A veto disables an optional dependency; include and library paths are
searched before any other location.`,
	Args: cobra.NoArgs,
	RunE: runOptions,
}

func runOptions(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Installation options (%s):\n", cfg.OptionsFile)
	for _, key := range options.Keys() {
		v, _ := opts.Get(key)
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %-18s = %s\n", key, v)
	}
	return nil
}
