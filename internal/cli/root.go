// Package cli provides the command-line interface for ma5.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/raphaelgruber/ma5-go/internal/analysis"
	"github.com/raphaelgruber/ma5-go/internal/config"
	"github.com/raphaelgruber/ma5-go/internal/options"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose      bool
	forced       bool
	analysisPath string

	// Global config and logger
	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ma5",
	Short: "MadAnalysis 5 configuration and build front-end",
	Long: `ma5 prepares analyses for the SampleAnalyzer engine.

It checks the host for the compiler toolchain and the optional physics
libraries, installs bundled packages, edits jet-clustering settings and
generates the C++ initialization code of a user analysis.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}
		if forced {
			cfg.Forced = true
		}

		logger, closeLog = config.SetupLogger(cfg)
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			if err := closeLog(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&forced, "forced", "f", false, "answer yes to every confirmation")
	rootCmd.PersistentFlags().StringVarP(&analysisPath, "analysis", "a", "analysis.yaml", "analysis description file")

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(clusteringCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(optionsCmd)
}

// loadOptions reads the installation options. A missing file means no
// vetoes and no overrides.
func loadOptions() (options.InstallationOptions, error) {
	opts, err := options.Load(cfg.OptionsFile, logger)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no installation options file", "file", cfg.OptionsFile)
		return options.InstallationOptions{}, nil
	}
	return opts, err
}

// loadAnalysis reads the file named by --analysis.
func loadAnalysis() (*analysis.Analysis, error) {
	return analysis.Load(analysisPath, logger)
}

// interactive reports whether the session may ask questions.
func interactive() bool {
	return !cfg.Script && term.IsTerminal(int(os.Stdin.Fd()))
}
