package cli

import (
	"fmt"
	"os"

	"github.com/raphaelgruber/ma5-go/internal/codegen"
	"github.com/spf13/cobra"
)

var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the user::Initialize function of the analysis",
	Long: `Generate the C++ body of user::Initialize from the analysis file.

The output declares the hadronic and invisible particles, the isolation of
reconstructed objects, the cut array and one histogram per plot of the
selection. Histograms are named selection_<k> after their rank among plots.

Examples:
  ma5 generate
  ma5 generate -a ttbar.yaml -o Build/SampleAnalyzer/User/Analyzer/user_init.cpp`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file (default: stdout)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := loadAnalysis()
	if err != nil {
		return err
	}

	if generateOutput == "" {
		return codegen.WriteJobInitialize(cmd.OutOrStdout(), a)
	}

	f, err := os.Create(generateOutput)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := codegen.WriteJobInitialize(f, a); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", generateOutput, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", generateOutput, err)
	}

	logger.Info("initialization code written", "file", generateOutput,
		"histograms", len(a.Selection.Histograms()), "cuts", len(a.Selection.Cuts()))
	return nil
}
