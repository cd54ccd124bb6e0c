package cli

import (
	"github.com/spf13/cobra"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the signal regions of the analysis",
	Long: `List the signal regions of the analysis and the selection items
attached to each of them. Items without a region apply to all regions.`,
	Args: cobra.NoArgs,
	RunE: runRegions,
}

func runRegions(cmd *cobra.Command, args []string) error {
	a, err := loadAnalysis()
	if err != nil {
		return err
	}
	return a.Regions.Display(cmd.OutOrStdout(), a.Selection)
}
