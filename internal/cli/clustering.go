package cli

import (
	"fmt"
	"sort"

	"github.com/raphaelgruber/ma5-go/internal/analysis"
	"github.com/raphaelgruber/ma5-go/internal/clustering"
	"github.com/spf13/cobra"
)

var clusteringCmd = &cobra.Command{
	Use:   "clustering",
	Short: "Show and edit the jet-clustering parameters",
	Long: `Show and edit the CDF JetClu cone parameters of the analysis.

Subcommands:
  show    Show the parameters with their labels
  set     Change one parameter in the analysis file
  config  Print the configuration handed to the engine

Examples:
  ma5 clustering show
  ma5 clustering show radius
  ma5 clustering set radius 0.4
  ma5 clustering config -a ttbar.yaml`,
}

var clusteringShowCmd = &cobra.Command{
	Use:               "show [parameter]",
	Short:             "Show the parameters",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeClusteringParameter,
	RunE:              runClusteringShow,
}

var clusteringSetCmd = &cobra.Command{
	Use:               "set <parameter> <value>",
	Short:             "Change one parameter",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeClusteringParameter,
	RunE:              runClusteringSet,
}

var clusteringConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the engine configuration",
	Args:  cobra.NoArgs,
	RunE:  runClusteringConfig,
}

func init() {
	clusteringCmd.AddCommand(clusteringShowCmd)
	clusteringCmd.AddCommand(clusteringSetCmd)
	clusteringCmd.AddCommand(clusteringConfigCmd)
}

func completeClusteringParameter(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	c := clustering.NewCDFJetClu(nil)
	switch len(args) {
	case 0:
		return c.Parameters(), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return c.Values(args[0]), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func runClusteringShow(cmd *cobra.Command, args []string) error {
	a, err := loadAnalysis()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		p, err := clustering.ParseParameter(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", p, a.Clustering.Get(p))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Jet clustering with the CDF JetClu algorithm:")
	for _, line := range a.Clustering.Lines() {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

func runClusteringSet(cmd *cobra.Command, args []string) error {
	name, value := args[0], args[1]

	// validate before touching the file
	c := clustering.NewCDFJetClu(logger)
	if !c.SetParameter(name, value) {
		return fmt.Errorf("clustering parameter %s not changed", name)
	}
	if err := analysis.SaveClusteringValue(analysisPath, name, value); err != nil {
		return err
	}

	p, _ := clustering.ParseParameter(name)
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", p, c.Get(p))
	return nil
}

func runClusteringConfig(cmd *cobra.Command, args []string) error {
	a, err := loadAnalysis()
	if err != nil {
		return err
	}

	engine := a.Clustering.ToEngineConfig()
	keys := make([]string, 0, len(engine))
	for k := range engine {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, engine[k])
	}
	return nil
}
