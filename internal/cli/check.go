package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/raphaelgruber/ma5-go/internal/buildenv"
	"github.com/raphaelgruber/ma5-go/internal/checker"
	"github.com/raphaelgruber/ma5-go/internal/metrics"
	"github.com/raphaelgruber/ma5-go/internal/records"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	checkStats    bool
	checkProgress bool
	checkEnv      bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the compiler toolchain and optional libraries",
	Long: `Check the host for the tools and libraries used by SampleAnalyzer.

g++, GNU Make and ROOT are mandatory; a missing one is an error. Every other
dependency is optional and only disables the features relying on it.
Libraries are searched in the inherited library and include paths, the
standard system directories and finally in the bundled tools/ directory.

Examples:
  ma5 check
  ma5 check --stats
  ma5 check --env > build.env`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStats, "stats", false, "show probe timing statistics")
	checkCmd.Flags().BoolVar(&checkProgress, "progress", false, "show a progress bar instead of status lines")
	checkCmd.Flags().BoolVar(&checkEnv, "env", false, "print the resulting build environment")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	opts, err := loadOptions()
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	env := buildenv.FromEnviron(os.Environ(), cfg.BaseDir).WithStandardDirs()
	chkCfg := checker.Config{
		Options: opts,
		BaseDir: cfg.BaseDir,
		Env:     env,
		Runner:  checker.ExecRunner{Env: env.Environ(os.Environ()), Metrics: collector},
		Out:     cmd.OutOrStdout(),
		Logger:  logger,
		Editor:  cfg.Editor,
	}

	var report *checker.Report
	if checkProgress && term.IsTerminal(int(os.Stdout.Fd())) {
		chkCfg.Out = io.Discard
		report, err = RunCheckProgress(ctx, chkCfg)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Checking the MadAnalysis 5 dependencies:")
		report, err = checker.New(chkCfg).Run(ctx)
	}
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), report)
	if err := updateRecords(cmd.OutOrStdout(), report.Records); err != nil {
		return err
	}
	if checkEnv {
		printEnv(cmd.OutOrStdout(), report.Env)
	}
	if checkStats {
		printProbeStats(cmd.OutOrStdout(), collector.Snapshot())
	}
	return nil
}

// feature is usable when any of its capabilities is present.
type feature struct {
	name  string
	needs []checker.Capability
}

var features = []feature{
	{"jet clustering at hadron level", []checker.Capability{checker.CapFastJet}},
	{"fast detector simulation", []checker.Capability{checker.CapDelphes}},
	{"compressed event samples", []checker.Capability{checker.CapZlib}},
	{"MC@NLO showering utilities", []checker.Capability{checker.CapMCatNLO}},
	{"PDF reports", []checker.Capability{checker.CapPdfLatex, checker.CapLatex}},
}

// printSummary shows the toolchain versions and the features lost to
// missing optional dependencies.
func printSummary(w io.Writer, r *checker.Report) {
	fmt.Fprintf(w, "\nUsing g++ %s and ROOT %s.\n", r.Version(checker.CapGPP), r.Version(checker.CapROOT))
	printDisabledFeatures(w, r)
}

func printDisabledFeatures(w io.Writer, p checker.Provider) {
	var off []string
	for _, f := range features {
		if !slices.ContainsFunc(f.needs, p.Has) {
			off = append(off, f.name)
		}
	}
	if len(off) == 0 {
		return
	}
	fmt.Fprintln(w, "Disabled features:")
	for _, name := range off {
		fmt.Fprintf(w, "  - %s\n", name)
	}
}

// updateRecords reports libraries whose location or timestamp changed since
// the previous check and stores the new set.
func updateRecords(w io.Writer, current records.Set) error {
	prev, err := records.Load(cfg.RecordsFile)
	if err != nil {
		// a corrupt cache is rebuilt
		logger.Warn("ignoring library records", "error", err)
		prev = records.NewSet()
	}

	if changed := current.Changed(prev); len(changed) > 0 {
		fmt.Fprintf(w, "\nChanged since the last check (%d):\n", len(changed))
		for _, c := range changed {
			fmt.Fprintf(w, "  - %s\n", c)
		}
	}
	return records.Save(cfg.RecordsFile, current)
}

func printEnv(w io.Writer, env buildenv.Env) {
	vars := env.Vars()
	for _, k := range []string{
		buildenv.VarBase,
		buildenv.VarPath,
		buildenv.VarLDLibraryPath,
		buildenv.VarDYLDLibraryPath,
		buildenv.VarLibraryPath,
		buildenv.VarCPlusInclude,
	} {
		if v, ok := vars[k]; ok {
			fmt.Fprintf(w, "export %s=%q\n", k, v)
		}
	}
}

// printProbeStats displays timing statistics of the external probes.
func printProbeStats(w io.Writer, snap metrics.Snapshot) {
	fmt.Fprintf(w, "\nProbe Statistics (%.1f seconds)\n", snap.ElapsedSeconds)
	fmt.Fprintln(w, strings.Repeat("═", 47))
	fmt.Fprintf(w, "  %-22s %5s %5s %8s %8s\n", "tool", "calls", "fail", "avg ms", "max ms")
	for _, p := range snap.Probes {
		fmt.Fprintf(w, "  %-22s %5d %5d %8.1f %8d\n", p.Tool, p.Count, p.Failures, p.AvgTimeMs, p.MaxTimeMs)
	}
}
