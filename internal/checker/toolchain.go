package checker

import (
	"context"
	"fmt"
	"strings"
)

// CheckGPP verifies the C++ compiler.
func (c *Checker) CheckGPP(ctx context.Context) Outcome {
	o := Outcome{Capability: CapGPP, Mandatory: true}
	c.printer.Library("g++")

	out, err := c.runner.Run(ctx, "g++", "-dumpversion")
	if err != nil {
		return c.fail(o, NotFound, "g++ compiler not found. Please install it before using MadAnalysis 5")
	}
	o.Version = firstLine(out)
	return c.ok(o)
}

// CheckMake verifies GNU Make. The version is the first output line with
// spaces removed.
func (c *Checker) CheckMake(ctx context.Context) Outcome {
	o := Outcome{Capability: CapMake, Mandatory: true}
	c.printer.Library("GNU Make")

	out, err := c.runner.Run(ctx, "make", "--version")
	if err != nil {
		return c.fail(o, NotFound, "GNU Make not found. Please install it before using MadAnalysis 5")
	}
	line := strings.ReplaceAll(firstLine(out), " ", "")
	if line == "" {
		return c.fail(o, InvalidValue, `command "make --version" seems to not give the GNU Make version`)
	}
	o.Version = line
	return c.ok(o)
}

// CheckROOT locates ROOT through root-config, adds its directories to the
// build environment and enforces the minimum release.
func (c *Checker) CheckROOT(ctx context.Context) Outcome {
	o := Outcome{Capability: CapROOT, Mandatory: true}
	c.printer.Library("Root")

	out, err := c.runner.Run(ctx, "root-config", "--libdir", "--incdir")
	fields := strings.Fields(out)
	if err != nil || len(fields) < 2 {
		return c.fail(o, NotFound,
			`ROOT module called "root-config" is not detected.`,
			"Two explanations:",
			" - ROOT is not installed. You can download it from http://root.cern.ch",
			" - ROOT binary folder must be placed in the global environment variable $PATH")
	}
	libDir, incDir := fields[0], fields[1]
	if c.opts.RootLibs != "" {
		libDir = c.opts.RootLibs
	}
	if c.opts.RootIncludes != "" {
		incDir = c.opts.RootIncludes
	}
	c.env = c.env.WithLibraryDir(libDir).WithIncludeDir(incDir)

	lib, _, found := findFile(c.env.LibrarySearch(), []string{"libCore.so", "libCore.dylib"}, "")
	if !found {
		return c.fail(o, NotFound, "ROOT library called 'libCore' not found. Please check that ROOT is properly installed.")
	}
	c.recordLibrary("ROOT", lib)
	o.Location = lib

	header, _, found := findFile(c.env.IncludeSearch(), []string{"TH1F.h"}, "")
	if !found {
		return c.fail(o, NotFound, "ROOT headers are not found. Please check that ROOT is properly installed.")
	}
	c.recordHeader("ROOT", header)

	raw, err := c.runner.Run(ctx, "root-config", "--version")
	v, parsed := ParseVersion(raw)
	if err != nil || !parsed {
		return c.fail(o, InvalidValue, fmt.Sprintf("Bad release of ROOT : %q. MadAnalysis5 needs ROOT %d.%d or higher.", raw, MinROOT.Major, MinROOT.Minor))
	}
	o.Version = strings.TrimSpace(raw)
	if !v.AtLeast(MinROOT) {
		return c.fail(o, VersionTooLow,
			fmt.Sprintf("Bad release of ROOT : %s. MadAnalysis5 needs ROOT %d.%d or higher.", o.Version, MinROOT.Major, MinROOT.Minor),
			"Please upgrade your version of ROOT.")
	}
	return c.ok(o)
}

// CheckGfortran looks for gfortran >= 4.4. Absence only disables aMC@NLO
// showering, so every failure is soft.
func (c *Checker) CheckGfortran(ctx context.Context) Outcome {
	o := Outcome{Capability: CapGfortran}
	c.printer.Library("gfortran")

	out, err := c.runner.Run(ctx, "gfortran", "-dumpversion")
	if err != nil {
		return c.fail(o, NotFound, "gfortran compiler not found. aMCatNLO cannot be used.")
	}
	line := firstLine(out)
	v, ok := ParseVersion(line)
	if !ok {
		return c.fail(o, NotFound, "gfortran compiler not found. aMCatNLO cannot be used.")
	}
	if !v.AtLeast(MinGfortran) {
		return c.fail(o, VersionTooLow, fmt.Sprintf("gfortran %s older than %s.", line, MinGfortran))
	}
	o.Version = line
	return c.ok(o)
}

// CheckTextEditor reports the editor used for opening cards.
func (c *Checker) CheckTextEditor(context.Context) Outcome {
	o := Outcome{Capability: CapTextEditor, Result: Ok, Location: c.editor}
	if o.Location == "" {
		o.Location = "vi"
	}
	c.editor = o.Location
	return o
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
