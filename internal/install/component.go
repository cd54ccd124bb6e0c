// Package install dispatches "install <component>" requests to an installer
// and handles the activation dance between the two Delphes variants.
package install

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownComponent = errors.New("unknown component")
	ErrUsage            = errors.New("wrong usage")
	ErrDeclined         = errors.New("installation declined")
)

// Component is an installable package.
type Component int

const (
	Samples Component = iota
	Zlib
	FastJet
	Delphes
	DelphesMA5tune
	Gnuplot
	Matplotlib
	ROOT
	Numpy
	RecastingTools
	PAD
	PADForMA5tune
	PADForMA5tuneLocal
)

var componentNames = [...]string{
	Samples:            "samples",
	Zlib:               "zlib",
	FastJet:            "fastjet",
	Delphes:            "delphes",
	DelphesMA5tune:     "delphesMA5tune",
	Gnuplot:            "gnuplot",
	Matplotlib:         "matplotlib",
	ROOT:               "root",
	Numpy:              "numpy",
	RecastingTools:     "RecastingTools",
	PAD:                "PAD",
	PADForMA5tune:      "PADForMA5tune",
	PADForMA5tuneLocal: "PADForMA5tunelocal",
}

// String returns the name used on the command line and by the installer.
func (c Component) String() string {
	if c < 0 || int(c) >= len(componentNames) {
		return fmt.Sprintf("Component(%d)", int(c))
	}
	return componentNames[c]
}

// ParseComponent resolves a command-line name. Matching is case-sensitive.
func ParseComponent(name string) (Component, error) {
	for i, n := range componentNames {
		if n == name {
			return Component(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
}

// Components lists the components offered for completion. The local PAD
// variant takes an archive argument and is not listed.
func Components() []Component {
	out := make([]Component, 0, len(componentNames)-1)
	for i := range componentNames {
		if c := Component(i); c != PADForMA5tuneLocal {
			out = append(out, c)
		}
	}
	return out
}

// Usage is the help text printed on syntax errors.
func Usage() string {
	names := make([]string, 0, len(componentNames))
	for _, c := range Components() {
		names = append(names, c.String())
	}
	return "Syntax: install <component>\n" +
		"Download and install a MadAnalysis component from the official site.\n" +
		"List of available components: " + strings.Join(names, " ")
}
