package checker

import (
	"context"
	"path/filepath"
	"strings"
)

// library describes an optional library made of a binary and a header.
type library struct {
	capability Capability
	label      string // status line text
	record     string // key in the records set
	exclude    string // skip system paths containing this

	libNames    []string
	libOverride string
	localLibDir string

	header         string // relative to an include dir
	incOverride    string
	localIncludes  []string // added when the header is only found locally
	localHeaderDir string   // directory the local header is relative to

	veto        bool
	vetoMsg     string
	missingLib  []string
	missingHead []string
}

func sharedLibs(stem string) []string {
	return []string{stem + ".so", stem + ".a", stem + ".dylib"}
}

// checkLibrary applies the veto / system / bundled search policy.
func (c *Checker) checkLibrary(l library) Outcome {
	o := Outcome{Capability: l.capability}
	c.printer.Library(l.label)

	if l.veto {
		return c.fail(o, Vetoed, l.vetoMsg)
	}

	// library: system paths, then the bundled installation
	path, dir, found := findFile(withOverride(l.libOverride, c.env.LibrarySearch()), l.libNames, l.exclude)
	if !found {
		path, dir, found = findFile([]string{l.localLibDir}, l.libNames, "")
	}
	if !found {
		return c.fail(o, NotFound, l.missingLib...)
	}
	c.recordLibrary(l.record, path)
	c.env = c.env.WithLibraryDir(dir)
	o.Location = path

	// header: system paths, then the bundled installation
	header, incDir, found := findFile(withOverride(l.incOverride, c.env.IncludeSearch()), []string{l.header}, l.exclude)
	if found {
		c.recordHeader(l.record, header)
		c.env = c.env.WithIncludeDir(incDir)
		return c.ok(o)
	}
	local := filepath.Join(l.localHeaderDir, l.header)
	if !isFile(local) {
		return c.fail(o, NotFound, l.missingHead...)
	}
	c.recordHeader(l.record, local)
	c.env = c.env.WithIncludeDir(l.localIncludes...)
	return c.ok(o)
}

// CheckZlib looks for libz and zlib.h. Without them gzip input is disabled.
func (c *Checker) CheckZlib(_ context.Context) Outcome {
	return c.checkLibrary(library{
		capability:     CapZlib,
		label:          "zlib library",
		record:         "ZLib",
		libNames:       sharedLibs("libz"),
		libOverride:    c.opts.ZlibLibs,
		localLibDir:    c.tools("zlib", "lib"),
		header:         "zlib.h",
		incOverride:    c.opts.ZlibIncludes,
		localIncludes:  []string{c.tools("zlib", "include")},
		localHeaderDir: c.tools("zlib", "include"),
		veto:           c.opts.ZlibVeto,
		vetoMsg:        "Library called 'zlib' disabled. Gzip format will be disabled.",
		missingLib: []string{
			"Library called 'zlib' not found. Gzip format will be disabled.",
			"To enable this format, please type 'install zlib' package.",
		},
		missingHead: []string{
			"Header file called 'zlib.h' not found. Gzip format will be disabled.",
			"To enable this format, please type 'install zlib' package.",
		},
	})
}

// CheckDelphes looks for the Delphes detector simulation. Copies living in
// a delfes directory belong to the tuned variant and are ignored here.
func (c *Checker) CheckDelphes(_ context.Context) Outcome {
	return c.checkLibrary(library{
		capability:     CapDelphes,
		label:          "delphes library",
		record:         "Delphes",
		exclude:        "delfes",
		libNames:       sharedLibs("libDelphes"),
		libOverride:    c.opts.DelphesLibs,
		localLibDir:    c.tools("delphes"),
		header:         filepath.Join("modules", "ParticlePropagator.h"),
		incOverride:    c.opts.DelphesIncludes,
		localIncludes:  []string{c.tools("delphes"), c.tools("delphes", "external")},
		localHeaderDir: c.tools("delphes"),
		veto:           c.opts.DelphesVeto,
		vetoMsg:        "Library called 'delphes' disabled. Delphes ROOT format will be disabled.",
		missingLib: []string{
			"Library called 'delphes' not found. Delphes ROOT format will be disabled.",
			"To enable this format, please type 'install delphes'.",
		},
		missingHead: []string{
			"Header file called 'modules/ParticlePropagator.h' not found. Delphes ROOT format will be disabled.",
			"To enable this format, please type 'install delphes' package.",
		},
	})
}

// CheckDelfes looks for the tuned Delphes build. It is only ever installed
// locally and reports nothing to the user.
func (c *Checker) CheckDelfes(_ context.Context) Outcome {
	o := Outcome{Capability: CapDelfes}
	if c.opts.DelfesVeto {
		o.Result = Vetoed
		return o
	}

	dir := c.tools("delfes")
	if c.opts.DelfesLibs != "" {
		dir = c.opts.DelfesLibs
	}
	lib, libDir, found := findFile([]string{dir}, sharedLibs("libDelphes"), "")
	if !found {
		o.Result = NotFound
		return o
	}

	incBase := c.tools("delfes")
	if c.opts.DelfesIncludes != "" {
		incBase = c.opts.DelfesIncludes
	}
	header := filepath.Join(incBase, "modules", "ParticlePropagator.h")
	if !isFile(header) {
		o.Result = NotFound
		return o
	}

	c.recordLibrary("Delfes", lib)
	c.recordHeader("Delfes", header)
	c.env = c.env.WithLibraryDir(libDir).WithIncludeDir(incBase, filepath.Join(incBase, "external"))
	o.Result = Ok
	o.Location = lib
	return o
}

// CheckMCatNLOUtils looks for the bundled showering utilities.
func (c *Checker) CheckMCatNLOUtils(_ context.Context) Outcome {
	o := Outcome{Capability: CapMCatNLO}
	c.printer.Library("MCatNLO-utilities")

	lib := c.tools("MCatNLO-utilities", "MCatNLO", "lib", "libstdhep.a")
	if !isFile(lib) {
		return c.fail(o, NotFound,
			"MCatNLO-utilities not found. Showering aMCatNLO events deactivated.",
			"To install the utilities, please type 'install MCatNLO-utilities'.")
	}
	o.Location = lib
	return c.ok(o)
}

// CheckFastJet looks for fastjet-config on PATH, then in the bundled
// installation whose bin directory is then put in front of PATH.
func (c *Checker) CheckFastJet(ctx context.Context) Outcome {
	o := Outcome{Capability: CapFastJet, Version: "none"}
	c.printer.Library("FastJet")

	if c.opts.FastjetVeto {
		return c.fail(o, Vetoed, "The FastJet package is disabled. JetClustering algorithms are disabled.")
	}

	bin, _, found := findFile(c.env.ExecSearch(), []string{"fastjet-config"}, "")
	if !found {
		local := c.tools("fastjet", "bin", "fastjet-config")
		if !isFile(local) {
			return c.fail(o, NotFound,
				"The FastJet package not found. JetClustering algorithms are disabled.",
				"To enable this functionnality, please type 'install fastjet'.")
		}
		bin = local
		c.env = c.env.WithExecDir(filepath.Dir(local))
	}

	out, err := c.runner.Run(ctx, bin, "--version")
	if err == nil {
		o.Version = strings.TrimSpace(out)
	}
	o.Location = bin
	return c.ok(o)
}
