// Package buildenv models the search-path environment handed to the external
// build of the analysis engine.
//
// An Env is a value: every With* method returns a new Env and leaves the
// receiver untouched. Nothing here reads or writes the process environment
// after construction; callers render the final state with Environ and pass
// it to child processes.
package buildenv

import (
	"path/filepath"
	"slices"
	"strings"
)

// Variables rendered by Environ.
const (
	VarLDLibraryPath   = "LD_LIBRARY_PATH"
	VarDYLDLibraryPath = "DYLD_LIBRARY_PATH"
	VarLibraryPath     = "LIBRARY_PATH"
	VarCPlusInclude    = "CPLUS_INCLUDE_PATH"
	VarPath            = "PATH"
	VarBase            = "MA5_BASE"
)

// Standard system locations searched after the inherited variables.
var (
	StandardLibraryPatterns = []string{"/usr/lib*", "/usr/local/lib*", "/local/lib*", "/opt/local/lib*"}
	StandardIncludePatterns = []string{"/usr/include", "/usr/local/include", "/local/include", "/opt/local/include"}
)

// Env is the library/include/executable search state of a session.
type Env struct {
	base string

	// where dependency checks look for files
	libSearch []string
	incSearch []string
	binSearch []string

	// what child processes inherit
	ldLibraryPath   []string
	dyldLibraryPath []string
	libraryPath     []string
	cplusInclude    []string
	path            []string
}

// New returns an empty environment rooted at the toolkit base directory.
func New(base string) Env {
	return Env{base: base}
}

// FromEnviron builds an Env from "KEY=value" pairs such as os.Environ().
// Inherited directories seed both the search lists and the exported variables.
func FromEnviron(environ []string, base string) Env {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			vars[k] = v
		}
	}

	e := New(base)
	e.ldLibraryPath = splitList(vars[VarLDLibraryPath])
	e.dyldLibraryPath = splitList(vars[VarDYLDLibraryPath])
	e.libraryPath = splitList(vars[VarLibraryPath])
	e.cplusInclude = splitList(vars[VarCPlusInclude])
	e.path = splitList(vars[VarPath])

	for _, list := range [][]string{e.ldLibraryPath, e.dyldLibraryPath, e.libraryPath} {
		e.libSearch = appendUnique(e.libSearch, expand(list)...)
	}
	e.incSearch = appendUnique(e.incSearch, expand(e.cplusInclude)...)
	e.binSearch = appendUnique(e.binSearch, e.path...)
	return e
}

// WithStandardDirs adds the existing standard system directories to the
// search lists. They are not exported; the compiler already knows them.
func (e Env) WithStandardDirs() Env {
	return e.WithSearchDirs(expand(StandardLibraryPatterns), expand(StandardIncludePatterns))
}

// WithSearchDirs adds directories to the search lists only.
func (e Env) WithSearchDirs(libs, includes []string) Env {
	out := e.clone()
	out.libSearch = appendUnique(out.libSearch, libs...)
	out.incSearch = appendUnique(out.incSearch, includes...)
	return out
}

// WithLibraryDir makes dir loadable: it is appended to every library
// variable and to the library search list.
func (e Env) WithLibraryDir(dir string) Env {
	dir = filepath.Clean(dir)
	out := e.clone()
	out.ldLibraryPath = append(out.ldLibraryPath, dir)
	out.dyldLibraryPath = append(out.dyldLibraryPath, dir)
	out.libraryPath = append(out.libraryPath, dir)
	out.libSearch = appendUnique(out.libSearch, dir)
	return out
}

// WithIncludeDir appends dirs to the include variable and search list.
func (e Env) WithIncludeDir(dirs ...string) Env {
	out := e.clone()
	for _, dir := range dirs {
		dir = filepath.Clean(dir)
		out.cplusInclude = append(out.cplusInclude, dir)
		out.incSearch = appendUnique(out.incSearch, dir)
	}
	return out
}

// WithExecDir puts dir in front of PATH.
func (e Env) WithExecDir(dir string) Env {
	dir = filepath.Clean(dir)
	out := e.clone()
	out.path = append([]string{dir}, out.path...)
	out.binSearch = append([]string{dir}, slices.DeleteFunc(out.binSearch, func(s string) bool { return s == dir })...)
	return out
}

// Base returns the toolkit base directory.
func (e Env) Base() string { return e.base }

// LibrarySearch returns the directories searched for libraries.
func (e Env) LibrarySearch() []string { return slices.Clone(e.libSearch) }

// IncludeSearch returns the directories searched for headers.
func (e Env) IncludeSearch() []string { return slices.Clone(e.incSearch) }

// ExecSearch returns the directories searched for executables, PATH order.
func (e Env) ExecSearch() []string { return slices.Clone(e.binSearch) }

// Vars returns the exported variables as a map.
func (e Env) Vars() map[string]string {
	vars := map[string]string{
		VarLDLibraryPath:   joinList(e.ldLibraryPath),
		VarDYLDLibraryPath: joinList(e.dyldLibraryPath),
		VarLibraryPath:     joinList(e.libraryPath),
		VarCPlusInclude:    joinList(e.cplusInclude),
		VarPath:            joinList(e.path),
	}
	if e.base != "" {
		vars[VarBase] = e.base
	}
	return vars
}

// Environ merges the exported variables over base (typically os.Environ())
// and returns a new slice suitable for exec.Cmd.Env.
func (e Env) Environ(base []string) []string {
	out := slices.Clone(base)
	vars := e.Vars()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		out = setEnvKey(out, k, vars[k])
	}
	return out
}

func (e Env) clone() Env {
	return Env{
		base:            e.base,
		libSearch:       slices.Clone(e.libSearch),
		incSearch:       slices.Clone(e.incSearch),
		binSearch:       slices.Clone(e.binSearch),
		ldLibraryPath:   slices.Clone(e.ldLibraryPath),
		dyldLibraryPath: slices.Clone(e.dyldLibraryPath),
		libraryPath:     slices.Clone(e.libraryPath),
		cplusInclude:    slices.Clone(e.cplusInclude),
		path:            slices.Clone(e.path),
	}
}

// setEnvKey sets or updates an environment variable.
func setEnvKey(env []string, key, value string) []string {
	prefix := key + "="
	for i, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

func splitList(v string) []string {
	var out []string
	for _, item := range filepath.SplitList(v) {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func joinList(items []string) string {
	return strings.Join(items, string(filepath.ListSeparator))
}

// expand resolves glob patterns to the existing paths they match.
func expand(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			continue
		}
		out = appendUnique(out, matches...)
	}
	return out
}

func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		if !slices.Contains(list, item) {
			list = append(list, item)
		}
	}
	return list
}
