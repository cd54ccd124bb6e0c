// Package options reads the user-editable installation options file.
//
// The file is line oriented: "key = value", with '#' starting a comment.
// Malformed lines and unknown keys are reported as warnings and skipped.
package options

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// InstallationOptions holds veto flags and path overrides for optional
// external libraries.
type InstallationOptions struct {
	RootIncludes string
	RootLibs     string

	DelphesVeto     bool
	DelphesIncludes string
	DelphesLibs     string

	DelfesVeto     bool
	DelfesIncludes string
	DelfesLibs     string

	ZlibVeto     bool
	ZlibIncludes string
	ZlibLibs     string

	FastjetVeto     bool
	FastjetIncludes string
	FastjetLibs     string

	PdflatexVeto bool
	LatexVeto    bool
	DvipdfVeto   bool
}

// setters maps every recognized key to its field.
var setters = map[string]func(o *InstallationOptions, v string){
	"root_includes": func(o *InstallationOptions, v string) { o.RootIncludes = v },
	"root_libs":     func(o *InstallationOptions, v string) { o.RootLibs = v },

	"delphes_veto":     func(o *InstallationOptions, v string) { o.DelphesVeto = isVeto(v) },
	"delphes_includes": func(o *InstallationOptions, v string) { o.DelphesIncludes = v },
	"delphes_libs":     func(o *InstallationOptions, v string) { o.DelphesLibs = v },

	"delfes_veto":     func(o *InstallationOptions, v string) { o.DelfesVeto = isVeto(v) },
	"delfes_includes": func(o *InstallationOptions, v string) { o.DelfesIncludes = v },
	"delfes_libs":     func(o *InstallationOptions, v string) { o.DelfesLibs = v },

	"zlib_veto":     func(o *InstallationOptions, v string) { o.ZlibVeto = isVeto(v) },
	"zlib_includes": func(o *InstallationOptions, v string) { o.ZlibIncludes = v },
	"zlib_libs":     func(o *InstallationOptions, v string) { o.ZlibLibs = v },

	"fastjet_veto":     func(o *InstallationOptions, v string) { o.FastjetVeto = isVeto(v) },
	"fastjet_includes": func(o *InstallationOptions, v string) { o.FastjetIncludes = v },
	"fastjet_libs":     func(o *InstallationOptions, v string) { o.FastjetLibs = v },

	"pdflatex_veto": func(o *InstallationOptions, v string) { o.PdflatexVeto = isVeto(v) },
	"latex_veto":    func(o *InstallationOptions, v string) { o.LatexVeto = isVeto(v) },
	"dvipdf_veto":   func(o *InstallationOptions, v string) { o.DvipdfVeto = isVeto(v) },
}

// getters renders fields back in file syntax.
var getters = map[string]func(o InstallationOptions) string{
	"root_includes": func(o InstallationOptions) string { return o.RootIncludes },
	"root_libs":     func(o InstallationOptions) string { return o.RootLibs },

	"delphes_veto":     func(o InstallationOptions) string { return veto(o.DelphesVeto) },
	"delphes_includes": func(o InstallationOptions) string { return o.DelphesIncludes },
	"delphes_libs":     func(o InstallationOptions) string { return o.DelphesLibs },

	"delfes_veto":     func(o InstallationOptions) string { return veto(o.DelfesVeto) },
	"delfes_includes": func(o InstallationOptions) string { return o.DelfesIncludes },
	"delfes_libs":     func(o InstallationOptions) string { return o.DelfesLibs },

	"zlib_veto":     func(o InstallationOptions) string { return veto(o.ZlibVeto) },
	"zlib_includes": func(o InstallationOptions) string { return o.ZlibIncludes },
	"zlib_libs":     func(o InstallationOptions) string { return o.ZlibLibs },

	"fastjet_veto":     func(o InstallationOptions) string { return veto(o.FastjetVeto) },
	"fastjet_includes": func(o InstallationOptions) string { return o.FastjetIncludes },
	"fastjet_libs":     func(o InstallationOptions) string { return o.FastjetLibs },

	"pdflatex_veto": func(o InstallationOptions) string { return veto(o.PdflatexVeto) },
	"latex_veto":    func(o InstallationOptions) string { return veto(o.LatexVeto) },
	"dvipdf_veto":   func(o InstallationOptions) string { return veto(o.DvipdfVeto) },
}

// Keys returns the recognized option keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of key as it would be written in the file.
func (o InstallationOptions) Get(key string) (string, bool) {
	get, ok := getters[key]
	if !ok {
		return "", false
	}
	return get(o), true
}

func veto(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// a veto is active only for the exact value "1"
func isVeto(v string) bool { return v == "1" }

// Load reads the options file at path.
func Load(path string, logger *slog.Logger) (InstallationOptions, error) {
	f, err := os.Open(path)
	if err != nil {
		return InstallationOptions{}, fmt.Errorf("open options file: %w", err)
	}
	defer f.Close()

	return Parse(f, path, logger)
}

// Parse reads options from r. source names the input in warnings.
func Parse(r io.Reader, source string, logger *slog.Logger) (InstallationOptions, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var opts InstallationOptions
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		words := strings.Split(line, "=")
		if len(words) != 2 {
			logger.Warn("incorrect line is skipped", "file", source, "line", lineNo, "content", line)
			continue
		}
		key := strings.TrimSpace(words[0])
		value := strings.TrimSpace(words[1])

		set, ok := setters[key]
		if !ok {
			logger.Warn(fmt.Sprintf("the option called %q is not found", key), "file", source, "line", lineNo)
			continue
		}
		set(&opts, value)
	}
	if err := scanner.Err(); err != nil {
		return opts, fmt.Errorf("read %s: %w", source, err)
	}

	return opts, nil
}
