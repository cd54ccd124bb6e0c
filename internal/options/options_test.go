package options

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, content string) (InstallationOptions, string) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	opts, err := Parse(strings.NewReader(content), "installation_options.dat", logger)
	require.NoError(t, err)
	return opts, buf.String()
}

func TestParse_AllKeys(t *testing.T) {
	content := `# MadAnalysis 5 installation options
root_includes    = /opt/root/include
root_libs        = /opt/root/lib
delphes_veto     = 1
delphes_includes = /opt/delphes/include
delphes_libs     = /opt/delphes/lib
delfes_veto      = 1
delfes_includes  = /opt/delfes/include
delfes_libs      = /opt/delfes/lib
zlib_veto        = 1
zlib_includes    = /opt/zlib/include
zlib_libs        = /opt/zlib/lib
fastjet_veto     = 1
fastjet_includes = /opt/fastjet/include
fastjet_libs     = /opt/fastjet/lib
pdflatex_veto    = 1
latex_veto       = 1
dvipdf_veto      = 1
`
	opts, logs := parseString(t, content)

	assert.Empty(t, logs)
	assert.Equal(t, InstallationOptions{
		RootIncludes:    "/opt/root/include",
		RootLibs:        "/opt/root/lib",
		DelphesVeto:     true,
		DelphesIncludes: "/opt/delphes/include",
		DelphesLibs:     "/opt/delphes/lib",
		DelfesVeto:      true,
		DelfesIncludes:  "/opt/delfes/include",
		DelfesLibs:      "/opt/delfes/lib",
		ZlibVeto:        true,
		ZlibIncludes:    "/opt/zlib/include",
		ZlibLibs:        "/opt/zlib/lib",
		FastjetVeto:     true,
		FastjetIncludes: "/opt/fastjet/include",
		FastjetLibs:     "/opt/fastjet/lib",
		PdflatexVeto:    true,
		LatexVeto:       true,
		DvipdfVeto:      true,
	}, opts)
}

// The historical parser compared root_includes instead of assigning it, so the
// override never took effect. The value is now stored like every other key.
func TestParse_RootIncludesIsAssigned(t *testing.T) {
	opts, _ := parseString(t, "root_includes = /cern/root/include\n")
	assert.Equal(t, "/cern/root/include", opts.RootIncludes)
}

func TestParse_VetoOnlyForOne(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"0", false},
		{"yes", false},
		{"true", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			opts, _ := parseString(t, "zlib_veto = "+tt.value+"\n")
			assert.Equal(t, tt.want, opts.ZlibVeto)
		})
	}
}

func TestParse_CommentsAndBlankLines(t *testing.T) {
	content := "\n   \n# full comment\nfastjet_veto = 1 # trailing comment\n#zlib_veto = 1\n"
	opts, logs := parseString(t, content)

	assert.True(t, opts.FastjetVeto)
	assert.False(t, opts.ZlibVeto)
	assert.Empty(t, logs)
}

func TestParse_MalformedLinesSkipped(t *testing.T) {
	content := "zlib_veto\nzlib_libs = a = b\nfastjet_veto = 1\n"
	opts, logs := parseString(t, content)

	assert.Empty(t, opts.ZlibLibs)
	assert.True(t, opts.FastjetVeto)
	assert.Equal(t, 2, strings.Count(logs, "incorrect line is skipped"))
	assert.Contains(t, logs, "level=WARN")
}

func TestParse_UnknownKeyWarned(t *testing.T) {
	opts, logs := parseString(t, "madgraph_veto = 1\nlatex_veto = 1\n")

	assert.True(t, opts.LatexVeto)
	assert.Contains(t, logs, `madgraph_veto`)
	assert.Contains(t, logs, "is not found")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "installation_options.dat")
	require.NoError(t, os.WriteFile(path, []byte("dvipdf_veto = 1\n"), 0644))

	opts, err := Load(path, nil)
	require.NoError(t, err)
	assert.True(t, opts.DvipdfVeto)

	_, err = Load(filepath.Join(dir, "missing.dat"), nil)
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	assert.Len(t, Keys(), 17)
	assert.Contains(t, Keys(), "root_includes")
}

func TestKeys_SortedAndReadable(t *testing.T) {
	keys := Keys()
	assert.True(t, sort.StringsAreSorted(keys))
	for _, k := range keys {
		_, ok := InstallationOptions{}.Get(k)
		assert.True(t, ok, k)
	}
}

func TestGet_RoundTrip(t *testing.T) {
	opts, _ := parseString(t, "zlib_veto = 1\nroot_libs = /opt/root/lib\n")

	v, ok := opts.Get("zlib_veto")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	v, _ = opts.Get("latex_veto")
	assert.Equal(t, "0", v)

	v, _ = opts.Get("root_libs")
	assert.Equal(t, "/opt/root/lib", v)

	_, ok = opts.Get("python_veto")
	assert.False(t, ok)
}
