package buildenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnviron_SeedsSearchFromExistingDirs(t *testing.T) {
	libA := t.TempDir()
	libB := t.TempDir()
	inc := t.TempDir()
	missing := filepath.Join(t.TempDir(), "gone")

	e := FromEnviron([]string{
		"LD_LIBRARY_PATH=" + libA + ":" + missing,
		"DYLD_LIBRARY_PATH=" + libB,
		"LIBRARY_PATH=" + libA,
		"CPLUS_INCLUDE_PATH=" + inc,
		"PATH=/usr/bin:/bin",
		"HOME=/home/user",
	}, "/opt/ma5")

	assert.Equal(t, []string{libA, libB}, e.LibrarySearch())
	assert.Equal(t, []string{inc}, e.IncludeSearch())
	assert.Equal(t, []string{"/usr/bin", "/bin"}, e.ExecSearch())

	vars := e.Vars()
	assert.Equal(t, libA+":"+missing, vars[VarLDLibraryPath])
	assert.Equal(t, "/opt/ma5", vars[VarBase])
}

func TestFromEnviron_MissingVariables(t *testing.T) {
	e := FromEnviron(nil, "")

	assert.Empty(t, e.LibrarySearch())
	assert.Empty(t, e.IncludeSearch())
	for k, v := range e.Vars() {
		assert.Empty(t, v, k)
	}
	assert.NotContains(t, e.Vars(), VarBase)
}

func TestWithLibraryDir_IsImmutable(t *testing.T) {
	base := New("/opt/ma5")
	extended := base.WithLibraryDir("/opt/ma5/tools/zlib/lib/")

	assert.Empty(t, base.LibrarySearch())
	assert.Empty(t, base.Vars()[VarLDLibraryPath])

	assert.Equal(t, []string{"/opt/ma5/tools/zlib/lib"}, extended.LibrarySearch())
	vars := extended.Vars()
	assert.Equal(t, "/opt/ma5/tools/zlib/lib", vars[VarLDLibraryPath])
	assert.Equal(t, "/opt/ma5/tools/zlib/lib", vars[VarDYLDLibraryPath])
	assert.Equal(t, "/opt/ma5/tools/zlib/lib", vars[VarLibraryPath])
}

func TestWithIncludeDir_Multiple(t *testing.T) {
	e := New("").WithIncludeDir("/a", "/b").WithIncludeDir("/a")

	assert.Equal(t, []string{"/a", "/b"}, e.IncludeSearch())
	assert.Equal(t, "/a:/b:/a", e.Vars()[VarCPlusInclude])
}

func TestWithExecDir_Prepends(t *testing.T) {
	e := FromEnviron([]string{"PATH=/usr/bin:/opt/fj/bin"}, "").WithExecDir("/opt/fj/bin/")

	assert.Equal(t, "/opt/fj/bin:/usr/bin:/opt/fj/bin", e.Vars()[VarPath])
	assert.Equal(t, []string{"/opt/fj/bin", "/usr/bin"}, e.ExecSearch())
}

func TestWithSearchDirs_NotExported(t *testing.T) {
	e := New("").WithSearchDirs([]string{"/usr/lib"}, []string{"/usr/include"})

	assert.Equal(t, []string{"/usr/lib"}, e.LibrarySearch())
	assert.Equal(t, []string{"/usr/include"}, e.IncludeSearch())
	assert.Empty(t, e.Vars()[VarLDLibraryPath])
	assert.Empty(t, e.Vars()[VarCPlusInclude])
}

func TestWithStandardDirs_ExpandsGlobs(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"lib", "lib64", "include"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, d), 0755))
	}

	oldLibs, oldIncs := StandardLibraryPatterns, StandardIncludePatterns
	t.Cleanup(func() { StandardLibraryPatterns, StandardIncludePatterns = oldLibs, oldIncs })
	StandardLibraryPatterns = []string{filepath.Join(root, "lib*")}
	StandardIncludePatterns = []string{filepath.Join(root, "include"), filepath.Join(root, "nope")}

	e := New("").WithStandardDirs()
	assert.Equal(t, []string{filepath.Join(root, "lib"), filepath.Join(root, "lib64")}, e.LibrarySearch())
	assert.Equal(t, []string{filepath.Join(root, "include")}, e.IncludeSearch())
}

func TestEnviron_MergesOverBase(t *testing.T) {
	e := New("/opt/ma5").WithLibraryDir("/x/lib").WithIncludeDir("/x/include")

	base := []string{"HOME=/home/user", "LD_LIBRARY_PATH=/stale"}
	env := e.Environ(base)

	assert.Contains(t, env, "HOME=/home/user")
	assert.Contains(t, env, "LD_LIBRARY_PATH=/x/lib")
	assert.Contains(t, env, "CPLUS_INCLUDE_PATH=/x/include")
	assert.Contains(t, env, "MA5_BASE=/opt/ma5")
	assert.NotContains(t, env, "LD_LIBRARY_PATH=/stale")
	assert.Equal(t, "LD_LIBRARY_PATH=/stale", base[1], "base slice must not be modified")
}
