package install

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInstaller struct {
	executed    []string
	deactivated []string
	fail        map[string]bool
}

func (f *fakeInstaller) Execute(_ context.Context, name string) bool {
	f.executed = append(f.executed, name)
	return !f.fail[name]
}

func (f *fakeInstaller) Deactivate(name string) bool {
	f.deactivated = append(f.deactivated, name)
	return !f.fail["deactivate:"+name]
}

type answer struct {
	ok    bool
	err   error
	asked int
}

func (a *answer) Confirm(string) (bool, error) {
	a.asked++
	return a.ok, a.err
}

func newDispatcher(t *testing.T, opts Options) (*Dispatcher, *fakeInstaller, *bytes.Buffer) {
	t.Helper()
	logs := &bytes.Buffer{}
	if opts.ToolsDir == "" {
		opts.ToolsDir = t.TempDir()
	}
	opts.Logger = slog.New(slog.NewTextHandler(logs, nil))
	inst := &fakeInstaller{fail: map[string]bool{}}
	return NewDispatcher(inst, opts), inst, logs
}

func TestParseComponent(t *testing.T) {
	for _, c := range append(Components(), PADForMA5tuneLocal) {
		got, err := ParseComponent(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseComponent("Delphes")
	assert.ErrorIs(t, err, ErrUnknownComponent)
	assert.Equal(t, "Component(42)", Component(42).String())
}

func TestUsage_ListsComponents(t *testing.T) {
	u := Usage()
	assert.Contains(t, u, "samples zlib fastjet delphes delphesMA5tune gnuplot matplotlib root numpy RecastingTools PAD PADForMA5tune")
	assert.NotContains(t, u, "PADForMA5tunelocal")
}

func TestInstall_Simple(t *testing.T) {
	for _, name := range []string{"samples", "zlib", "gnuplot", "matplotlib", "root", "numpy", "RecastingTools"} {
		t.Run(name, func(t *testing.T) {
			d, inst, _ := newDispatcher(t, Options{})
			ok, err := d.Install(context.Background(), []string{name})
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []string{name}, inst.executed)
			assert.Empty(t, inst.deactivated)
		})
	}
}

func TestInstall_SimpleFailure(t *testing.T) {
	d, inst, _ := newDispatcher(t, Options{})
	inst.fail["zlib"] = true

	ok, err := d.Install(context.Background(), []string{"zlib"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInstall_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no arguments", nil, ErrUsage},
		{"extra argument", []string{"zlib", "extra"}, ErrUsage},
		{"local without archive", []string{"PADForMA5tunelocal"}, ErrUsage},
		{"local with two archives", []string{"PADForMA5tunelocal", "a.tgz", "b.tgz"}, ErrUsage},
		{"unknown", []string{"pythia"}, ErrUnknownComponent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, inst, _ := newDispatcher(t, Options{})
			ok, err := d.Install(context.Background(), tt.args)
			assert.False(t, ok)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Empty(t, inst.executed)
			assert.Empty(t, inst.deactivated)
		})
	}
}

func TestInstall_FastJetInstallsContrib(t *testing.T) {
	d, inst, _ := newDispatcher(t, Options{})

	ok, err := d.Install(context.Background(), []string{"fastjet"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"fastjet", "fastjet-contrib"}, inst.executed)
}

func TestInstall_FastJetFailureStops(t *testing.T) {
	d, inst, _ := newDispatcher(t, Options{})
	inst.fail["fastjet"] = true

	ok, _ := d.Install(context.Background(), []string{"fastjet"})
	assert.False(t, ok)
	assert.Equal(t, []string{"fastjet"}, inst.executed)
}

func TestInstall_DelphesFresh(t *testing.T) {
	d, inst, logs := newDispatcher(t, Options{})

	ok, err := d.Install(context.Background(), []string{"delphes"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"delphesMA5tune"}, inst.deactivated)
	assert.Equal(t, []string{"delphes"}, inst.executed)
	assert.Contains(t, logs.String(), "A previous installation has not been found")
}

func TestInstall_DelphesReactivated(t *testing.T) {
	tools := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tools, "DEACT_delphes"), 0755))
	d, inst, logs := newDispatcher(t, Options{ToolsDir: tools})

	ok, err := d.Install(context.Background(), []string{"delphes"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, inst.executed)
	assert.DirExists(t, filepath.Join(tools, "delphes"))
	assert.NoDirExists(t, filepath.Join(tools, "DEACT_delphes"))
	assert.Contains(t, logs.String(), "Delphes deactivated. Activating it...")
}

func TestInstall_DelphesAlreadyInstalled(t *testing.T) {
	tools := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tools, "delphes"), 0755))
	d, inst, logs := newDispatcher(t, Options{ToolsDir: tools})

	ok, err := d.Install(context.Background(), []string{"delphes"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, inst.executed)
	assert.Contains(t, logs.String(), "please remove the tools/delphes directory")
}

func TestInstall_DeactivationFailureStops(t *testing.T) {
	d, inst, _ := newDispatcher(t, Options{})
	inst.fail["deactivate:delphesMA5tune"] = true

	ok, err := d.Install(context.Background(), []string{"PAD"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, inst.executed)
}

func TestInstall_PADAfterDelphes(t *testing.T) {
	d, inst, _ := newDispatcher(t, Options{})

	ok, err := d.Install(context.Background(), []string{"PAD"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"delphes", "PAD"}, inst.executed)
}

func TestInstall_PADForMA5tune(t *testing.T) {
	d, inst, _ := newDispatcher(t, Options{})

	ok, err := d.Install(context.Background(), []string{"PADForMA5tune"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"delphes"}, inst.deactivated)
	assert.Equal(t, []string{"delphesMA5tune", "PADForMA5tune"}, inst.executed)
}

func TestInstall_PADForMA5tuneLocal(t *testing.T) {
	tools := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tools, "delphesMA5tune"), 0755))
	d, inst, _ := newDispatcher(t, Options{ToolsDir: tools})

	ok, err := d.Install(context.Background(), []string{"PADForMA5tunelocal", "pad.tgz"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"PADForMA5tunelocal_xxx_pad.tgz"}, inst.executed)
}

func TestInstall_DelphesMA5tuneConfirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		a := &answer{ok: false}
		d, inst, _ := newDispatcher(t, Options{Prompter: a})

		ok, err := d.Install(context.Background(), []string{"delphesMA5tune"})
		assert.ErrorIs(t, err, ErrDeclined)
		assert.False(t, ok)
		assert.Equal(t, 1, a.asked)
		assert.Empty(t, inst.executed)
		assert.Empty(t, inst.deactivated)
	})

	t.Run("accepted", func(t *testing.T) {
		a := &answer{ok: true}
		d, inst, _ := newDispatcher(t, Options{Prompter: a})

		ok, err := d.Install(context.Background(), []string{"delphesMA5tune"})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"delphes"}, inst.deactivated)
		assert.Equal(t, []string{"delphesMA5tune"}, inst.executed)
	})

	t.Run("forced", func(t *testing.T) {
		a := &answer{ok: false}
		d, inst, _ := newDispatcher(t, Options{Prompter: a, Forced: true})

		ok, err := d.Install(context.Background(), []string{"delphesMA5tune"})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Zero(t, a.asked)
		assert.Equal(t, []string{"delphesMA5tune"}, inst.executed)
	})

	t.Run("prompt error", func(t *testing.T) {
		a := &answer{err: errors.New("tty closed")}
		d, _, _ := newDispatcher(t, Options{Prompter: a})

		_, err := d.Install(context.Background(), []string{"delphesMA5tune"})
		assert.ErrorContains(t, err, "tty closed")
	})
}

func TestLinePrompter(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"maybe\n\nNo\n", false},
		{"what\nY\n", true},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(strings.ReplaceAll(tt.input, "\n", "|"), func(t *testing.T) {
			var out bytes.Buffer
			p := NewLinePrompter(strings.NewReader(tt.input), &out)
			got, err := p.Confirm("Are you sure? (Y/N)")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasPrefix(out.String(), "Are you sure? (Y/N)\nAnswer: "))
		})
	}
}

func TestExecInstaller_Deactivate(t *testing.T) {
	tools := t.TempDir()
	inst := ExecInstaller{ToolsDir: tools, Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))}

	// nothing installed
	assert.True(t, inst.Deactivate("delphes"))

	require.NoError(t, os.MkdirAll(filepath.Join(tools, "delphes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tools, "delphes", "new"), nil, 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(tools, "DEACT_delphes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tools, "DEACT_delphes", "stale"), nil, 0644))

	assert.True(t, inst.Deactivate("delphes"))
	assert.NoDirExists(t, filepath.Join(tools, "delphes"))
	assert.FileExists(t, filepath.Join(tools, "DEACT_delphes", "new"))
	assert.NoFileExists(t, filepath.Join(tools, "DEACT_delphes", "stale"))
}

func TestExecInstaller_Execute(t *testing.T) {
	for _, bin := range []string{"true", "false"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not available", bin)
		}
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.True(t, ExecInstaller{Command: "true", Logger: logger}.Execute(context.Background(), "zlib"))
	assert.False(t, ExecInstaller{Command: "false", Logger: logger}.Execute(context.Background(), "zlib"))
	assert.False(t, ExecInstaller{Command: filepath.Join(t.TempDir(), "missing"), Logger: logger}.Execute(context.Background(), "zlib"))
}
