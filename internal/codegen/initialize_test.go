package codegen

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/ma5-go/internal/analysis"
	"github.com/raphaelgruber/ma5-go/internal/selection"
)

func newAnalysis(mode analysis.Mode) *analysis.Analysis {
	a := analysis.New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	a.Mode = mode
	return a
}

func TestJobInitialize_Parton(t *testing.T) {
	a := newAnalysis(analysis.ModeParton)
	a.Multiparticles[Hadronic] = []int{21, 1}
	a.Multiparticles[Invisible] = []int{12, -12}
	a.Selection.Add(
		&selection.Histogram{Observable: "PT", NBins: 20, XMin: 0, XMax: 100},
		&selection.Cut{Condition: "PT > 20"},
		&selection.Histogram{Observable: selection.ObservableNPID},
		&selection.Cut{Condition: "MET > 50"},
		&selection.Histogram{Observable: selection.ObservableNAPID},
		&selection.Histogram{Observable: "E", NBins: 10, XMin: 0.1, XMax: 1000, LogX: true},
	)

	want := `bool user::Initialize(const MA5::Configuration& cfg,
                      const std::map<std::string,std::string>& parameters)
{
  // Initializing PhysicsService for MC
  PHYSICS->mcConfig().Reset();

  // definition of the multiparticle "hadronic"
  PHYSICS->mcConfig().AddHadronicId(21);
  PHYSICS->mcConfig().AddHadronicId(1);

  // definition of the multiparticle "invisible"
  PHYSICS->mcConfig().AddInvisibleId(12);
  PHYSICS->mcConfig().AddInvisibleId(-12);

  // Initializing cut array
  cuts_.Initialize(2);
  // Initializing each selection item
  H0_ = plots_.Add_Histo("selection_0",20,0.0,100.0);
  H1_ = plots_.Add_HistoFrequency<Int_t>("selection_1");
  H2_ = plots_.Add_HistoFrequency<UInt_t>("selection_2");
  H3_ = plots_.Add_HistoLogX("selection_3",10,0.1,1000.0);

  // No problem during initialization
  return true;
}

`
	if diff := cmp.Diff(want, JobInitialize(a)); diff != "" {
		t.Errorf("JobInitialize() mismatch (-want +got):\n%s", diff)
	}
}

func TestJobInitialize_NoCutsNoMultiparticles(t *testing.T) {
	a := newAnalysis(analysis.ModeHadron)

	got := JobInitialize(a)

	assert.NotContains(t, got, "cuts_.Initialize")
	assert.NotContains(t, got, "AddHadronicId")
	assert.NotContains(t, got, "recConfig")
	assert.Contains(t, got, "  // definition of the multiparticle \"hadronic\"\n\n  // definition of the multiparticle \"invisible\"\n\n")
}

func TestJobInitialize_RecoUsesEmbeddedTables(t *testing.T) {
	a := newAnalysis(analysis.ModeReco)
	// ignored in reco mode
	a.Multiparticles[Hadronic] = []int{99999}

	got := JobInitialize(a)

	assert.NotContains(t, got, "AddHadronicId(99999)")
	assert.Equal(t, len(RecoHadronicIDs), strings.Count(got, "AddHadronicId("))
	assert.Equal(t, 7, strings.Count(got, "AddInvisibleId("))
	assert.Contains(t, got, "  PHYSICS->mcConfig().Reset();\n\n\n  // definition of the multiparticle \"hadronic\"\n  PHYSICS->mcConfig().AddHadronicId(-20543);\n")
	assert.Contains(t, got, "  PHYSICS->mcConfig().AddInvisibleId(1000022);\n\n  // Initializing PhysicsService for RECO\n  PHYSICS->recConfig().Reset();\n\n  PHYSICS->recConfig().UseDeltaRIsolation(0.5);\n\n")
}

func TestJobInitialize_RecoSumPTIsolation(t *testing.T) {
	a := newAnalysis(analysis.ModeReco)
	a.Isolation = analysis.Isolation{Algorithm: analysis.IsolationSumPT, SumPT: 2, ETPT: 0.25}

	assert.Contains(t, JobInitialize(a), "  PHYSICS->recConfig().UseSumPTIsolation(2.0,0.25);\n")
}

func TestJobInitialize_Deterministic(t *testing.T) {
	a := newAnalysis(analysis.ModeParton)
	a.Multiparticles[Hadronic] = []int{1, 2, 3}
	a.Selection.Add(&selection.Histogram{Observable: "PT", NBins: 4, XMax: 1})

	assert.Equal(t, JobInitialize(a), JobInitialize(a))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteJobInitialize_WriteError(t *testing.T) {
	err := WriteJobInitialize(failingWriter{}, newAnalysis(analysis.ModeParton))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRecoTables(t *testing.T) {
	assert.Len(t, RecoHadronicIDs, 361)
	assert.Equal(t, -20543, RecoHadronicIDs[0])
	assert.Equal(t, 9910551, RecoHadronicIDs[len(RecoHadronicIDs)-1])

	seen := map[int]bool{}
	for _, id := range RecoHadronicIDs {
		assert.False(t, seen[id], "duplicate PID %d", id)
		seen[id] = true
	}
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		0:       "0.0",
		100:     "100.0",
		0.4:     "0.4",
		-2.5:    "-2.5",
		1e-5:    "1e-05",
		1e16:    "1e+16",
		1234567: "1234567.0",
		0.0001:  "0.0001",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatFloat(in), "formatFloat(%v)", in)
	}
}
