package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/ma5-go/internal/clustering"
)

func TestSetClusteringValue_Update(t *testing.T) {
	out, err := SetClusteringValue([]byte(recoAnalysis), "radius", "0.7")
	require.NoError(t, err)

	a, err := Parse(out, testLogger())
	require.NoError(t, err)
	cfg := a.Clustering.ToEngineConfig()
	assert.Equal(t, "0.7", cfg[clustering.KeyRadius])
	assert.Equal(t, "20.0", cfg[clustering.KeyPTMin])
	assert.Equal(t, ModeReco, a.Mode)
	assert.Equal(t, 3, a.Selection.Len())
}

func TestSetClusteringValue_Insert(t *testing.T) {
	out, err := SetClusteringValue([]byte("mode: hadron\n"), "seed", "2.5")
	require.NoError(t, err)

	a, err := Parse(out, testLogger())
	require.NoError(t, err)
	assert.Equal(t, ModeHadron, a.Mode)
	assert.Equal(t, "2.5", a.Clustering.ToEngineConfig()[clustering.KeySeed])
}

func TestSetClusteringValue_EmptyDocument(t *testing.T) {
	out, err := SetClusteringValue(nil, "ptmin", "10")
	require.NoError(t, err)

	a, err := Parse(out, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "10.0", a.Clustering.ToEngineConfig()[clustering.KeyPTMin])
}

func TestSetClusteringValue_KeepsComments(t *testing.T) {
	doc := "# my analysis\nmode: parton # events are partons\n"
	out, err := SetClusteringValue([]byte(doc), "radius", "0.4")
	require.NoError(t, err)
	assert.Contains(t, string(out), "# my analysis")
	assert.Contains(t, string(out), "# events are partons")
}

func TestSetClusteringValue_Errors(t *testing.T) {
	_, err := SetClusteringValue([]byte("- a\n- b\n"), "radius", "0.4")
	assert.ErrorIs(t, err, ErrInvalidAnalysis)

	_, err = SetClusteringValue([]byte("clustering: [1, 2]\n"), "radius", "0.4")
	assert.ErrorIs(t, err, ErrInvalidAnalysis)
}

func TestSaveClusteringValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.yaml")

	require.NoError(t, SaveClusteringValue(path, "radius", "0.4"))
	require.NoError(t, SaveClusteringValue(path, "iratch", "1"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	a, err := Parse(data, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "0.4", a.Clustering.ToEngineConfig()[clustering.KeyRadius])
	assert.Equal(t, "1", a.Clustering.ToEngineConfig()[clustering.KeyIratch])
}
