// Package analysis loads the YAML description of an analysis: run mode,
// isolation, jet clustering, multiparticles, regions and selection.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/ma5-go/internal/clustering"
	"github.com/raphaelgruber/ma5-go/internal/selection"
)

var ErrInvalidAnalysis = errors.New("invalid analysis")

// Mode is the level the input events are described at.
type Mode int

const (
	ModeParton Mode = iota
	ModeHadron
	ModeReco
)

var modeNames = [...]string{"parton", "hadron", "reco"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidAnalysis, s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	mode, err := ParseMode(value.Value)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Isolation algorithms.
const (
	IsolationCone  = "cone"
	IsolationSumPT = "sumPT"
)

// Isolation configures lepton/photon isolation in reco mode.
type Isolation struct {
	Algorithm string  `yaml:"algorithm"`
	Radius    float64 `yaml:"radius"`
	SumPT     float64 `yaml:"sumPT"`
	ETPT      float64 `yaml:"ET_PT"`
}

// DefaultIsolation is a 0.5 cone.
func DefaultIsolation() Isolation {
	return Isolation{Algorithm: IsolationCone, Radius: 0.5, SumPT: 1.0, ETPT: 0.5}
}

func (i Isolation) validate() error {
	switch i.Algorithm {
	case IsolationCone:
		if i.Radius <= 0 {
			return fmt.Errorf("%w: isolation radius must be positive", ErrInvalidAnalysis)
		}
	case IsolationSumPT:
		if i.SumPT < 0 || i.ETPT < 0 {
			return fmt.Errorf("%w: isolation thresholds must be non-negative", ErrInvalidAnalysis)
		}
	default:
		return fmt.Errorf("%w: unknown isolation algorithm %q", ErrInvalidAnalysis, i.Algorithm)
	}
	return nil
}

// Analysis is a loaded analysis description.
type Analysis struct {
	Mode           Mode
	Isolation      Isolation
	Clustering     *clustering.CDFJetClu
	Multiparticles selection.Multiparticles
	Regions        selection.Regions
	Selection      *selection.Table
}

// New returns an empty parton-level analysis with default settings.
func New(logger *slog.Logger) *Analysis {
	return &Analysis{
		Mode:           ModeParton,
		Isolation:      DefaultIsolation(),
		Clustering:     clustering.NewCDFJetClu(logger),
		Multiparticles: selection.Multiparticles{},
		Selection:      &selection.Table{},
	}
}

// file is the on-disk layout.
type file struct {
	Mode           *Mode             `yaml:"mode"`
	Isolation      *Isolation        `yaml:"isolation"`
	Clustering     map[string]string `yaml:"clustering"`
	Multiparticles map[string][]int  `yaml:"multiparticles"`
	Regions        []string          `yaml:"regions"`
	Selection      []item            `yaml:"selection"`
}

type item struct {
	Kind       string   `yaml:"kind"`
	Observable string   `yaml:"observable"`
	NBins      int      `yaml:"nbins"`
	XMin       float64  `yaml:"xmin"`
	XMax       float64  `yaml:"xmax"`
	LogX       bool     `yaml:"logX"`
	Condition  string   `yaml:"condition"`
	Regions    []string `yaml:"regions"`
}

// Load reads an analysis file.
func Load(path string, logger *slog.Logger) (*Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analysis: %w", err)
	}
	a, err := Parse(data, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Parse decodes an analysis document. Missing sections keep their defaults.
func Parse(data []byte, logger *slog.Logger) (*Analysis, error) {
	iso := DefaultIsolation()
	f := file{Isolation: &iso}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}

	a := New(logger)
	if f.Mode != nil {
		a.Mode = *f.Mode
	}
	if f.Isolation != nil {
		if err := f.Isolation.validate(); err != nil {
			return nil, err
		}
		a.Isolation = *f.Isolation
	}

	// sorted for stable error reporting
	names := make([]string, 0, len(f.Clustering))
	for name := range f.Clustering {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p, err := clustering.ParseParameter(name)
		if err != nil {
			return nil, fmt.Errorf("%w: clustering: %w", ErrInvalidAnalysis, err)
		}
		if err := a.Clustering.Set(p, f.Clustering[name]); err != nil {
			return nil, fmt.Errorf("%w: clustering: %w", ErrInvalidAnalysis, err)
		}
	}

	for name, pids := range f.Multiparticles {
		a.Multiparticles[name] = pids
	}
	a.Regions = f.Regions

	for i, it := range f.Selection {
		switch it.Kind {
		case "histogram", "plot":
			h := &selection.Histogram{
				Observable: it.Observable,
				NBins:      it.NBins,
				XMin:       it.XMin,
				XMax:       it.XMax,
				LogX:       it.LogX,
				Regions:    it.Regions,
			}
			if err := h.Validate(); err != nil {
				return nil, fmt.Errorf("selection item %d: %w", i+1, err)
			}
			a.Selection.Add(h)
		case "cut":
			if it.Condition == "" {
				return nil, fmt.Errorf("%w: selection item %d: cut without condition", ErrInvalidAnalysis, i+1)
			}
			a.Selection.Add(&selection.Cut{Condition: it.Condition, Regions: it.Regions})
		default:
			return nil, fmt.Errorf("%w: selection item %d: unknown kind %q", ErrInvalidAnalysis, i+1, it.Kind)
		}
	}

	if err := a.Regions.Check(a.Selection); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAnalysis, err)
	}
	return a, nil
}
