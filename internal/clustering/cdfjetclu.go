// Package clustering holds the parameters of the jet-clustering algorithms
// run by the analysis engine. No clustering happens here; the values are
// handed to the engine as configuration strings.
package clustering

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Defaults of the CDF JetClu cone algorithm.
const (
	DefaultRadius  = 1.0
	DefaultOverlap = 0.5
	DefaultSeed    = 1.0
	DefaultIratch  = 0
	DefaultPTMin   = 5.0
)

// Engine configuration keys understood by the SampleAnalyzer clustering service.
const (
	KeyRadius  = "R"
	KeyPTMin   = "PTmin"
	KeyOverlap = "OverlapThreshold"
	KeySeed    = "SeedThreshold"
	KeyIratch  = "Iratch"
)

var (
	// ErrUnknownParameter is returned for a name outside the parameter set.
	ErrUnknownParameter = errors.New("unknown clustering parameter")

	// ErrInvalidValue is returned when a value fails to parse or is out of domain.
	ErrInvalidValue = errors.New("invalid parameter value")
)

// Parameter identifies one tunable of the cone algorithm.
type Parameter int

const (
	Radius Parameter = iota
	Overlap
	Seed
	Iratch
	PTMin
)

// spec describes how a parameter is parsed, constrained, shown and exported.
type spec struct {
	name  string
	label string
	key   string
	// assign validates raw and stores it; returns a wrapped ErrInvalidValue.
	assign func(c *CDFJetClu, raw string) error
	value  func(c *CDFJetClu) string
}

// specs is ordered as parameters are displayed.
var specs = []spec{
	Radius: {
		name: "radius", label: "cone radius", key: KeyRadius,
		assign: func(c *CDFJetClu, raw string) error {
			v, err := parseFloat(raw, "the cone radius")
			if err != nil {
				return err
			}
			if v <= 0 {
				return fmt.Errorf("%w: the cone radius cannot be negative or null", ErrInvalidValue)
			}
			c.radius = v
			return nil
		},
		value: func(c *CDFJetClu) string { return formatFloat(c.radius) },
	},
	Overlap: {
		name: "overlap", label: "overlap threshold", key: KeyOverlap,
		assign: func(c *CDFJetClu, raw string) error {
			v, err := nonNegative(raw, "the overlap threshold")
			if err != nil {
				return err
			}
			c.overlap = v
			return nil
		},
		value: func(c *CDFJetClu) string { return formatFloat(c.overlap) },
	},
	Seed: {
		name: "seed", label: "seed threshold", key: KeySeed,
		assign: func(c *CDFJetClu, raw string) error {
			v, err := nonNegative(raw, "the seed threshold")
			if err != nil {
				return err
			}
			c.seed = v
			return nil
		},
		value: func(c *CDFJetClu) string { return formatFloat(c.seed) },
	},
	Iratch: {
		name: "iratch", label: "ratcheting parameter", key: KeyIratch,
		assign: func(c *CDFJetClu, raw string) error {
			v, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("%w: the ratcheting parameter must be an integer value", ErrInvalidValue)
			}
			c.iratch = v
			return nil
		},
		value: func(c *CDFJetClu) string { return strconv.Itoa(c.iratch) },
	},
	PTMin: {
		name: "ptmin", label: "PT min (GeV) for produced jets", key: KeyPTMin,
		assign: func(c *CDFJetClu, raw string) error {
			v, err := nonNegative(raw, "the ptmin")
			if err != nil {
				return err
			}
			c.ptmin = v
			return nil
		},
		value: func(c *CDFJetClu) string { return formatFloat(c.ptmin) },
	},
}

// String returns the user-facing parameter name.
func (p Parameter) String() string {
	if p < 0 || int(p) >= len(specs) {
		return fmt.Sprintf("Parameter(%d)", int(p))
	}
	return specs[p].name
}

// ParseParameter maps a user-facing name to its Parameter.
func ParseParameter(name string) (Parameter, error) {
	for i, s := range specs {
		if s.name == name {
			return Parameter(i), nil
		}
	}
	return 0, fmt.Errorf("%w: 'clustering' has no parameter called '%s'", ErrUnknownParameter, name)
}

// CDFJetClu holds the settings of the CDF JetClu cone algorithm.
type CDFJetClu struct {
	radius  float64
	overlap float64
	seed    float64
	iratch  int
	ptmin   float64

	logger *slog.Logger
}

// NewCDFJetClu returns a configuration with default values.
// A nil logger falls back to slog.Default().
func NewCDFJetClu(logger *slog.Logger) *CDFJetClu {
	if logger == nil {
		logger = slog.Default()
	}
	return &CDFJetClu{
		radius:  DefaultRadius,
		overlap: DefaultOverlap,
		seed:    DefaultSeed,
		iratch:  DefaultIratch,
		ptmin:   DefaultPTMin,
		logger:  logger,
	}
}

// Set assigns raw to p. On error the previous value is kept.
func (c *CDFJetClu) Set(p Parameter, raw string) error {
	if p < 0 || int(p) >= len(specs) {
		return fmt.Errorf("%w: %d", ErrUnknownParameter, int(p))
	}
	return specs[p].assign(c, raw)
}

// SetParameter assigns a parameter by name and reports success.
// Failures are logged at error level and leave the configuration untouched.
func (c *CDFJetClu) SetParameter(name, value string) bool {
	p, err := ParseParameter(name)
	if err == nil {
		err = c.Set(p, value)
	}
	if err != nil {
		c.logger.Error(errorMessage(err), "parameter", name, "value", value)
		return false
	}
	return true
}

// Get returns the current value of p formatted for the engine.
func (c *CDFJetClu) Get(p Parameter) string {
	return specs[p].value(c)
}

// Radius returns the cone radius.
func (c *CDFJetClu) Radius() float64 { return c.radius }

// PTMin returns the minimum transverse momentum of produced jets.
func (c *CDFJetClu) PTMin() float64 { return c.ptmin }

// ToEngineConfig returns the five keyed values consumed by the engine.
func (c *CDFJetClu) ToEngineConfig() map[string]string {
	out := make(map[string]string, len(specs))
	for _, s := range specs {
		out[s.key] = s.value(c)
	}
	return out
}

// Display logs every parameter in fixed order.
func (c *CDFJetClu) Display() {
	for i := range specs {
		c.DisplayParameter(Parameter(i))
	}
}

// DisplayParameter logs one parameter with its label.
func (c *CDFJetClu) DisplayParameter(p Parameter) {
	s := specs[p]
	c.logger.Info(fmt.Sprintf("  + %s = %s", s.label, s.value(c)))
}

// Lines returns the Display output as plain strings, for printing to a terminal.
func (c *CDFJetClu) Lines() []string {
	lines := make([]string, 0, len(specs))
	for _, s := range specs {
		lines = append(lines, fmt.Sprintf("  + %s = %s", s.label, s.value(c)))
	}
	return lines
}

// Parameters returns the recognized parameter names in display order.
func (c *CDFJetClu) Parameters() []string {
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.name)
	}
	return names
}

// Values returns the suggested values for a parameter (its default), or nil.
func (c *CDFJetClu) Values(name string) []string {
	p, err := ParseParameter(name)
	if err != nil {
		return nil
	}
	return []string{defaultValue(p)}
}

func defaultValue(p Parameter) string {
	return specs[p].value(NewCDFJetClu(slog.Default()))
}

func parseFloat(raw, what string) (float64, error) {
	raw = strings.TrimSpace(raw)
	// decimal notation only; ParseFloat also takes hex mantissas
	if strings.ContainsAny(raw, "xXpP") {
		return 0, fmt.Errorf("%w: %s must be a float value", ErrInvalidValue, what)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a float value", ErrInvalidValue, what)
	}
	return v, nil
}

func nonNegative(raw, what string) (float64, error) {
	v, err := parseFloat(raw, what)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s cannot be negative", ErrInvalidValue, what)
	}
	return v, nil
}

// formatFloat always keeps a decimal point so the engine reads a float.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// errorMessage strips the sentinel prefix for user-facing logs.
func errorMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrInvalidValue, ErrUnknownParameter} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}
