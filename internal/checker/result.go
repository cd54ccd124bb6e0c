package checker

import (
	"errors"
	"fmt"

	"github.com/raphaelgruber/ma5-go/internal/buildenv"
	"github.com/raphaelgruber/ma5-go/internal/records"
)

// ErrMandatoryMissing is returned when a mandatory toolchain check fails.
var ErrMandatoryMissing = errors.New("mandatory dependency missing")

// Result is the outcome class of a single dependency check.
type Result int

const (
	Ok Result = iota
	InvalidValue
	NotFound
	VersionTooLow
	Vetoed
)

func (r Result) String() string {
	switch r {
	case Ok:
		return "ok"
	case InvalidValue:
		return "invalid value"
	case NotFound:
		return "not found"
	case VersionTooLow:
		return "version too low"
	case Vetoed:
		return "vetoed"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Capability names something a later step may need from the host.
type Capability string

const (
	CapGPP        Capability = "g++"
	CapMake       Capability = "make"
	CapROOT       Capability = "root"
	CapGfortran   Capability = "gfortran"
	CapZlib       Capability = "zlib"
	CapDelphes    Capability = "delphes"
	CapDelfes     Capability = "delfes"
	CapMCatNLO    Capability = "mcatnlo-utilities"
	CapFastJet    Capability = "fastjet"
	CapPdfLatex   Capability = "pdflatex"
	CapLatex      Capability = "latex"
	CapDvipdf     Capability = "dvipdf"
	CapTextEditor Capability = "editor"
)

// Provider answers whether a capability is usable. Consumers depend on this
// instead of probing the host themselves.
type Provider interface {
	Has(c Capability) bool
}

// Outcome is the result of checking one dependency.
type Outcome struct {
	Capability Capability
	Result     Result
	Mandatory  bool
	Version    string
	Location   string   // file or directory the dependency was found at
	Messages   []string // diagnostics shown to the user
}

// OK reports whether the dependency is usable.
func (o Outcome) OK() bool { return o.Result == Ok }

// Fatal reports whether the outcome must abort startup.
func (o Outcome) Fatal() bool { return o.Mandatory && o.Result != Ok }

// Report gathers the outcomes of a full check along with the resulting
// build environment and discovered file records.
type Report struct {
	Outcomes []Outcome
	Env      buildenv.Env
	Records  records.Set
	Editor   string
}

// Has implements Provider.
func (r *Report) Has(c Capability) bool {
	o, ok := r.Outcome(c)
	return ok && o.OK()
}

// Outcome returns the outcome recorded for c.
func (r *Report) Outcome(c Capability) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Capability == c {
			return o, true
		}
	}
	return Outcome{}, false
}

// Version returns the detected version of c, or "".
func (r *Report) Version(c Capability) string {
	o, _ := r.Outcome(c)
	return o.Version
}
