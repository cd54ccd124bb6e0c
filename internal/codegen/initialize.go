// Package codegen writes the C++ sources of the user analysis compiled
// against SampleAnalyzer.
package codegen

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/raphaelgruber/ma5-go/internal/analysis"
	"github.com/raphaelgruber/ma5-go/internal/selection"
)

// Multiparticle labels read from the analysis outside reco mode.
const (
	Hadronic  = "hadronic"
	Invisible = "invisible"
)

// WriteJobInitialize writes the body of user::Initialize for a. The output
// depends only on a and is byte-for-byte reproducible.
func WriteJobInitialize(w io.Writer, a *analysis.Analysis) error {
	var b bytes.Buffer

	b.WriteString("bool user::Initialize(const MA5::Configuration& cfg,\n")
	b.WriteString("                      const std::map<std::string,std::string>& parameters)\n")
	b.WriteString("{\n")

	b.WriteString("  // Initializing PhysicsService for MC\n")
	b.WriteString("  PHYSICS->mcConfig().Reset();\n\n")
	if a.Mode == analysis.ModeReco {
		b.WriteString("\n")
		writeIDs(&b, Hadronic, "AddHadronicId", RecoHadronicIDs)
		b.WriteString("\n")
		writeIDs(&b, Invisible, "AddInvisibleId", RecoInvisibleIDs)
		b.WriteString("\n")

		b.WriteString("  // Initializing PhysicsService for RECO\n")
		b.WriteString("  PHYSICS->recConfig().Reset();\n\n")
		writeIsolation(&b, a.Isolation)
		b.WriteString("\n")
	} else {
		writeIDs(&b, Hadronic, "AddHadronicId", a.Multiparticles.Get(Hadronic))
		b.WriteString("\n")
		writeIDs(&b, Invisible, "AddInvisibleId", a.Multiparticles.Get(Invisible))
		b.WriteString("\n")
	}

	if n := len(a.Selection.Cuts()); n != 0 {
		b.WriteString("  // Initializing cut array\n")
		fmt.Fprintf(&b, "  cuts_.Initialize(%d);\n", n)
	}

	b.WriteString("  // Initializing each selection item\n")
	for i, h := range a.Selection.Histograms() {
		writeHistogram(&b, i, h)
	}

	b.WriteString("\n")
	b.WriteString("  // No problem during initialization\n")
	b.WriteString("  return true;\n")
	b.WriteString("}\n\n")

	_, err := w.Write(b.Bytes())
	return err
}

// JobInitialize is WriteJobInitialize into a string.
func JobInitialize(a *analysis.Analysis) string {
	var sb strings.Builder
	_ = WriteJobInitialize(&sb, a) // strings.Builder never fails
	return sb.String()
}

func writeIDs(b *bytes.Buffer, label, method string, ids []int) {
	fmt.Fprintf(b, "  // definition of the multiparticle %q\n", label)
	for _, id := range ids {
		fmt.Fprintf(b, "  PHYSICS->mcConfig().%s(%d);\n", method, id)
	}
}

func writeIsolation(b *bytes.Buffer, iso analysis.Isolation) {
	if iso.Algorithm == analysis.IsolationCone {
		fmt.Fprintf(b, "  PHYSICS->recConfig().UseDeltaRIsolation(%s);\n", formatFloat(iso.Radius))
		return
	}
	fmt.Fprintf(b, "  PHYSICS->recConfig().UseSumPTIsolation(%s,%s);\n", formatFloat(iso.SumPT), formatFloat(iso.ETPT))
}

// writeHistogram names the histogram after its rank k among histograms.
func writeHistogram(b *bytes.Buffer, k int, h *selection.Histogram) {
	fmt.Fprintf(b, "  H%d_ = plots_.Add_", k)
	switch {
	case h.Observable == selection.ObservableNPID:
		fmt.Fprintf(b, "HistoFrequency<Int_t>(\"selection_%d\");\n", k)
	case h.Observable == selection.ObservableNAPID:
		fmt.Fprintf(b, "HistoFrequency<UInt_t>(\"selection_%d\");\n", k)
	case h.LogX:
		fmt.Fprintf(b, "HistoLogX(\"selection_%d\",%d,%s,%s);\n", k, h.NBins, formatFloat(h.XMin), formatFloat(h.XMax))
	default:
		fmt.Fprintf(b, "Histo(\"selection_%d\",%d,%s,%s);\n", k, h.NBins, formatFloat(h.XMin), formatFloat(h.XMax))
	}
}

// formatFloat prints the shortest representation that reads back as a
// double literal: 100 is "100.0", tiny and huge values use an exponent.
func formatFloat(v float64) string {
	if v == 0 {
		return "0.0"
	}
	if abs := math.Abs(v); abs < 1e-4 || abs >= 1e16 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
