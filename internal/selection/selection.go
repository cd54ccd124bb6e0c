// Package selection holds the ordered list of histograms and cuts of an
// analysis. Order matters: generated code names histograms after their
// position among histograms.
package selection

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

var ErrInvalidHistogram = errors.New("invalid histogram")

// Frequency observables are counted per particle identifier and have no
// binning of their own.
const (
	ObservableNPID  = "NPID"
	ObservableNAPID = "NAPID"
)

// Item is a Histogram or a Cut.
type Item interface {
	// AppliesTo lists the regions the item is attached to; empty means all.
	AppliesTo() []string
	String() string
	item()
}

// Histogram is a plot of an observable.
type Histogram struct {
	Observable string
	NBins      int
	XMin, XMax float64
	LogX       bool
	Regions    []string
}

func (h *Histogram) item() {}

// AppliesTo implements Item.
func (h *Histogram) AppliesTo() []string { return h.Regions }

// Frequency reports whether the histogram counts PIDs.
func (h *Histogram) Frequency() bool {
	return h.Observable == ObservableNPID || h.Observable == ObservableNAPID
}

// MaxBins bounds NBins so edge computation stays small.
const MaxBins = 100000

// Validate checks the binning. Frequency histograms are always valid.
func (h *Histogram) Validate() error {
	if h.Observable == "" {
		return fmt.Errorf("%w: missing observable", ErrInvalidHistogram)
	}
	if h.Frequency() {
		return nil
	}
	switch {
	case h.NBins <= 0:
		return fmt.Errorf("%w: %s: the number of bins must be positive", ErrInvalidHistogram, h.Observable)
	case h.NBins > MaxBins:
		return fmt.Errorf("%w: %s: at most %d bins", ErrInvalidHistogram, h.Observable, MaxBins)
	case !(h.XMin < h.XMax):
		return fmt.Errorf("%w: %s: xmin must be lower than xmax", ErrInvalidHistogram, h.Observable)
	case h.LogX && h.XMin <= 0:
		return fmt.Errorf("%w: %s: a logarithmic axis needs xmin > 0", ErrInvalidHistogram, h.Observable)
	}
	if !strictlyIncreasing(h.edges()) {
		return fmt.Errorf("%w: %s: range too narrow for %d bins", ErrInvalidHistogram, h.Observable, h.NBins)
	}
	return nil
}

// BinEdges returns the NBins+1 bin boundaries, log-spaced when LogX is set.
// It returns nil for frequency histograms and invalid binnings.
func (h *Histogram) BinEdges() []float64 {
	if h.Frequency() || h.Validate() != nil {
		return nil
	}
	return h.edges()
}

func (h *Histogram) edges() []float64 {
	edges := make([]float64, h.NBins+1)
	if h.LogX {
		return floats.LogSpan(edges, h.XMin, h.XMax)
	}
	return floats.Span(edges, h.XMin, h.XMax)
}

func strictlyIncreasing(s []float64) bool {
	for i := 1; i < len(s); i++ {
		if !(s[i] > s[i-1]) {
			return false
		}
	}
	return true
}

func (h *Histogram) String() string {
	if h.Frequency() {
		return "plot " + h.Observable
	}
	s := fmt.Sprintf("plot %s %d %s %s", h.Observable, h.NBins,
		strconv.FormatFloat(h.XMin, 'g', -1, 64), strconv.FormatFloat(h.XMax, 'g', -1, 64))
	if h.LogX {
		s += " [logX]"
	}
	return s
}

// Cut is a selection criterion.
type Cut struct {
	Condition string
	Regions   []string
}

func (c *Cut) item() {}

// AppliesTo implements Item.
func (c *Cut) AppliesTo() []string { return c.Regions }

func (c *Cut) String() string { return "cut " + c.Condition }

// Table is the ordered selection.
type Table struct {
	items []Item
}

// Add appends items.
func (t *Table) Add(items ...Item) {
	t.items = append(t.items, items...)
}

// Items returns the selection in order.
func (t *Table) Items() []Item {
	return slices.Clone(t.items)
}

// Len returns the number of items.
func (t *Table) Len() int { return len(t.items) }

// Histograms returns the histograms in order.
func (t *Table) Histograms() []*Histogram {
	var out []*Histogram
	for _, it := range t.items {
		if h, ok := it.(*Histogram); ok {
			out = append(out, h)
		}
	}
	return out
}

// Cuts returns the cuts in order.
func (t *Table) Cuts() []*Cut {
	var out []*Cut
	for _, it := range t.items {
		if c, ok := it.(*Cut); ok {
			out = append(out, c)
		}
	}
	return out
}
