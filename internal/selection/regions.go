package selection

import (
	"errors"
	"fmt"
	"io"
	"slices"
)

var ErrUnknownRegion = errors.New("unknown region")

// Multiparticles maps a multiparticle label to its PIDs.
type Multiparticles map[string][]int

// Get returns the PIDs of name, nil when undefined.
func (m Multiparticles) Get(name string) []int {
	return m[name]
}

// Regions is the ordered list of signal regions.
type Regions []string

// Check verifies that every region an item refers to is declared.
func (r Regions) Check(t *Table) error {
	for i, it := range t.items {
		for _, name := range it.AppliesTo() {
			if !slices.Contains(r, name) {
				return fmt.Errorf("%w: %q used by selection item %d", ErrUnknownRegion, name, i+1)
			}
		}
	}
	return nil
}

// Items returns the selection items attached to region, in order.
func (r Regions) Items(region string, t *Table) []Item {
	var out []Item
	for _, it := range t.items {
		regions := it.AppliesTo()
		if len(regions) == 0 || slices.Contains(regions, region) {
			out = append(out, it)
		}
	}
	return out
}

// Display writes the region names and the items attached to each.
func (r Regions) Display(w io.Writer, t *Table) error {
	if len(r) == 0 {
		_, err := fmt.Fprintln(w, "No region defined.")
		return err
	}
	if _, err := fmt.Fprintf(w, "%d region(s) defined:\n", len(r)); err != nil {
		return err
	}
	for _, name := range r {
		items := r.Items(name, t)
		if _, err := fmt.Fprintf(w, "  * %s (%d item(s))\n", name, len(items)); err != nil {
			return err
		}
		for _, it := range items {
			if _, err := fmt.Fprintf(w, "      - %s\n", it); err != nil {
				return err
			}
		}
	}
	return nil
}
