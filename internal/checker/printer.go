package checker

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colors of the status tags.
type Theme struct {
	OK       lipgloss.Color
	Failure  lipgloss.Color
	Disabled lipgloss.Color
}

var defaultTheme = Theme{
	OK:       lipgloss.Color("2"), // green
	Failure:  lipgloss.Color("1"), // red
	Disabled: lipgloss.Color("5"), // magenta
}

// Printer writes the "     - name      [OK]" status lines of a check run.
type Printer struct {
	w        io.Writer
	ok       lipgloss.Style
	failure  lipgloss.Style
	disabled lipgloss.Style
}

// NewPrinter renders tags for w; colors are dropped when w is not a terminal.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:        w,
		ok:       r.NewStyle().Foreground(defaultTheme.OK),
		failure:  r.NewStyle().Foreground(defaultTheme.Failure),
		disabled: r.NewStyle().Foreground(defaultTheme.Disabled),
	}
}

// Library starts a status line for a dependency.
func (p *Printer) Library(name string) {
	fmt.Fprintf(p.w, "%5s- %-25s", " ", name)
}

// OK terminates a status line with [OK].
func (p *Printer) OK() {
	fmt.Fprintln(p.w, p.ok.Render("[OK]"))
}

// Fail terminates a status line with [DISABLED] for soft failures or
// [FAILURE] for hard ones.
func (p *Printer) Fail(soft bool) {
	if soft {
		fmt.Fprintln(p.w, p.disabled.Render("[DISABLED]"))
		return
	}
	fmt.Fprintln(p.w, p.failure.Render("[FAILURE]"))
}

// Tag renders the tag of an outcome without a trailing newline.
func (p *Printer) Tag(o Outcome) string {
	switch {
	case o.OK():
		return p.ok.Render("[OK]")
	case o.Mandatory:
		return p.failure.Render("[FAILURE]")
	default:
		return p.disabled.Render("[DISABLED]")
	}
}
