package cli

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/ma5-go/internal/checker"
)

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status   lipgloss.Color
	Success  lipgloss.Color
	Error    lipgloss.Color
	Disabled lipgloss.Color
	Hint     lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:   lipgloss.Color("#5FAFD7"), // light blue
	Success:  lipgloss.Color("#00D787"), // green
	Error:    lipgloss.Color("#FF005F"), // red
	Disabled: lipgloss.Color("#AF87D7"), // magenta
	Hint:     lipgloss.Color("#6C6C6C"), // dim gray
}

// Style functions for dynamic theming
func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) okStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) disabledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Disabled)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// outcomeMsg carries one finished check
type outcomeMsg checker.Outcome

// finishedMsg carries the result of the whole run
type finishedMsg struct {
	report *checker.Report
	err    error
}

// checkProgressModel is the bubbletea model for a dependency check run.
type checkProgressModel struct {
	events   <-chan tea.Msg
	cancel   context.CancelFunc
	total    int
	outcomes []checker.Outcome
	progress progress.Model
	theme    Theme
	report   *checker.Report
	done     bool
	quitting bool
	err      error
}

// newCheckProgressModel creates a new progress model.
func newCheckProgressModel(events <-chan tea.Msg, cancel context.CancelFunc, total int) checkProgressModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return checkProgressModel{
		events:   events,
		cancel:   cancel,
		total:    total,
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init returns the initial command (wait for the first check).
func (m checkProgressModel) Init() tea.Cmd {
	return tea.Batch(
		m.waitEvent(),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m checkProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, m.waitEvent()
		}

	case outcomeMsg:
		m.outcomes = append(m.outcomes, checker.Outcome(msg))
		return m, m.waitEvent()

	case finishedMsg:
		m.report = msg.report
		m.err = msg.err
		m.done = true
		return m, tea.Quit

	case progress.FrameMsg:
		// Update progress bar animation
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m checkProgressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m checkProgressModel) renderContent() string {
	var b strings.Builder
	for _, o := range m.outcomes {
		if o.Capability == checker.CapDelfes {
			continue // never shown
		}
		fmt.Fprintf(&b, "%5s- %-25s%s\n", " ", o.Capability, m.tag(o))
	}

	if m.done {
		b.WriteString(m.finalView())
		return b.String()
	}

	var pct float64
	if m.total > 0 {
		pct = float64(len(m.outcomes)) / float64(m.total)
	}
	status := m.theme.statusStyle().Render("[checking]")
	counts := fmt.Sprintf("%d/%d dependencies", len(m.outcomes), m.total)
	hint := m.theme.hintStyle().Render("Press Ctrl+C to abort")
	fmt.Fprintf(&b, "%s %s %s\n%s\n", status, m.progress.ViewAs(pct), counts, hint)
	return b.String()
}

func (m checkProgressModel) tag(o checker.Outcome) string {
	switch {
	case o.OK():
		return m.theme.okStyle().Render("[OK]")
	case o.Mandatory:
		return m.theme.errorStyle().Render("[FAILURE]")
	default:
		return m.theme.disabledStyle().Render("[DISABLED]")
	}
}

// finalView renders the completion message.
func (m checkProgressModel) finalView() string {
	if m.quitting {
		return m.theme.hintStyle().Render("\nCheck aborted.\n")
	}
	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("\n✗ Check failed: %s\n", m.err))
	}

	disabled := 0
	for _, o := range m.outcomes {
		if !o.OK() {
			disabled++
		}
	}
	out := m.theme.okStyle().Render("✓ Completed")
	if disabled > 0 {
		out += fmt.Sprintf(" (%d optional dependencies disabled)", disabled)
	}
	return out + "\n"
}

// waitEvent blocks on the next event of the check goroutine.
func (m checkProgressModel) waitEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// RunCheckProgress runs the dependency checks behind an interactive
// progress UI. Status lines are replaced by the UI, so cfg.Out should
// discard output.
func RunCheckProgress(ctx context.Context, cfg checker.Config) (*checker.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// buffered so the checker never blocks on a slow UI
	events := make(chan tea.Msg, 32)
	cfg.OnOutcome = func(o checker.Outcome) { events <- outcomeMsg(o) }
	chk := checker.New(cfg)

	go func() {
		report, err := chk.Run(ctx)
		events <- finishedMsg{report: report, err: err}
	}()

	model := newCheckProgressModel(events, cancel, chk.Count())
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI error: %w", err)
	}

	m, ok := finalModel.(checkProgressModel)
	if !ok {
		return nil, fmt.Errorf("unexpected progress model %T", finalModel)
	}
	return m.report, m.err
}
