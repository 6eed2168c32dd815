package sweep

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sweepTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("219"))
var faint = lipgloss.NewStyle().Faint(true)
var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
var highlight = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)

// View renders the form, the review prompt or the sweep result, followed by
// the control panel when it is open.
func View(m *Model) string {
	if m == nil {
		return sweepTitleStyle.Render("Sweep") + "\n" + faint.Render("(initializing)")
	}
	b := &strings.Builder{}
	fmt.Fprintln(b, sweepTitleStyle.Render("Sweep"))
	fmt.Fprintln(b, faint.Render("Output dir: "+m.dir))
	writeStatus(b, m)

	switch {
	case m.panel:
		fmt.Fprintln(b)
		b.WriteString(m.control.View())
	case !m.running:
		fmt.Fprintln(b, faint.Render("(ctrl+g for the control panel)"))
	}
	return b.String()
}

func writeStatus(b *strings.Builder, m *Model) {
	if !m.completed && m.form != nil {
		fmt.Fprintln(b, m.form.View())
		return
	}

	c := m.Settings.Cutoffs
	fmt.Fprintf(b, "\nReview: %s | cutoff fwd %g / mid %g / rev %g deg\n", m.Settings.Output, c.Fwd, c.Mid, c.Rev)
	switch {
	case m.running:
		fmt.Fprintln(b, "\nRunning sweep...")
	case m.err != nil:
		fmt.Fprintln(b, errStyle.Render("Sweep failed: "+m.err.Error()))
		fmt.Fprintln(b, faint.Render("(enter to start over)"))
	case m.SavedPath != "":
		fmt.Fprintln(b, highlight.Render("Saved "+m.SavedPath))
		fmt.Fprintln(b, faint.Render("(enter for a new sweep)"))
	default:
		fmt.Fprintln(b, highlight.Render("Press 'y' to run the sweep or 'n' to discard & start over."))
	}
}
