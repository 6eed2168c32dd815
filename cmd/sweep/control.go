package sweep

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/sumwatshade/valvegear/cmd/measure"
)

type editField int

const (
	editNone editField = iota
	editAngle
	editCutoff
)

func (e editField) String() string {
	switch e {
	case editAngle:
		return "Crank angle (deg)"
	case editCutoff:
		return "Cutoff (deg)"
	}
	return ""
}

// Control turns the crank by hand and shows what the assembly measures at
// the current position.
type Control struct {
	runner  *Runner
	input   textinput.Model
	editing editField
	reading Reading
	read    bool // reading holds a successful solve
	err     error
}

// NewControl returns a control panel driving r.
func NewControl(r *Runner) *Control {
	ti := textinput.New()
	ti.CharLimit = 8
	ti.Width = 10
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &Control{runner: r, input: ti}
}

// Start solves the assembly at the runner's current angle and reads it.
func (c *Control) Start() {
	c.apply(c.runner.SetAngle(c.runner.Angle()))
}

// Refresh reads the assembly again without moving it.
func (c *Control) Refresh() {
	c.apply(nil)
}

// Reading returns the last successful reading and whether there is one.
func (c *Control) Reading() (Reading, bool) { return c.reading, c.read }

// Err returns the error of the last action, if it failed.
func (c *Control) Err() error { return c.err }

// Editing reports whether an angle or cutoff is being typed.
func (c *Control) Editing() bool { return c.editing != editNone }

func (c *Control) apply(err error) {
	if err == nil {
		var rd Reading
		if rd, err = c.runner.Read(); err == nil {
			c.reading, c.read, c.err = rd, true, nil
			return
		}
	}
	log.Warn().Err(err).Msg("control panel")
	c.err = err
}

// Update handles a key while the panel is open.
func (c *Control) Update(msg tea.KeyMsg) tea.Cmd {
	if c.Editing() {
		switch msg.String() {
		case "enter":
			c.submit()
			return nil
		case "esc":
			c.stopEditing()
			return nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "left", "h":
		c.apply(c.runner.Jog(-JogStep))
	case "right", "l":
		c.apply(c.runner.Jog(JogStep))
	case "a":
		return c.startEditing(editAngle)
	case "c":
		return c.startEditing(editCutoff)
	}
	return nil
}

func (c *Control) startEditing(f editField) tea.Cmd {
	c.editing = f
	c.input.SetValue("")
	return c.input.Focus()
}

func (c *Control) stopEditing() {
	c.editing = editNone
	c.input.Blur()
}

func (c *Control) submit() {
	f := c.editing
	c.stopEditing()
	v, err := strconv.ParseFloat(strings.TrimSpace(c.input.Value()), 64)
	if err != nil {
		c.err = fmt.Errorf("%s: not a number", strings.ToLower(f.String()))
		return
	}
	if f == editCutoff {
		c.apply(c.runner.SetCutoff(v))
		return
	}
	c.apply(c.runner.SetAngle(v))
}

// View renders the readout, the input line while editing and the key hints.
func (c *Control) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, sweepTitleStyle.Render("Control panel"))
	if rd, ok := c.Reading(); ok {
		cutoff := "-"
		if rd.Cutoff != 0 {
			cutoff = strconv.FormatFloat(rd.Cutoff, 'f', 1, 64) + " deg"
		}
		fmt.Fprintf(b, "Crank %s deg | cutoff %s\n", strconv.FormatFloat(rd.Angle, 'f', 1, 64), cutoff)
		fmt.Fprintf(b, "Piston %s | Valve %s | Lever end [%s, %s]\n",
			mm(rd.Piston), mm(rd.Valve), mm(rd.Lever.First), mm(rd.Lever.Second))
	}
	if c.err != nil {
		fmt.Fprintln(b, errStyle.Render(c.err.Error()))
	}
	if c.Editing() {
		fmt.Fprintf(b, "%s: %s\n", c.editing, c.input.View())
		fmt.Fprintln(b, faint.Render("(enter to apply, esc to cancel)"))
		return b.String()
	}
	fmt.Fprintln(b, faint.Render(fmt.Sprintf("←/→ jog %g deg • a set angle • c set cutoff • esc close", JogStep)))
	return b.String()
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + measure.Unit
}
