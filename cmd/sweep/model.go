package sweep

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Settings is what the form collects before a sweep.
type Settings struct {
	Output  string
	Cutoffs Cutoffs
}

// Model is the sweep settings form and the state of the sweep it starts.
type Model struct {
	Settings   Settings
	SavedPath  string
	form       *huh.Form
	newSession func() CadSession
	control    *Control
	panel      bool // control panel open
	dir        string
	outputStr  string
	fwdStr     string
	midStr     string
	revStr     string
	completed  bool // form has been completed
	confirmed  bool // user confirmed the run
	running    bool
	err        error
}

// NewModel returns a form that writes sweeps into dir. newSession is called
// once; the control panel and every sweep share that session.
func NewModel(dir string, newSession func() CadSession) *Model {
	var s CadSession
	if newSession != nil {
		s = newSession()
	}
	return newModel(dir, newSession, NewControl(NewRunner(s)))
}

func newModel(dir string, newSession func() CadSession, c *Control) *Model {
	m := &Model{newSession: newSession, control: c, dir: dir}
	m.outputStr = "sweep-" + time.Now().Format("20060102-1504")
	m.fwdStr = strconv.FormatFloat(DefaultCutoffFwd, 'f', -1, 64)
	m.midStr = strconv.FormatFloat(DefaultCutoffMid, 'f', -1, 64)
	m.revStr = strconv.FormatFloat(DefaultCutoffRev, 'f', -1, 64)
	m.buildForm()
	return m
}

func (m *Model) buildForm() {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Output file").Value(&m.outputStr).Validate(validateName),
			huh.NewInput().Title("Forward cutoff (deg)").Value(&m.fwdStr).Validate(validateAngle),
			huh.NewInput().Title("Mid cutoff (deg)").Value(&m.midStr).Validate(validateAngle),
			huh.NewInput().Title("Reverse cutoff (deg)").Value(&m.revStr).Validate(validateAngle),
		),
	).WithShowHelp(false)
}

func validateName(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("name required")
	}
	return nil
}

func validateAngle(v string) error {
	a, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return errors.New("not a number")
	}
	if a <= 0 || a >= 180 {
		return errors.New("must be between 0 and 180")
	}
	return nil
}

// Update feeds msg to the form and records the settings once it completes.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m == nil {
		return nil
	}
	if m.form == nil {
		m.buildForm()
	}
	var cmd tea.Cmd
	if updated, ucmd := m.form.Update(msg); ucmd != nil {
		cmd = ucmd
		if f, ok := updated.(*huh.Form); ok {
			m.form = f
		}
	}
	if m.form.State == huh.StateCompleted && !m.completed {
		m.completed = true
		m.Settings = Settings{
			Output: strings.TrimSpace(m.outputStr),
			Cutoffs: Cutoffs{
				Fwd: parseAngle(m.fwdStr, DefaultCutoffFwd),
				Mid: parseAngle(m.midStr, DefaultCutoffMid),
				Rev: parseAngle(m.revStr, DefaultCutoffRev),
			},
		}
	}
	return cmd
}

func parseAngle(v string, def float64) float64 {
	if a, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
		return a
	}
	return def
}

// reset returns a fresh form keeping the session and the control panel.
func (m *Model) reset() *Model {
	n := newModel(m.dir, m.newSession, m.control)
	n.panel = m.panel
	return n
}

// Control returns the crank control panel.
func (m *Model) Control() *Control { return m.control }

// PanelOpen reports whether the control panel has the keyboard.
func (m *Model) PanelOpen() bool { return m != nil && m.panel }

// Running reports whether a sweep is in progress.
func (m *Model) Running() bool { return m != nil && m.running }

// runCmd performs the sweep off the event loop. Input is ignored until it
// reports back, so the runner is not shared while it runs.
func (m *Model) runCmd() tea.Cmd {
	set, dir, r := m.Settings, m.dir, m.control.runner
	return func() tea.Msg {
		r.Cutoffs = set.Cutoffs
		samples, err := r.Run(context.Background())
		if err != nil {
			return doneMsg{Err: err}
		}
		path, err := WriteFile(dir, set.Output, samples)
		return doneMsg{Path: path, Err: err}
	}
}

type doneMsg struct {
	Path string
	Err  error
}

// SavedMsg is sent after a sweep file has been written.
type SavedMsg struct {
	Path string
}
