package cmd

import (
	"os"
	"strings"

	bhelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/viper"

	"github.com/sumwatshade/valvegear/cmd/plotview"
	"github.com/sumwatshade/valvegear/cmd/results"
	"github.com/sumwatshade/valvegear/cmd/sweep"
)

type model struct {
	view    string // one of viewNames
	plots   *plotview.Plots
	results *results.Results
	sweep   *sweep.Model
	zones   *zone.Manager
	open    tea.Cmd // initial load
	width   int
	height  int
	// help / key bindings
	keys keyMap
	help bhelp.Model
}

func initialModel(v *viper.Viper, paths []string) (model, error) {
	svc, err := results.NewFileService(v.GetString(keyResultsDir))
	if err != nil {
		return model{}, err
	}
	zones := zone.New()
	m := model{
		view:    viewPlots,
		plots:   plotview.NewPlots(plotview.NewService(curveOptions(v), panelSettings(v)), zones),
		results: results.NewResults(svc),
		sweep:   sweep.NewModel(svc.Dir(), newSimSession),
		zones:   zones,
		keys:    keys,
		help:    bhelp.New(),
	}
	if len(paths) > 0 {
		m.open = m.plots.Open(resolvePaths(svc, paths)...)
	} else if len(m.results.Runs) > 0 {
		m.view = viewResults
	}
	return m, nil
}

// resolvePaths looks up arguments that are not files on disk as run names in
// the results directory. Unknown names are kept so the load reports them.
func resolvePaths(svc results.Service, args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a
		if _, err := os.Stat(a); err == nil {
			continue
		}
		if r, err := svc.Get(a); err == nil {
			out[i] = r.Path
		}
	}
	return out
}

func newSimSession() sweep.CadSession { return sweep.NewSimSession() }

func (m model) Init() tea.Cmd {
	return m.open
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.plots.SetSize(contentSize(m.width, m.height))
	case results.OpenMsg:
		m.view = viewPlots
		return m, m.plots.Open(msg.Path)
	case sweep.SavedMsg:
		m.results.Reload()
		cmds = append(cmds, m.plots.Open(msg.Path))
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
		return m, m.updateActive(msg)
	case tea.MouseMsg:
		if m.view == viewPlots {
			m.plots, _ = plotview.HandleUpdate(m.plots, msg)
		}
		return m, nil
	}

	// everything else reaches every view; each ignores what is not its own
	var cmd tea.Cmd
	m.plots, cmd = plotview.HandleUpdate(m.plots, msg)
	cmds = append(cmds, cmd)
	m.sweep, cmd = sweep.UpdateModel(m.sweep, msg)
	cmds = append(cmds, cmd)
	w, h := contentSize(m.width, m.height)
	cmds = append(cmds, m.results.Update(msg, w, h))
	return m, tea.Batch(cmds...)
}

// handleGlobalKey applies view switching, help and quit. The sweep form and
// the results filter receive plain letters, so only ctrl bindings are global
// there.
func (m *model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case msg.String() == "ctrl+c":
		return tea.Quit, true
	case key.Matches(msg, m.keys.NextView):
		m.view = nextView(m.view)
		return nil, true
	}
	if m.view == viewSweep || (m.view == viewResults && m.results.Filtering()) {
		return nil, false
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	case key.Matches(msg, m.keys.Plots):
		m.view = viewPlots
		return nil, true
	case key.Matches(msg, m.keys.Results):
		m.view = viewResults
		return nil, true
	case key.Matches(msg, m.keys.Sweep):
		m.view = viewSweep
		return nil, true
	case m.view == viewResults && key.Matches(msg, m.keys.Reload):
		m.results.Reload()
		return nil, true
	}
	return nil, false
}

func (m *model) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.view {
	case viewPlots:
		m.plots, cmd = plotview.HandleUpdate(m.plots, msg)
	case viewResults:
		w, h := contentSize(m.width, m.height)
		cmd = m.results.Update(msg, w, h)
	case viewSweep:
		m.sweep, cmd = sweep.UpdateModel(m.sweep, msg)
	}
	return cmd
}

func nextView(cur string) string {
	for i, n := range viewNames {
		if n == cur {
			return viewNames[(i+1)%len(viewNames)]
		}
	}
	return viewNames[0]
}

func (m model) View() string {
	var body string
	switch m.view {
	case viewPlots:
		body = plotview.View(m.plots)
	case viewResults:
		body = m.results.View()
	case viewSweep:
		body = sweep.View(m.sweep)
	default:
		body = "unknown"
	}

	header := headerStyle.Render(appTitle) + " " + tabs(m.view, max(0, m.width-12))
	sep := dividerStyle.Render(strings.Repeat("─", max(0, m.width)))
	foot := m.help.View(m.keys)
	layout := lipgloss.JoinVertical(lipgloss.Left, header, sep, contentStyle.Render(body), sep, foot)
	if m.width > 0 {
		layout = lipgloss.NewStyle().Width(m.width).Render(layout)
	}
	return m.zones.Scan(layout)
}

// contentSize is the space left for a view inside the padding, header,
// dividers and help line.
func contentSize(width, height int) (int, int) {
	return max(0, width-4), max(0, height-6)
}
