// Package results lists the sweep files in the results directory and lets
// the user open one in the plot view.
package results

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

// OpenMsg asks the plot view to load Path.
type OpenMsg struct {
	Path string
}

// Results holds the listed runs plus the interactive list model.
type Results struct {
	Runs    []Run
	service Service
	list    list.Model
	ready   bool
	width   int
	height  int
	err     error
}

var (
	statusBarStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	resultsTitleBarStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	errStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	faintStyle           = lipgloss.NewStyle().Faint(true)
)

// NewResults lists the runs of svc.
func NewResults(svc Service) *Results {
	r := &Results{service: svc}
	r.Reload()
	return r
}

// Reload lists the results directory again, keeping the list size.
func (r *Results) Reload() {
	if r.service == nil {
		return
	}
	runs, err := r.service.List()
	r.err = err
	if err != nil {
		log.Warn().Err(err).Str("dir", r.service.Dir()).Msg("listing results failed")
		return
	}
	r.Runs = runs
	if r.ready {
		r.list.SetItems(items(runs))
	}
}

func items(runs []Run) []list.Item {
	out := make([]list.Item, 0, len(runs))
	for _, run := range runs {
		out = append(out, runItem{run})
	}
	return out
}

// ensureList creates or resizes the list model based on dimensions.
func (r *Results) ensureList(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	r.width = width
	r.height = height
	listHeight := max(5, height-6)
	if !r.ready {
		l := list.New(items(r.Runs), itemDelegate{}, width-4, listHeight)
		l.Title = "Results"
		l.SetShowStatusBar(true)
		l.SetShowPagination(true)
		l.SetFilteringEnabled(true)
		l.Styles.Title = resultsTitleBarStyle
		l.Styles.StatusBar = statusBarStyle
		l.Styles.PaginationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		l.Styles.HelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
		r.list = l
		r.ready = true
		return
	}
	r.list.SetSize(width-4, listHeight)
}

// Update handles messages for the list. Enter on a run emits an OpenMsg.
func (r *Results) Update(msg tea.Msg, width, height int) tea.Cmd {
	r.ensureList(width, height)
	if !r.ready {
		return nil
	}
	if m, ok := msg.(tea.KeyMsg); ok && r.list.FilterState() != list.Filtering {
		switch m.String() {
		case "esc":
			if r.list.FilterState() == list.FilterApplied {
				r.list.ResetFilter()
				return nil
			}
		case "enter":
			sel, ok := r.list.SelectedItem().(runItem)
			if !ok {
				return nil
			}
			path := sel.Path
			return func() tea.Msg { return OpenMsg{Path: path} }
		}
	}
	var cmd tea.Cmd
	r.list, cmd = r.list.Update(msg)
	return cmd
}

// Filtering reports whether the user is typing a filter.
func (r *Results) Filtering() bool {
	return r.ready && r.list.FilterState() == list.Filtering
}
