package sweep

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// UpdateModel updates the sweep form and returns a potential command.
func UpdateModel(m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	if m == nil {
		return nil, nil
	}
	switch msg := msg.(type) {
	case doneMsg:
		m.running = false
		m.control.Refresh()
		if msg.Err != nil {
			log.Error().Err(msg.Err).Msg("sweep failed")
			m.err = msg.Err
			return m, nil
		}
		m.SavedPath = msg.Path
		path := msg.Path
		return m, func() tea.Msg { return SavedMsg{Path: path} }
	}

	if m.running {
		return m, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		if km.String() == "ctrl+g" && !m.control.Editing() {
			m.panel = !m.panel
			if m.panel {
				m.control.Start()
			}
			return m, nil
		}
		if m.panel {
			if km.String() == "esc" && !m.control.Editing() {
				m.panel = false
				return m, nil
			}
			return m, m.control.Update(km)
		}
	}

	// completed (or finished) sweeps wait for the user before starting over
	if m.completed && (m.SavedPath != "" || m.err != nil) {
		if km, ok := msg.(tea.KeyMsg); ok && (km.String() == "enter" || km.String() == "esc") {
			return m.reset(), nil
		}
		return m, nil
	}

	if m.completed && !m.confirmed {
		if km, ok := msg.(tea.KeyMsg); ok {
			s := km.String()
			if s == "y" || s == "enter" {
				m.confirmed = true
				m.running = true
				return m, m.runCmd()
			}
			if s == "n" || s == "esc" {
				return m.reset(), nil
			}
		}
		return m, nil
	}
	cmd := m.Update(msg)
	return m, cmd
}
