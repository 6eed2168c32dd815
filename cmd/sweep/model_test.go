package sweep

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAngle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		wantErr bool
	}{
		{"60", false},
		{" 80.5 ", false},
		{"0", true},
		{"180", true},
		{"abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if tt.wantErr {
				assert.Error(t, validateAngle(tt.in))
			} else {
				assert.NoError(t, validateAngle(tt.in))
			}
		})
	}
}

func TestUpdateModelConfirmFlow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := NewModel(dir, func() CadSession { return NewSimSession() })
	m.completed = true
	m.Settings = Settings{Output: "run", Cutoffs: DefaultCutoffs()}

	m, cmd := UpdateModel(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	assert.True(t, m.Running())

	msg := cmd()
	done, ok := msg.(doneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)

	m, cmd = UpdateModel(m, done)
	assert.False(t, m.Running())
	assert.Equal(t, done.Path, m.SavedPath)
	require.NotNil(t, cmd)
	assert.Equal(t, SavedMsg{Path: done.Path}, cmd())
	assert.Contains(t, View(m), "Saved")

	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.completed, "enter starts a new sweep")
}

func TestUpdateModelDiscardAndFailure(t *testing.T) {
	t.Parallel()

	m := NewModel(t.TempDir(), func() CadSession { return NewSimSession() })
	m.completed = true
	m, cmd := UpdateModel(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Nil(t, cmd)
	assert.False(t, m.completed)

	m.completed, m.running = true, true
	m, _ = UpdateModel(m, doneMsg{Err: errors.New("solver diverged")})
	assert.False(t, m.Running())
	assert.Contains(t, View(m), "solver diverged")
}

func keys(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestControlPanel(t *testing.T) {
	t.Parallel()

	sim := NewSimSession()
	m := NewModel(t.TempDir(), func() CadSession { return sim })

	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.True(t, m.PanelOpen())
	rd, ok := m.Control().Reading()
	require.True(t, ok)
	assert.Equal(t, 0.0, rd.Angle)
	assert.InDelta(t, sim.PistonOffset+sim.CrankRadius+sim.ConRodLength, rd.Piston, 1e-9)

	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyLeft})
	rd, _ = m.Control().Reading()
	assert.Equal(t, JogStep, rd.Angle)

	// type an angle, then a mid-gear cutoff: only lead is left on the valve
	tests := []struct {
		key, value string
	}{
		{"a", "90"},
		{"c", "80"},
	}
	for _, tt := range tests {
		m, _ = UpdateModel(m, keys(tt.key))
		require.True(t, m.Control().Editing())
		m, _ = UpdateModel(m, keys(tt.value))
		m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyEnter})
		require.False(t, m.Control().Editing())
		require.NoError(t, m.Control().Err())
	}
	rd, _ = m.Control().Reading()
	assert.Equal(t, 90.0, rd.Angle)
	assert.Equal(t, 80.0, rd.Cutoff)
	assert.InDelta(t, sim.ValveCentre, rd.Valve, 1e-9)
	out := View(m)
	assert.Contains(t, out, "Crank 90.0 deg | cutoff 80.0 deg")
	assert.Contains(t, out, "Valve 150.00 mm")

	// a bad entry keeps the last reading
	m, _ = UpdateModel(m, keys("a"))
	m, _ = UpdateModel(m, keys("x"))
	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Error(t, m.Control().Err())
	rd, _ = m.Control().Reading()
	assert.Equal(t, 90.0, rd.Angle)

	// esc while typing only cancels the entry
	m, _ = UpdateModel(m, keys("c"))
	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.PanelOpen())
	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.PanelOpen())
	assert.Contains(t, View(m), "ctrl+g")
}

func TestControlPanelSharesSessionWithSweep(t *testing.T) {
	t.Parallel()

	m := NewModel(t.TempDir(), func() CadSession { return NewSimSession() })
	m.completed = true
	m.Settings = Settings{Output: "run", Cutoffs: DefaultCutoffs()}
	m, cmd := UpdateModel(m, keys("y"))
	require.NotNil(t, cmd)
	m, _ = UpdateModel(m, cmd())

	// the readout follows the sweep to its last position
	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyCtrlG})
	rd, ok := m.Control().Reading()
	require.True(t, ok)
	assert.Equal(t, 360.0, rd.Angle)
	assert.Equal(t, DefaultCutoffRev, rd.Cutoff)

	// the panel has the keyboard until it is closed
	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "run.csv", filepath.Base(m.SavedPath))
	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyCtrlG})
	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.completed)
	rd, _ = m.Control().Reading()
	assert.Equal(t, 360.0, rd.Angle, "starting over keeps the session")
}
