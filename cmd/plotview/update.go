package plotview

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// loadedMsg carries the result of loading every requested file.
type loadedMsg struct {
	paths []string
	files []*File
	err   error
}

// loadCmd loads paths through svc off the event loop.
func loadCmd(svc Service, paths []string) tea.Cmd {
	return func() tea.Msg {
		files := make([]*File, 0, len(paths))
		for _, path := range paths {
			f, err := svc.Load(path)
			if err != nil {
				return loadedMsg{paths: paths, err: err}
			}
			files = append(files, f)
		}
		return loadedMsg{paths: paths, files: files}
	}
}

// Open starts loading paths: one file, or two shown side by side.
func (p *Plots) Open(paths ...string) tea.Cmd {
	if len(paths) == 0 || p.service == nil {
		return nil
	}
	if len(paths) > 2 {
		paths = paths[:2]
	}
	p.loading = true
	return loadCmd(p.service, append([]string(nil), paths...))
}

// Reload loads the current files again.
func (p *Plots) Reload() tea.Cmd {
	return p.Open(p.paths...)
}

// HandleUpdate applies load results, key presses and mouse events to the
// view.
func HandleUpdate(p *Plots, msg tea.Msg) (*Plots, tea.Cmd) {
	if p == nil {
		return nil, nil
	}
	switch m := msg.(type) {
	case loadedMsg:
		p.loading = false
		if m.err != nil {
			// keep whatever was on screen
			log.Error().Err(m.err).Strs("files", m.paths).Msg("load failed")
			p.err = m.err
			return p, nil
		}
		p.err = nil
		p.Files = m.files
		p.paths = m.paths
		p.focus, p.selected, p.dragging = 0, 0, false
		p.resize()
		return p, nil
	case tea.KeyMsg:
		return p, p.handleKey(m)
	case tea.MouseMsg:
		p.handleMouse(m)
	}
	return p, nil
}

func (p *Plots) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "r":
		return p.Reload()
	case "tab":
		if n := len(p.panels()); n > 0 {
			p.cancelDrag()
			p.focus = (p.focus + 1) % n
			p.selected = 0
		}
	case "shift+tab":
		if n := len(p.panels()); n > 0 {
			p.cancelDrag()
			p.focus = (p.focus - 1 + n) % n
			p.selected = 0
		}
	case "]":
		if pn := p.focused(); pn != nil && len(pn.Inspectors) > 0 {
			p.selected = (p.selected + 1) % len(pn.Inspectors)
		}
	case "[":
		if pn := p.focused(); pn != nil && len(pn.Inspectors) > 0 {
			p.selected = (p.selected - 1 + len(pn.Inspectors)) % len(pn.Inspectors)
		}
	case "left":
		p.nudge(-1)
	case "right":
		p.nudge(1)
	case "shift+left":
		p.nudge(-10)
	case "shift+right":
		p.nudge(10)
	case "esc":
		p.cancelDrag()
	}
	return nil
}

// nudge moves the selected inspector by cells chart cells.
func (p *Plots) nudge(cells int) {
	pn := p.focused()
	if pn == nil || p.selected >= len(pn.Inspectors) {
		return
	}
	in := pn.Inspectors[p.selected]
	w, h := p.chartSize()
	_, g := newChart(pn.Surface, w, h)
	in.SetPosition(in.Position() + float64(cells)*g.step(in.Orientation()))
}

func (p *Plots) cancelDrag() {
	if !p.dragging {
		return
	}
	p.dragging = false
	if pn := p.focused(); pn != nil && p.selected < len(pn.Inspectors) {
		pn.Inspectors[p.selected].Cancel()
	}
}

func (p *Plots) handleMouse(msg tea.MouseMsg) {
	if p.zones == nil {
		return
	}
	ps := p.panels()
	w, h := p.chartSize()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		for i, pn := range ps {
			z := p.zones.Get(zoneID(i))
			if z == nil || !z.InBounds(msg) {
				continue
			}
			col, row := z.Pos(msg)
			_, g := newChart(pn.Surface, w, h)
			p.focus = i
			// prefer the selected line when two are within reach
			order := append([]int{p.selected}, seq(len(pn.Inspectors))...)
			for _, j := range order {
				if j >= len(pn.Inspectors) {
					continue
				}
				in := pn.Inspectors[j]
				if in.Press(g.value(in.Orientation(), col, row)) {
					p.selected, p.dragging = j, true
					return
				}
			}
			return
		}
	case tea.MouseActionMotion:
		if !p.dragging {
			return
		}
		pn := p.focused()
		if pn == nil {
			return
		}
		z := p.zones.Get(zoneID(p.focus))
		if z == nil || !z.InBounds(msg) {
			return
		}
		col, row := z.Pos(msg)
		_, g := newChart(pn.Surface, w, h)
		in := pn.Inspectors[p.selected]
		in.Move(g.value(in.Orientation(), col, row))
	case tea.MouseActionRelease:
		if !p.dragging {
			return
		}
		p.dragging = false
		if pn := p.focused(); pn != nil {
			pn.Inspectors[p.selected].Release()
		}
	}
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
