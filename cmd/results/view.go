package results

import "github.com/charmbracelet/lipgloss"

// View renders the result list.
func (r *Results) View() string {
	title := resultsTitleBarStyle.Render("Results")
	if r.err != nil {
		return title + "\n" + errStyle.Render(r.err.Error())
	}
	if len(r.Runs) == 0 {
		dir := ""
		if r.service != nil {
			dir = " in " + r.service.Dir()
		}
		return title + "\n" + faintStyle.Render("No sweep files"+dir+". Run one from the sweep tab.")
	}
	if !r.ready {
		return title + "\n" + "Loading..."
	}
	return lipgloss.NewStyle().Width(r.width - 4).Render(r.list.View())
}
