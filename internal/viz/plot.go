// Package viz renders composite trajectories in the terminal: static
// asciigraph charts per exposed port, and a live bubbletea view that
// steps a composed sharer in place.
package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dynwire/internal/sim"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// PlotPorts charts every exposed-port series of a run, one graph per
// port, labelled from the composite interface.
func PlotPorts(res *sim.Result, width, height int) string {
	var s strings.Builder
	for i, series := range res.Ports {
		label := "port"
		if i < len(res.Labels) {
			label = res.Labels[i]
		}
		s.WriteString(PlotSeries(label, series, width, height))
		s.WriteString("\n")
	}
	return s.String()
}

// PlotSeries charts a single labelled series.
func PlotSeries(label string, series []float64, width, height int) string {
	if len(series) < 2 {
		return labelStyle.Render(label+": (no data)") + "\n"
	}
	chart := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(label),
	)
	return graphStyle.Render(chart) + "\n"
}
