package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dynwire/internal/dynamo"
	"github.com/san-kum/dynwire/internal/integrators"
)

const (
	historyCapacity = 600
	substeps        = 4
)

type TickMsg time.Time

// Model steps a continuous composite at a fixed frame rate and charts
// its exposed ports.
type Model struct {
	name    string
	field   dynamo.VectorField
	stepper integrators.Stepper
	labels  []string
	portmap []int
	block   int

	u       dynamo.State
	initial dynamo.State
	p       dynamo.Params
	t, dt   float64
	history [][]float64
	running bool
	failed  error
}

func NewModel(name string, x dynamo.Sharer, stepper integrators.Stepper, u0 dynamo.State, p dynamo.Params, dt float64) (Model, error) {
	c, ok := x.Sys.(dynamo.Continuous)
	if !ok {
		return Model{}, fmt.Errorf("%w: live view needs a vector field", dynamo.ErrNotContinuous)
	}
	labels := make([]string, x.NPorts())
	for i := range labels {
		labels[i] = string(x.Iface.Port(i))
	}
	return Model{
		name:    name,
		field:   c.F,
		stepper: stepper,
		labels:  labels,
		portmap: x.PortMap(),
		block:   x.Block(),
		u:       u0.Clone(),
		initial: u0.Clone(),
		p:       p,
		dt:      dt,
		history: make([][]float64, x.NPorts()),
		running: true,
	}, nil
}

func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.u = m.initial.Clone()
			m.t = 0
			m.failed = nil
			for i := range m.history {
				m.history[i] = nil
			}
		}
	case TickMsg:
		if m.running && m.failed == nil {
			for i := 0; i < substeps; i++ {
				next, err := m.stepper.Step(m.field, m.u, m.p, m.t, m.dt)
				if err != nil {
					m.failed = err
					break
				}
				m.u = next
				m.t += m.dt
			}
			m.observe()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) observe() {
	for i, s := range m.portmap {
		m.history[i] = append(m.history[i], m.u[s*m.block])
		if len(m.history[i]) > historyCapacity {
			m.history[i] = m.history[i][1:]
		}
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	status := "RUNNING"
	if m.failed != nil {
		status = "FAILED: " + m.failed.Error()
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(labelStyle.Render(fmt.Sprintf("t=%.2fs  %s", m.t, status)) + "\n")
	for i, series := range m.history {
		if len(series) < 2 {
			continue
		}
		chart := asciigraph.Plot(series,
			asciigraph.Height(6),
			asciigraph.Width(70),
			asciigraph.Caption(m.labels[i]),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause  R:Reset  Q:Quit"))
	return s.String()
}
