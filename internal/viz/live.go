package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/subsim/internal/dynamo"
	"github.com/san-kum/subsim/internal/physics"
	"github.com/san-kum/subsim/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	historyCapacity = 600
	trailCapacity   = 300
)

type TickMsg time.Time

// View is what the canvas shows.
type View int

const (
	ViewSide View = iota
	ViewTop
	ViewOrbit
)

func (v View) String() string {
	switch v {
	case ViewTop:
		return "top"
	case ViewOrbit:
		return "orbit"
	}
	return "side"
}

// Model is the live view of one running simulator: a braille canvas of
// the hull, its trail and force arrows, and a panel of readings.
type Model struct {
	sim        *sim.Simulator
	hullLength float64
	hullRadius float64

	view     View
	camera   *Camera
	theme    Theme
	styles   Styles
	canvas   *Canvas
	trail    []mgl64.Vec3
	roll     []float64
	showHelp bool
	err      error
}

// NewModel wraps a simulator that has already been set up.
func NewModel(s *sim.Simulator) Model {
	sub := s.Submarine()
	theme := ThemeOcean
	return Model{
		sim:        s,
		hullLength: sub.Length(),
		hullRadius: (sub.Width() + sub.Height()) / 4,
		camera:     NewCamera(),
		theme:      theme,
		styles:     NewStyles(theme),
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		trail:      make([]mgl64.Vec3, 0, trailCapacity),
		roll:       make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.sim.TogglePause()
		case "r":
			m.reset()
		case "s", "n":
			if m.sim.Paused() {
				m.sim.Play()
				m.step()
				m.sim.Pause()
			}
		case "v":
			m.view = (m.view + 1) % 3
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = NewStyles(m.theme)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.sim.Paused() {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	if err := m.sim.Step(); err != nil {
		m.err = err
		m.sim.Pause()
		return
	}
	s := m.sim.Sample()
	m.trail = append(m.trail, s.Position)
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[1:]
	}
	m.roll = append(m.roll, s.Roll*180/math.Pi)
	if len(m.roll) > historyCapacity {
		m.roll = m.roll[1:]
	}
}

func (m *Model) reset() {
	if err := m.sim.Reset(); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.trail = m.trail[:0]
	m.roll = m.roll[:0]
}

func (m Model) transform() dynamo.Transform {
	if body := m.sim.Submarine().Body(); body != nil {
		return body.Transform()
	}
	return dynamo.IdentityTransform()
}

// arrowScale makes the largest force arrow half a hull long.
func (m Model) arrowScale(readings []physics.Reading) float64 {
	peak := 0.0
	for _, r := range readings {
		if r.Kind == physics.ForceReading {
			peak = math.Max(peak, r.Magnitude())
		}
	}
	if peak == 0 {
		return 0
	}
	return m.hullLength / 2 / peak
}

func (m *Model) draw(s sim.Sample) {
	m.canvas.Clear()
	tf := m.transform()
	hull := HullWireframe(tf, m.hullLength, m.hullRadius, 12)
	arrows := NewWireframe()
	scale := m.arrowScale(s.Readings)
	for _, r := range s.Readings {
		if r.Kind == physics.ForceReading && r.Magnitude() > 0 {
			arrows.Merge(ArrowWireframe(r.Position, r.Value, scale))
		}
	}

	if m.view == ViewOrbit {
		scene := NewWireframe()
		scene.Merge(hull)
		scene.Merge(arrows)
		scene.Merge(AxesWireframe(s.Position, m.hullLength/3))
		for _, p := range m.trail {
			scene.AddPoint(p)
		}
		Render3D(m.canvas, scene, m.camera, s.Position)
		return
	}

	view := SideView
	if m.view == ViewTop {
		view = TopView
	}
	cx, cy := view.project(s.Position)
	span := m.hullLength * 1.5
	w, h := m.canvas.Dots()
	vp := FitViewport([]float64{cx - span, cx + span}, []float64{cy - span, cy + span}, w, h, 0)

	for _, p := range m.trail {
		x, y := view.project(p)
		m.canvas.Point(vp, x, y)
	}
	for _, set := range []*Wireframe{hull, arrows} {
		for _, e := range set.Edges {
			x0, y0 := view.project(e.Start)
			x1, y1 := view.project(e.End)
			m.canvas.Line(vp, x0, y0, x1, y1)
		}
	}
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return m.styles.Torque.Render("ERROR " + m.err.Error())
	case m.sim.Paused():
		return m.styles.Paused.Render("PAUSED")
	}
	return m.styles.Running.Render("RUNNING")
}

func (m Model) row(label, value string) string {
	return m.styles.Label.Render(label) + m.styles.Value.Render(value) + "\n"
}

// View renders the canvas beside the readings panel.
func (m Model) View() string {
	s := m.sim.Sample()
	m.draw(s)

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("SUBMARINE") + "\n")
	b.WriteString(m.status() + "  " + m.styles.Label.Render(m.view.String()+" view") + "\n\n")
	b.WriteString(m.row("time", fmt.Sprintf("%.2fs", s.Time)))
	b.WriteString(m.row("speed", fmt.Sprintf("%.3f m/s", s.Velocity.Len())))
	b.WriteString(m.row("roll/pitch/yaw", fmt.Sprintf("%6.1f %6.1f %6.1f°", degrees(s.Roll), degrees(s.Pitch), degrees(s.Yaw))))
	b.WriteString(m.row("aoa p/y/r", fmt.Sprintf("%6.1f %6.1f %6.1f°", degrees(s.PitchAoA), degrees(s.YawAoA), degrees(s.RollAoA))))
	b.WriteString(m.row("position", fmt.Sprintf("%.2f %.2f %.2f", s.Position.X(), s.Position.Y(), s.Position.Z())))

	b.WriteString("\nREADINGS\n")
	for _, r := range s.Readings {
		style := m.styles.Force
		if r.Kind == physics.TorqueReading {
			style = m.styles.Torque
		}
		b.WriteString(fmt.Sprintf("%-20s %s\n", r.Name, style.Render(fmt.Sprintf("%9.3f", r.Magnitude()))))
	}

	if len(m.roll) > 1 {
		b.WriteString("\n" + m.styles.Sparkline(m.roll, 36) + "\n")
		chart := asciigraph.Plot(m.roll, asciigraph.Height(4), asciigraph.Width(36), asciigraph.Caption("roll (deg)"))
		b.WriteString(m.styles.Graph.Render(chart) + "\n")
	}
	b.WriteString(m.styles.Help.Render("SP:Pause S:Step R:Reset V:View T:Theme ?:Help Q:Quit"))

	screen := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Canvas.Render(m.canvas.String()),
		m.styles.Panel.Render(b.String()),
	)
	if m.showHelp {
		return helpText + "\n" + screen
	}
	return screen
}

const helpText = `
  Space  pause / resume        S, N  single tick while paused
  R      reset to start        V     side / top / orbit view
  T      cycle theme           x y z rotate orbit camera (shift reverses)
  + -    zoom orbit camera     Q     quit
`
