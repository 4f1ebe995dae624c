package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/config"
	"github.com/san-kum/subsim/internal/dynamo"
	"github.com/san-kum/subsim/internal/integrators"
	"github.com/san-kum/subsim/internal/physics"
	"github.com/san-kum/subsim/internal/rigid"
	"github.com/san-kum/subsim/internal/sim"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}
}

func TestFitViewport(t *testing.T) {
	vp := FitViewport([]float64{0, 10}, []float64{0, 2}, 100, 50, 0)

	x, y := vp.ToDots(5, 1, 100, 50)
	if x < 48 || x > 50 || y < 23 || y > 25 {
		t.Errorf("expected center near (49, 24), got (%d, %d)", x, y)
	}

	// one world unit spans the same number of dots on both axes
	perX := (vp.MaxX - vp.MinX) / 100
	perY := (vp.MaxY - vp.MinY) / 50
	if math.Abs(perX-perY) > 1e-12 {
		t.Errorf("aspect not square: %f vs %f", perX, perY)
	}

	_, top := vp.ToDots(5, vp.MaxY, 100, 50)
	if top != 0 {
		t.Errorf("world up should map to the top row, got %d", top)
	}
}

func TestHullWireframe(t *testing.T) {
	tf := dynamo.Transform{Origin: mgl64.Vec3{1, 2, 3}, Rotation: mgl64.QuatIdent()}
	w := HullWireframe(tf, 4, 0.5, 12)

	maxX := math.Inf(-1)
	for _, e := range w.Edges {
		maxX = math.Max(maxX, math.Max(e.Start.X(), e.End.X()))
	}
	if math.Abs(maxX-(1+2+0.5)) > 1e-12 {
		t.Errorf("expected bow at x=3.5, got %f", maxX)
	}
}

func TestCameraProject(t *testing.T) {
	cam := &Camera{Distance: 20, Zoom: 1, Near: 0.1}
	x, y, _, ok := cam.Project(mgl64.Vec3{}, mgl64.Vec3{}, 100, 80)
	if !ok || x != 50 || y != 40 {
		t.Errorf("expected origin at center, got (%d, %d) visible=%v", x, y, ok)
	}
	if _, _, _, ok := cam.Project(mgl64.Vec3{0, 0, 25}, mgl64.Vec3{}, 100, 80); ok {
		t.Error("point behind the camera should not be visible")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "ocean" {
		t.Error("unknown theme should fall back to ocean")
	}
	seen := ThemeOcean
	for range Themes {
		seen = NextTheme(seen)
	}
	if seen.Name != ThemeOcean.Name {
		t.Errorf("cycling every theme should return to ocean, got %s", seen.Name)
	}
}

func TestSparkline(t *testing.T) {
	s := NewStyles(ThemeMinimal)
	if got := s.Sparkline(nil, 5); got != "─────" {
		t.Errorf("expected flat line, got %q", got)
	}
	out := s.Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 4)
	if !strings.Contains(out, "█") {
		t.Errorf("expected a full bar for the max value, got %q", out)
	}
}

func testSamples() []sim.Sample {
	samples := make([]sim.Sample, 50)
	for i := range samples {
		ti := float64(i) * 0.1
		samples[i] = sim.Sample{
			Time:     ti,
			Position: mgl64.Vec3{ti, 0.1 * math.Sin(ti), 0.2 * ti},
			Velocity: mgl64.Vec3{1, 0.1 * math.Cos(ti), 0.2},
			Roll:     0.3 * math.Cos(ti),
		}
	}
	return samples
}

func TestRunCharts(t *testing.T) {
	charts := RunCharts(testSamples(), 40, 6)
	if len(charts) != 5 {
		t.Fatalf("expected 5 charts, got %d", len(charts))
	}
	for _, want := range []string{"attitude", "angular velocity", "angle of attack", "linear velocity", "position"} {
		found := false
		for _, c := range charts {
			if strings.Contains(c, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("missing %s chart", want)
		}
	}
	if got := Chart("empty", nil, 10, 3); !strings.Contains(got, "no data") {
		t.Errorf("expected no data, got %q", got)
	}
}

func TestTrack(t *testing.T) {
	for _, view := range []TrackView{SideView, TopView} {
		out := Track(testSamples(), view, 30, 8)
		if strings.Count(out, "\n") != 7 {
			t.Errorf("%s: expected 8 rows", view)
		}
		if strings.Trim(out, "⠀\n") == "" {
			t.Errorf("%s: nothing drawn", view)
		}
	}
}

func newLiveModel(t *testing.T) Model {
	t.Helper()
	world := rigid.NewWorld(integrators.NewRK4())
	sub, err := config.DefaultSubmarine().Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	s := sim.New(world, sub, physics.DefaultFluid(), sim.DefaultDt, nil)
	if err := s.Setup(sim.Initial{}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	return NewModel(s)
}

func key(k string) tea.KeyMsg {
	if k == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestLiveTicksAndPause(t *testing.T) {
	m := newLiveModel(t)

	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	if m.sim.Steps() != 1 {
		t.Fatalf("expected 1 step, got %d", m.sim.Steps())
	}

	next, _ = m.Update(key(" "))
	m = next.(Model)
	if !m.sim.Paused() {
		t.Fatal("space should pause")
	}

	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if m.sim.Steps() != 1 {
		t.Errorf("paused tick advanced the simulator")
	}

	next, _ = m.Update(key("s"))
	m = next.(Model)
	if m.sim.Steps() != 2 || !m.sim.Paused() {
		t.Errorf("single step: steps=%d paused=%v", m.sim.Steps(), m.sim.Paused())
	}

	next, _ = m.Update(key("r"))
	m = next.(Model)
	if m.sim.Steps() != 0 || len(m.trail) != 0 {
		t.Errorf("reset left steps=%d trail=%d", m.sim.Steps(), len(m.trail))
	}
}

func TestLiveViews(t *testing.T) {
	m := newLiveModel(t)
	for i := 0; i < 5; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}

	for _, want := range []string{"side view", "top view", "orbit view"} {
		out := m.View()
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view", want)
		}
		if !strings.Contains(out, "Thrust") {
			t.Error("expected thrust reading in panel")
		}
		next, _ := m.Update(key("v"))
		m = next.(Model)
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestCanvasSVG(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	out := CanvasSVG(c, 2, ThemeSonar)
	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if CanvasSVG(nil, 2, ThemeSonar) != "" {
		t.Error("nil canvas should render nothing")
	}
}

func TestTrackCanvasSVG(t *testing.T) {
	c := TrackCanvas(testSamples(), SideView, 20, 6)
	if c.Width != 20 || c.Height != 6 {
		t.Fatalf("canvas size %dx%d", c.Width, c.Height)
	}
	if got, want := strings.TrimRight(c.String(), "\n"), Track(testSamples(), SideView, 20, 6); got != want {
		t.Errorf("canvas and text track differ:\n%s\n%s", got, want)
	}

	out := CanvasSVG(c, 4, ThemeOcean)
	if !strings.Contains(out, string(ThemeOcean.Primary)) {
		t.Errorf("missing theme color %s", ThemeOcean.Primary)
	}
	if strings.Count(out, "<circle") == 0 {
		t.Error("track drew no dots")
	}
	if strings.Count(TrackCanvas(nil, SideView, 4, 2).String(), "\u2800") != 8 {
		t.Error("empty track should leave the canvas blank")
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(Themes) {
		t.Fatalf("expected %d names, got %v", len(Themes), names)
	}
	for _, name := range names {
		if GetTheme(name).Name != name {
			t.Errorf("theme %q does not round-trip", name)
		}
	}
}

func TestTrackSVG(t *testing.T) {
	samples := testSamples()
	out := TrackSVG(samples, SideView, 400, 200, ThemeOcean)

	if !strings.Contains(out, "<path") {
		t.Fatal("missing track path")
	}
	if n := strings.Count(out, " L"); n != len(samples)-1 {
		t.Errorf("expected %d segments, got %d", len(samples)-1, n)
	}
	if !strings.Contains(out, "side view") {
		t.Error("missing view label")
	}
	if TrackSVG(samples[:1], TopView, 400, 200, ThemeOcean) != "" {
		t.Error("single sample should render nothing")
	}
}
