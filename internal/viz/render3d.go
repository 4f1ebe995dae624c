package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/dynamo"
)

// Camera orbits the origin and projects world points onto the canvas.
type Camera struct {
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
	Near             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 20, RotX: -0.4, RotY: 0.6, Zoom: 1, Near: 0.1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotation() mgl64.Mat3 {
	return mgl64.Rotate3DZ(c.RotZ).Mul3(mgl64.Rotate3DY(c.RotY)).Mul3(mgl64.Rotate3DX(c.RotX))
}

// Project maps p, relative to center, to sub-pixel coordinates on a
// sw x sh canvas. Points behind the near plane are not visible.
func (c *Camera) Project(p, center mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.rotation().Mul3x1(p.Sub(center)).Mul(c.Zoom)
	if rot.Z() >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z())
	pScale := math.Min(float64(sw), float64(sh)) / 8
	sx := int(rot.X()*scale*pScale) + sw/2
	sy := int(-rot.Y()*scale*pScale) + sh/2
	return sx, sy, rot.Z(), sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End mgl64.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe               { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e mgl64.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p mgl64.Vec3)   { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Merge(o *Wireframe)      { w.Edges = append(w.Edges, o.Edges...) }
func (w *Wireframe) Clear()                  { w.Edges = w.Edges[:0] }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far to near, centered on center.
func Render3D(c *Canvas, w *Wireframe, cam *Camera, center mgl64.Vec3) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Width*2, c.Height*4
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, center, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, center, cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

// HullWireframe outlines a capsule of the given length and radius along
// the body X axis, placed by transform: rings at both ends and the
// midship, joined by four stringers.
func HullWireframe(transform dynamo.Transform, length, radius float64, segments int) *Wireframe {
	w := NewWireframe()
	if segments < 3 {
		segments = 3
	}
	half := length / 2
	ring := func(x, r float64) []mgl64.Vec3 {
		pts := make([]mgl64.Vec3, segments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / float64(segments)
			pts[i] = transform.Apply(mgl64.Vec3{x, r * math.Cos(a), r * math.Sin(a)})
		}
		return pts
	}

	stations := []float64{-half, 0, half}
	rings := make([][]mgl64.Vec3, len(stations))
	for i, x := range stations {
		rings[i] = ring(x, radius)
		for j := range rings[i] {
			w.AddEdge(rings[i][j], rings[i][(j+1)%segments])
		}
	}
	for j := 0; j < segments; j += segments / 4 {
		w.AddEdge(rings[0][j], rings[1][j])
		w.AddEdge(rings[1][j], rings[2][j])
	}

	bow := transform.Apply(mgl64.Vec3{half + radius, 0, 0})
	stern := transform.Apply(mgl64.Vec3{-half - radius, 0, 0})
	for j := 0; j < segments; j += segments / 4 {
		w.AddEdge(rings[2][j], bow)
		w.AddEdge(rings[0][j], stern)
	}
	return w
}

// ArrowWireframe draws a vector from origin, scaled.
func ArrowWireframe(origin, v mgl64.Vec3, scale float64) *Wireframe {
	w := NewWireframe()
	tip := origin.Add(v.Mul(scale))
	w.AddEdge(origin, tip)
	w.AddPoint(tip)
	return w
}

func AxesWireframe(origin mgl64.Vec3, l float64) *Wireframe {
	w := NewWireframe()
	w.AddEdge(origin, origin.Add(mgl64.Vec3{l, 0, 0}))
	w.AddEdge(origin, origin.Add(mgl64.Vec3{0, l, 0}))
	w.AddEdge(origin, origin.Add(mgl64.Vec3{0, 0, l}))
	return w
}
