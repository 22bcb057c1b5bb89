package road

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

const (
	ringWidth       = 0.1
	crosswalkStripe = 0.3
	crosswalkLength = 1.5
	crosswalkGap    = 0.4
	stripesPerWalk  = 4
)

// Intersection is the decoration placed where two roads cross.
type Intersection struct {
	Point scene.Vec3
	Roads [2]*Segment
	Node  *scene.Node
}

// Angle returns the angle in radians between two direction vectors.
func Angle(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	return math.Acos(mgl64.Clamp(a.Dot(b)/(la*lb), -1, 1))
}

// IntersectionPoint solves for the crossing of the lines p1 + t*d1 and
// p2 + s*d2. It reports false when the lines are parallel, that is when
// |d1 x d2|^2 < eps.
func IntersectionPoint(p1, d1, p2, d2 mgl64.Vec3, eps float64) (mgl64.Vec3, bool) {
	cross := d1.Cross(d2)
	denom := cross.Dot(cross)
	if denom < eps {
		return mgl64.Vec3{}, false
	}
	t := p2.Sub(p1).Cross(d2).Dot(cross) / denom
	return p1.Add(d1.Mul(t)), true
}

// crossing reports where a and b meet, treating each road as the infinite
// line through its midpoint along its direction.
func crossing(a, b *Segment, cfg Config) (scene.Vec3, bool) {
	if Angle(a.Direction, b.Direction) <= cfg.MinCrossingAngle {
		return scene.Vec3{}, false
	}
	p, ok := IntersectionPoint(vec(a.Midpoint()), a.Direction, vec(b.Midpoint()), b.Direction, cfg.ParallelEpsilon)
	if !ok {
		return scene.Vec3{}, false
	}
	pt := fromVec(p)
	pt.Y = 0
	return pt, true
}

func newIntersection(pt scene.Vec3, a, b *Segment, cfg Config) *Intersection {
	r := cfg.IntersectionRadius

	n := scene.NewNode(scene.EntityIntersection)
	n.Kind = "intersection"
	n.Material = "asphalt"
	n.Color = roadColor
	n.Position = pt
	n.Extent = scene.Box(2*r, cfg.Height, 2*r)
	n.Metadata = map[string]any{
		"radius": r,
		"roads":  []string{a.Node.ID, b.Node.ID},
	}

	for _, s := range []*Segment{a, b} {
		for _, side := range []float64{-1, 1} {
			off := fromVec(s.Direction.Mul(side * r))
			c := child(n, scene.EntityConnector, roadColor,
				scene.Vec3{X: off.X, Z: off.Z},
				scene.Box(cfg.Width, cfg.Height, cfg.Width))
			c.Yaw = s.Yaw
		}
	}

	ring := scene.NewNode(scene.EntityLaneMarking)
	ring.Color = edgeLineColor
	ring.Position = scene.Vec3{Y: cfg.Height}
	ring.Metadata = map[string]any{
		"marking":      "ring",
		"inner_radius": r - ringWidth,
		"outer_radius": r,
	}
	n.Add(ring)

	for i := 0; i < 4; i++ {
		angle := float64(i) * math.Pi / 2
		walk := scene.NewNode(scene.EntityCrosswalk)
		walk.Yaw = -angle
		walk.Metadata = map[string]any{"angle": angle}
		n.Add(walk)
		for j := 0; j < stripesPerWalk; j++ {
			offset := (float64(j) - stripesPerWalk/2 + 0.5) * crosswalkGap
			child(walk, scene.EntityLaneMarking, edgeLineColor,
				scene.Vec3{X: r - 0.5, Y: cfg.Height, Z: offset},
				scene.CenteredBox(crosswalkLength, 0.01, crosswalkStripe))
		}
	}

	return &Intersection{Point: pt, Roads: [2]*Segment{a, b}, Node: n}
}
