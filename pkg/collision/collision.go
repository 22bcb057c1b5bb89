// Package collision decides whether a candidate object may occupy a
// position given what is already placed.
package collision

import (
	"github.com/sivasanjeevs/3D-City-Builder/pkg/building"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/geo"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/grid"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

// Config holds clearance buffers and the vertical box corrections.
type Config struct {
	// Buffers is the clearance added around an existing object, keyed by
	// that object's kind.
	Buffers       map[building.Kind]float64
	DefaultBuffer float64
	RoofAllowance float64
	FloorSink     float64
}

// DefaultConfig returns the stock clearances.
func DefaultConfig() Config {
	return Config{
		Buffers: map[building.Kind]float64{
			building.Skyscraper: 1.0,
			building.House:      2.0,
			building.Tree:       0.5,
		},
		DefaultBuffer: 1.0,
		RoofAllowance: 2.0,
		FloorSink:     0.1,
	}
}

// Verdict is the outcome of a placement check.
type Verdict int

const (
	Clear Verdict = iota
	CellOccupied
	Overlap
)

func (v Verdict) String() string {
	switch v {
	case Clear:
		return "clear"
	case CellOccupied:
		return "cell_occupied"
	case Overlap:
		return "overlap"
	}
	return "unknown"
}

// Result describes a check. Blocker is the object that caused a rejection.
type Result struct {
	Verdict Verdict
	Blocker *scene.Node
	Box     scene.BoundingBox
}

// Checker evaluates candidates against the grid and placed objects.
type Checker struct {
	cfg Config
}

// NewChecker creates a checker. Missing buffer entries fall back to the
// default buffer.
func NewChecker(cfg Config) *Checker {
	if cfg.Buffers == nil {
		cfg.Buffers = map[building.Kind]float64{}
	}
	return &Checker{cfg: cfg}
}

// Config returns the checker's configuration.
func (c *Checker) Config() Config {
	return c.cfg
}

// Buffer returns the clearance kept around an existing object of kind k.
func (c *Checker) Buffer(k building.Kind) float64 {
	if b, ok := c.cfg.Buffers[k]; ok {
		return b
	}
	return c.cfg.DefaultBuffer
}

// Box returns the world-space box n would occupy at pos. Pitched roofs
// poke above the body and the base is sunk slightly into the ground.
func (c *Checker) Box(n *scene.Node, pos scene.Vec3) scene.BoundingBox {
	box := n.LocalBounds().Translate(pos)
	if box.IsEmpty() {
		return box
	}
	if building.PitchedRoof(building.Kind(n.Kind), building.Style(n.Style)) {
		box.Max.Y += c.cfg.RoofAllowance
		box.Min.Y -= c.cfg.FloorSink
	}
	return box
}

// Check tests candidate at pos in cell. The cell must be free, and the
// candidate's box must stay clear of every placed object's box grown by
// that object's buffer. Obstacles are objects outside the grid, such as
// roads; they are tested by their rotated footprint grown by their buffer.
// Touching boxes count as overlapping.
func (c *Checker) Check(store *grid.Store, cell grid.Cell, candidate *scene.Node, pos scene.Vec3, placed, obstacles []*scene.Node) Result {
	box := c.Box(candidate, pos)
	if occ, ok := store.Occupant(cell); ok {
		return Result{Verdict: CellOccupied, Blocker: occ, Box: box}
	}
	for _, p := range placed {
		if p == candidate {
			continue
		}
		other := c.Box(p, p.Position).Expand(c.Buffer(building.Kind(p.Kind)))
		if box.Intersects(other) {
			return Result{Verdict: Overlap, Blocker: p, Box: box}
		}
	}
	if box.IsEmpty() {
		return Result{Verdict: Clear, Box: box}
	}
	rect := geo.Rect(geo.Pt(box.Min.X, box.Min.Z), geo.Pt(box.Max.X, box.Max.Z))
	for _, o := range obstacles {
		if o == candidate || o.Extent.IsEmpty() {
			continue
		}
		foot, lo, hi := c.footprint(o)
		if box.Min.Y <= hi && lo <= box.Max.Y && rect.Overlaps(foot) {
			return Result{Verdict: Overlap, Blocker: o, Box: box}
		}
	}
	return Result{Verdict: Clear, Box: box}
}

// footprint returns o's extent grown by its buffer as a world-space ground
// polygon, plus its vertical span.
func (c *Checker) footprint(o *scene.Node) (geo.Polygon, float64, float64) {
	ext := o.Extent.Expand(c.Buffer(building.Kind(o.Kind)) / o.WorldScale())
	corners := [4]scene.Vec3{
		{X: ext.Min.X, Y: ext.Min.Y, Z: ext.Min.Z},
		{X: ext.Max.X, Y: ext.Min.Y, Z: ext.Min.Z},
		{X: ext.Max.X, Y: ext.Min.Y, Z: ext.Max.Z},
		{X: ext.Min.X, Y: ext.Min.Y, Z: ext.Max.Z},
	}
	pts := make([]geo.Point2D, len(corners))
	for i, p := range corners {
		w := o.ToWorld(p)
		pts[i] = geo.Pt(w.X, w.Z)
	}
	lo := o.ToWorld(scene.Vec3{Y: ext.Min.Y}).Y
	hi := o.ToWorld(scene.Vec3{Y: ext.Max.Y}).Y
	return geo.NewPolygon(pts...), lo, hi
}
