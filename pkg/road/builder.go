// Package road turns pointer drags into decorated road segments and marks
// where committed roads cross.
package road

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/frame"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/geo"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/logger"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

var (
	// ErrNotDrawing is returned by Update and Commit outside a drag.
	ErrNotDrawing = errors.New("no road is being drawn")
	// ErrDegenerate means the drag has no length.
	ErrDegenerate = errors.New("road has zero length")
)

// minLength is the shortest drag that produces a road.
const minLength = 1e-3

// State is the builder's drawing state.
type State int

const (
	Idle State = iota
	Drawing
	Committed
)

func (s State) String() string {
	switch s {
	case Drawing:
		return "drawing"
	case Committed:
		return "committed"
	}
	return "idle"
}

// Builder owns the road registry and the intersection decorations.
type Builder struct {
	scene scene.Scene
	loop  *frame.Loop
	cfg   Config

	state   State
	start   scene.Vec3
	preview *Segment

	roads         []*Segment
	intersections []*Intersection
}

// NewBuilder creates a builder that adds roads to sc and animates their
// traffic on loop.
func NewBuilder(sc scene.Scene, loop *frame.Loop, cfg Config) *Builder {
	return &Builder{scene: sc, loop: loop, cfg: cfg}
}

// Config returns the builder's layout.
func (b *Builder) Config() Config {
	return b.cfg
}

// State returns the drawing state.
func (b *Builder) State() State {
	return b.state
}

// Drawing reports whether a drag is in progress.
func (b *Builder) Drawing() bool {
	return b.state == Drawing
}

// Preview returns the segment shown for the current drag, or nil.
func (b *Builder) Preview() *Segment {
	return b.preview
}

// Begin starts a drag at p. A drag already in progress is discarded.
func (b *Builder) Begin(p scene.Vec3) {
	b.dropPreview()
	p.Y = 0
	b.start = p
	b.state = Drawing
}

// Update replaces the preview with a segment from the drag start to p.
func (b *Builder) Update(p scene.Vec3) error {
	if b.state != Drawing {
		return ErrNotDrawing
	}
	b.dropPreview()
	p.Y = 0
	if vec(p).Sub(vec(b.start)).Len() < minLength {
		return ErrDegenerate
	}
	b.preview = newSegment(b.start, p, b.cfg)
	b.show(b.preview)
	return nil
}

// Commit makes the preview permanent and decorates every crossing with a
// previously committed road. Without a preview the drag is abandoned.
func (b *Builder) Commit() (*Segment, []*Intersection, error) {
	if b.state != Drawing {
		return nil, nil, ErrNotDrawing
	}
	seg := b.preview
	if seg == nil {
		b.state = Idle
		return nil, nil, fmt.Errorf("commit road at (%g, %g): %w", b.start.X, b.start.Z, ErrDegenerate)
	}
	b.state = Committed
	b.preview = nil

	prior := b.roads
	b.roads = append(b.roads, seg)

	var found []*Intersection
	for _, other := range prior {
		pt, ok := crossing(seg, other, b.cfg)
		if !ok {
			continue
		}
		in := newIntersection(pt, seg, other, b.cfg)
		b.intersections = append(b.intersections, in)
		b.scene.AddNode(in.Node)
		found = append(found, in)
	}

	logger.Log.WithFields(logrus.Fields{
		"node":          seg.Node.ID,
		"length":        seg.Length,
		"intersections": len(found),
	}).Debug("road committed")

	b.state = Idle
	return seg, found, nil
}

// DrawRoad draws and commits a road from a to b in one call.
func (b *Builder) DrawRoad(from, to scene.Vec3) (*Segment, []*Intersection, error) {
	b.Begin(from)
	if err := b.Update(to); err != nil {
		b.state = Idle
		return nil, nil, err
	}
	return b.Commit()
}

// Roads returns the committed roads in commit order.
func (b *Builder) Roads() []*Segment {
	out := make([]*Segment, len(b.roads))
	copy(out, b.roads)
	return out
}

// Obstacles returns the nodes of the committed roads, for collision checks
// against grid placements. Previews never block.
func (b *Builder) Obstacles() []*scene.Node {
	out := make([]*scene.Node, len(b.roads))
	for i, s := range b.roads {
		out[i] = s.Node
	}
	return out
}

// Len returns the number of committed roads.
func (b *Builder) Len() int {
	return len(b.roads)
}

// Intersections returns the intersection decorations in creation order.
func (b *Builder) Intersections() []*Intersection {
	out := make([]*Intersection, len(b.intersections))
	copy(out, b.intersections)
	return out
}

// Remove deletes the committed road whose node is n. Intersection
// decorations it took part in stay until removed themselves.
func (b *Builder) Remove(n *scene.Node) bool {
	for i, s := range b.roads {
		if s.Node == n {
			b.roads = append(b.roads[:i], b.roads[i+1:]...)
			b.hide(s)
			return true
		}
	}
	return false
}

// RemoveIntersection deletes the intersection decoration whose node is n.
func (b *Builder) RemoveIntersection(n *scene.Node) bool {
	for i, in := range b.intersections {
		if in.Node == n {
			b.intersections = append(b.intersections[:i], b.intersections[i+1:]...)
			b.scene.RemoveNode(n)
			return true
		}
	}
	return false
}

// RoadAt returns the most recent committed road whose carriageway covers
// the ground point (x, z).
func (b *Builder) RoadAt(x, z float64) (*Segment, bool) {
	pt := geo.Pt(x, z)
	for i := len(b.roads) - 1; i >= 0; i-- {
		s := b.roads[i]
		if s.Footprint(b.cfg.Width).Contains(pt) {
			return s, true
		}
	}
	return nil, false
}

func (b *Builder) show(s *Segment) {
	b.scene.AddNode(s.Node)
	for _, v := range s.Vehicles {
		b.loop.Register(v)
	}
	for _, p := range s.Pedestrians {
		b.loop.Register(p)
	}
}

func (b *Builder) hide(s *Segment) {
	b.scene.RemoveNode(s.Node)
	for _, v := range s.Vehicles {
		b.loop.Unregister(v)
	}
	for _, p := range s.Pedestrians {
		b.loop.Unregister(p)
	}
}

func (b *Builder) dropPreview() {
	if b.preview != nil {
		b.hide(b.preview)
		b.preview = nil
	}
}
