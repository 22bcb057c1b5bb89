// Package placement snaps objects to grid cells, rejects collisions and
// keeps the grid, the placed list and the scene consistent.
package placement

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/collision"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/frame"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/grid"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/logger"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

var (
	// ErrBlocked is wrapped by every placement rejection.
	ErrBlocked = errors.New("placement blocked")
	// ErrCellOccupied means the target cell already has an occupant.
	ErrCellOccupied = fmt.Errorf("cell occupied: %w", ErrBlocked)
	// ErrOverlap means the object would come too close to a placed object
	// in another cell or to a road.
	ErrOverlap = fmt.Errorf("overlaps placed object: %w", ErrBlocked)
	// ErrNothingToRemove means the cell was already empty.
	ErrNothingToRemove = errors.New("nothing to remove")
)

// State is the engine's request state.
type State int

const (
	Idle State = iota
	Evaluating
)

func (s State) String() string {
	if s == Evaluating {
		return "evaluating"
	}
	return "idle"
}

const (
	markerHeight  = 0.05
	markerAccept  = "#00ff00"
	markerReject  = "#ff0000"
	markerOpacity = 0.5
)

// ObstacleSource lists objects that occupy ground without a grid cell.
type ObstacleSource interface {
	Obstacles() []*scene.Node
}

// Options tune marker feedback. Obstacles, when set, is consulted on every
// placement.
type Options struct {
	MarkerDelay time.Duration
	Obstacles   ObstacleSource
}

// DefaultOptions returns the stock marker timing.
func DefaultOptions() Options {
	return Options{MarkerDelay: 500 * time.Millisecond}
}

// Engine places and removes grid objects. It is the only writer of the grid
// store and the placed list.
type Engine struct {
	scene   scene.Scene
	grid    *grid.Store
	checker *collision.Checker
	loop    *frame.Loop
	opts    Options

	state  State
	placed []*scene.Node

	marker      *scene.Node
	markerTimer *frame.Deferred
}

// New creates an engine.
func New(sc scene.Scene, store *grid.Store, checker *collision.Checker, loop *frame.Loop, opts Options) *Engine {
	if opts.MarkerDelay <= 0 {
		opts.MarkerDelay = DefaultOptions().MarkerDelay
	}
	return &Engine{
		scene:   sc,
		grid:    store,
		checker: checker,
		loop:    loop,
		opts:    opts,
	}
}

// State returns the current request state.
func (e *Engine) State() State {
	return e.state
}

// Grid returns the engine's occupancy store.
func (e *Engine) Grid() *grid.Store {
	return e.grid
}

// TryPlace snaps (x, z) to a cell and places n at the cell origin if the
// cell is free and n stays clear of every placed object and obstacle. Either way a
// transient marker shows the outcome.
func (e *Engine) TryPlace(x, z float64, n *scene.Node) (grid.Cell, error) {
	e.state = Evaluating
	defer func() { e.state = Idle }()

	cell := e.grid.CellKey(x, z)
	pos := scene.Vec3{X: cell.X, Z: cell.Z}
	fields := logrus.Fields{"cell_x": cell.X, "cell_z": cell.Z, "kind": n.Kind}

	var obstacles []*scene.Node
	if e.opts.Obstacles != nil {
		obstacles = e.opts.Obstacles.Obstacles()
	}
	res := e.checker.Check(e.grid, cell, n, pos, e.placed, obstacles)
	switch res.Verdict {
	case collision.CellOccupied:
		e.showMarker(cell, false)
		logger.Log.WithFields(fields).Debug("placement rejected: cell occupied")
		return cell, fmt.Errorf("place %s at (%g, %g): %w", n.Kind, cell.X, cell.Z, ErrCellOccupied)
	case collision.Overlap:
		e.showMarker(cell, false)
		logger.Log.WithFields(fields).WithField("blocker", res.Blocker.ID).Debug("placement rejected: overlap")
		return cell, fmt.Errorf("place %s at (%g, %g): %w", n.Kind, cell.X, cell.Z, ErrOverlap)
	}

	n.Position = pos
	e.grid.Set(cell, n)
	e.placed = append(e.placed, n)
	e.scene.AddNode(n)
	e.showMarker(cell, true)
	logger.Log.WithFields(fields).WithField("node", n.ID).Debug("placed")
	return cell, nil
}

// Remove deletes the occupant of the cell containing (x, z).
func (e *Engine) Remove(x, z float64) (*scene.Node, error) {
	cell := e.grid.CellKey(x, z)
	n, ok := e.grid.Occupant(cell)
	if !ok {
		return nil, fmt.Errorf("remove at (%g, %g): %w", cell.X, cell.Z, ErrNothingToRemove)
	}
	e.detach(cell, n)
	return n, nil
}

// RemoveNode deletes n if it was placed by the engine.
func (e *Engine) RemoveNode(n *scene.Node) bool {
	cell, ok := e.grid.Find(n)
	if !ok {
		return false
	}
	e.detach(cell, n)
	return true
}

func (e *Engine) detach(cell grid.Cell, n *scene.Node) {
	e.scene.RemoveNode(n)
	e.grid.Clear(cell)
	for i, p := range e.placed {
		if p == n {
			e.placed = append(e.placed[:i], e.placed[i+1:]...)
			break
		}
	}
	logger.Log.WithFields(logrus.Fields{
		"cell_x": cell.X,
		"cell_z": cell.Z,
		"node":   n.ID,
	}).Debug("removed")
}

// Query returns the occupant of the cell containing (x, z).
func (e *Engine) Query(x, z float64) (*scene.Node, bool) {
	return e.grid.Occupant(e.grid.CellKey(x, z))
}

// Placed returns the placed objects in placement order.
func (e *Engine) Placed() []*scene.Node {
	out := make([]*scene.Node, len(e.placed))
	copy(out, e.placed)
	return out
}

// Marker returns the visible marker, or nil.
func (e *Engine) Marker() *scene.Node {
	return e.marker
}

// showMarker replaces any visible marker with a cell-sized tile centred
// where the object stands, which removes itself after the marker delay.
func (e *Engine) showMarker(cell grid.Cell, accepted bool) {
	e.clearMarker()

	size := e.grid.Size()
	m := scene.NewNode(scene.EntityMarker)
	m.Material = "marker"
	m.Color = markerReject
	if accepted {
		m.Color = markerAccept
	}
	m.Position = scene.Vec3{X: cell.X, Z: cell.Z}
	m.Extent = scene.Box(size, markerHeight, size)
	m.Metadata = map[string]any{"accepted": accepted, "opacity": markerOpacity}

	e.marker = m
	e.scene.AddNode(m)
	e.markerTimer = e.loop.After(e.opts.MarkerDelay, func() {
		if e.marker == m {
			e.clearMarker()
		}
	})
}

func (e *Engine) clearMarker() {
	if e.markerTimer != nil {
		e.markerTimer.Cancel()
		e.markerTimer = nil
	}
	if e.marker != nil {
		e.scene.RemoveNode(e.marker)
		e.marker = nil
	}
}
