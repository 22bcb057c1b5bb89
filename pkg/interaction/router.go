// Package interaction maps pointer and key events onto the placement
// engine and the road builder according to the selected tool.
package interaction

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/building"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/grid"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/logger"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/placement"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/road"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

// ErrNoRaycastHit means the pointer ray struck nothing usable.
var ErrNoRaycastHit = errors.New("no raycast hit")

// Action names what an event did.
type Action string

const (
	ActionNone          Action = "none"
	ActionPlaced        Action = "placed"
	ActionRejected      Action = "rejected"
	ActionRemoved       Action = "removed"
	ActionRoadStarted   Action = "road_started"
	ActionRoadPreview   Action = "road_preview"
	ActionRoadCommitted Action = "road_committed"
)

// Result reports the effect of one event. Err is informational: every
// failure has already been absorbed.
type Result struct {
	Action        Action
	Node          *scene.Node
	Cell          grid.Cell
	Intersections []*road.Intersection
	Err           error
}

// Router holds the toolbar state and dispatches pointer events.
type Router struct {
	scene     scene.Scene
	factory   *building.Factory
	placement *placement.Engine
	roads     *road.Builder

	tool       building.Kind
	style      building.Style
	floors     int
	deleteMode bool
}

// New creates a router with the house tool, modern style and the default
// floor count selected.
func New(sc scene.Scene, factory *building.Factory, pl *placement.Engine, roads *road.Builder) *Router {
	return &Router{
		scene:     sc,
		factory:   factory,
		placement: pl,
		roads:     roads,
		tool:      building.House,
		style:     building.Modern,
		floors:    building.DefaultFloors,
	}
}

func (r *Router) Tool() building.Kind   { return r.tool }
func (r *Router) Style() building.Style { return r.style }
func (r *Router) Floors() int           { return r.floors }
func (r *Router) DeleteMode() bool      { return r.deleteMode }

// SetTool selects what pointer-down builds and leaves delete mode.
func (r *Router) SetTool(name string) error {
	k, err := building.ParseKind(name)
	if err != nil {
		return err
	}
	r.tool = k
	r.deleteMode = false
	return nil
}

// SetStyle selects the building style. Unknown styles leave the selection
// unchanged.
func (r *Router) SetStyle(name string) error {
	s, err := building.ParseStyle(name)
	if err != nil {
		return err
	}
	r.style = s
	return nil
}

// SetFloors selects the skyscraper height in floors.
func (r *Router) SetFloors(n int) error {
	if n < 1 || n > building.MaxFloors {
		return fmt.Errorf("floors %d: %w", n, building.ErrInvalidBuildingTypeOrStyle)
	}
	r.floors = n
	return nil
}

// ToggleDeleteMode flips delete mode and returns the new setting.
func (r *Router) ToggleDeleteMode() bool {
	r.deleteMode = !r.deleteMode
	return r.deleteMode
}

// KeyDown handles a key press. Delete and Backspace toggle delete mode; it
// reports whether the key was handled.
func (r *Router) KeyDown(key string) bool {
	switch key {
	case "Delete", "Backspace":
		r.ToggleDeleteMode()
		return true
	}
	return false
}

// PointerDown deletes the struck object in delete mode; otherwise it places
// the selected building or starts a road at the ground point under ray.
func (r *Router) PointerDown(ray scene.Ray) Result {
	hits := r.scene.IntersectRay(ray.Origin, ray.Direction)
	if r.deleteMode {
		return r.deleteAt(hits)
	}

	point, ok := groundPoint(hits)
	if !ok {
		return absorbed(ActionNone, ErrNoRaycastHit)
	}

	if !r.tool.IsBuilding() {
		r.roads.Begin(point)
		return Result{Action: ActionRoadStarted}
	}

	n, err := r.factory.New(r.tool, r.style, r.floors)
	if err != nil {
		return absorbed(ActionNone, err)
	}
	cell, err := r.placement.TryPlace(point.X, point.Z, n)
	if err != nil {
		res := absorbed(ActionRejected, err)
		res.Cell = cell
		return res
	}
	return Result{Action: ActionPlaced, Node: n, Cell: cell}
}

// PointerMove updates the road preview while a road is being drawn.
func (r *Router) PointerMove(ray scene.Ray) Result {
	if !r.roads.Drawing() {
		return Result{Action: ActionNone}
	}
	point, ok := groundPoint(r.scene.IntersectRay(ray.Origin, ray.Direction))
	if !ok {
		return absorbed(ActionNone, ErrNoRaycastHit)
	}
	if err := r.roads.Update(point); err != nil {
		return absorbed(ActionNone, err)
	}
	return Result{Action: ActionRoadPreview, Node: r.roads.Preview().Node}
}

// PointerUp commits the road being drawn.
func (r *Router) PointerUp() Result {
	if !r.roads.Drawing() {
		return Result{Action: ActionNone}
	}
	seg, found, err := r.roads.Commit()
	if err != nil {
		return absorbed(ActionNone, err)
	}
	return Result{Action: ActionRoadCommitted, Node: seg.Node, Intersections: found}
}

func (r *Router) deleteAt(hits []scene.Hit) Result {
	if len(hits) == 0 {
		return absorbed(ActionNone, ErrNoRaycastHit)
	}
	top := hits[0].Node.TopLevel()
	if isGround(top) {
		return Result{Action: ActionNone}
	}

	switch {
	case r.placement.RemoveNode(top):
	case r.roads.Remove(top):
	case r.roads.RemoveIntersection(top):
	case r.scene.RemoveNode(top):
	default:
		return Result{Action: ActionNone}
	}
	logger.Log.WithFields(logrus.Fields{"node": top.ID, "type": top.Type}).Debug("deleted")
	return Result{Action: ActionRemoved, Node: top}
}

func absorbed(a Action, err error) Result {
	logger.Log.WithField("action", a).WithError(err).Debug("pointer event absorbed")
	return Result{Action: a, Err: err}
}

func isGround(n *scene.Node) bool {
	g, _ := n.Metadata["isGround"].(bool)
	return g
}

// groundPoint returns the world point of the nearest hit on the ground.
func groundPoint(hits []scene.Hit) (scene.Vec3, bool) {
	for _, h := range hits {
		if isGround(h.Node) {
			return h.Point, true
		}
	}
	return scene.Vec3{}, false
}
