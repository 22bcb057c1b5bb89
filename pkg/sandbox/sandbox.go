// Package sandbox wires the engine together and drives it from scripted
// gestures or a transport.
package sandbox

import (
	"time"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/building"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/collision"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/config"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/frame"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/grid"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/interaction"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/placement"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/road"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

// FrameInterval is the frame period used when replaying waits.
const FrameInterval = time.Second / 60

// rayHeight is where scripted clicks cast their rays from.
const rayHeight = 1000.0

// Sandbox is one city. It is not safe for concurrent use.
type Sandbox struct {
	Config    *config.Config
	Scene     *scene.Graph
	Loop      *frame.Loop
	Grid      *grid.Store
	Placement *placement.Engine
	Roads     *road.Builder
	Router    *interaction.Router
}

// New builds an empty city from cfg.
func New(cfg *config.Config) *Sandbox {
	if cfg == nil {
		cfg = config.Default()
	}
	g := scene.NewGraph(cfg.Scene.GroundSize)
	loop := frame.NewLoop()
	store := grid.New(cfg.Grid.CellSize)
	checker := collision.NewChecker(cfg.CollisionConfig())
	roads := road.NewBuilder(g, loop, cfg.Road)
	opts := cfg.PlacementOptions()
	opts.Obstacles = roads
	pl := placement.New(g, store, checker, loop, opts)
	router := interaction.New(g, building.NewFactory(cfg.Scene.Seed), pl, roads)

	return &Sandbox{
		Config:    cfg,
		Scene:     g,
		Loop:      loop,
		Grid:      store,
		Placement: pl,
		Roads:     roads,
		Router:    router,
	}
}

// Step advances animation and deferred work by dt.
func (s *Sandbox) Step(dt time.Duration) {
	s.Loop.Step(dt)
}

// Wait advances the loop by d in frame-sized steps.
func (s *Sandbox) Wait(d time.Duration) {
	for d > 0 {
		dt := FrameInterval
		if d < dt {
			dt = d
		}
		s.Loop.Step(dt)
		d -= dt
	}
}

// Export snapshots the scene graph.
func (s *Sandbox) Export() *scene.Document {
	return s.Scene.Export()
}

// Query returns what occupies the ground point (x, z): a grid object, or
// failing that a road.
func (s *Sandbox) Query(x, z float64) (*scene.Node, bool) {
	if n, ok := s.Placement.Query(x, z); ok {
		return n, true
	}
	if seg, ok := s.Roads.RoadAt(x, z); ok {
		return seg.Node, true
	}
	return nil, false
}

// Click returns the ray a top-down click at (x, z) casts.
func Click(x, z float64) scene.Ray {
	return scene.Down(x, z, rayHeight)
}
