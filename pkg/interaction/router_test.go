package interaction

import (
	"errors"
	"testing"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/building"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/collision"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/frame"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/grid"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/logger"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/placement"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/road"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

func init() {
	logger.Silence()
}

type fixture struct {
	graph  *scene.Graph
	engine *placement.Engine
	roads  *road.Builder
	router *Router
}

func newFixture() *fixture {
	g := scene.NewGraph(100)
	loop := frame.NewLoop()
	rb := road.NewBuilder(g, loop, road.DefaultConfig())
	opts := placement.DefaultOptions()
	opts.Obstacles = rb
	pl := placement.New(g, grid.New(10), collision.NewChecker(collision.DefaultConfig()), loop, opts)
	return &fixture{
		graph:  g,
		engine: pl,
		roads:  rb,
		router: New(g, building.NewFactory(7), pl, rb),
	}
}

func click(x, z float64) scene.Ray {
	return scene.Down(x, z, 200)
}

func TestDefaults(t *testing.T) {
	r := newFixture().router
	if r.Tool() != building.House || r.Style() != building.Modern || r.Floors() != 5 || r.DeleteMode() {
		t.Errorf("defaults = %s %s %d %v", r.Tool(), r.Style(), r.Floors(), r.DeleteMode())
	}
}

func TestPlaceBuilding(t *testing.T) {
	f := newFixture()
	if err := f.router.SetTool("skyscraper"); err != nil {
		t.Fatal(err)
	}
	if err := f.router.SetFloors(12); err != nil {
		t.Fatal(err)
	}
	res := f.router.PointerDown(click(3, 4))
	if res.Action != ActionPlaced {
		t.Fatalf("action = %s (%v), want placed", res.Action, res.Err)
	}
	if res.Node.Floors != 12 || res.Node.Kind != "skyscraper" {
		t.Errorf("node = %s with %d floors", res.Node.Kind, res.Node.Floors)
	}
	if res.Cell != (grid.Cell{}) {
		t.Errorf("cell = %v, want origin", res.Cell)
	}

	// The ray strikes the tower roof first; placement still uses the
	// ground point beneath it.
	res = f.router.PointerDown(click(1, 1))
	if res.Action != ActionRejected {
		t.Fatalf("action = %s, want rejected", res.Action)
	}
	if !errors.Is(res.Err, placement.ErrCellOccupied) {
		t.Errorf("err = %v, want ErrCellOccupied", res.Err)
	}
}

func TestMissIsAbsorbed(t *testing.T) {
	f := newFixture()
	res := f.router.PointerDown(click(500, 500))
	if res.Action != ActionNone || !errors.Is(res.Err, ErrNoRaycastHit) {
		t.Errorf("result = %s %v, want none with ErrNoRaycastHit", res.Action, res.Err)
	}
}

func TestInvalidSelections(t *testing.T) {
	r := newFixture().router
	if err := r.SetTool("castle"); !errors.Is(err, building.ErrInvalidBuildingTypeOrStyle) {
		t.Errorf("SetTool err = %v", err)
	}
	if err := r.SetStyle("gothic"); err == nil {
		t.Error("SetStyle should reject unknown styles")
	}
	if r.Style() != building.Modern {
		t.Error("invalid style must not change the selection")
	}
	if err := r.SetFloors(0); err == nil {
		t.Error("SetFloors(0) should fail")
	}
	if err := r.SetFloors(building.MaxFloors + 1); err == nil {
		t.Error("SetFloors above the maximum should fail")
	}
}

func TestDeleteModeToggles(t *testing.T) {
	r := newFixture().router
	if !r.KeyDown("Delete") || !r.DeleteMode() {
		t.Fatal("Delete should enter delete mode")
	}
	if !r.KeyDown("Backspace") || r.DeleteMode() {
		t.Fatal("Backspace should leave delete mode")
	}
	if r.KeyDown("Escape") {
		t.Error("Escape is not handled")
	}
	r.ToggleDeleteMode()
	if err := r.SetTool("tree"); err != nil {
		t.Fatal(err)
	}
	if r.DeleteMode() {
		t.Error("selecting a tool should leave delete mode")
	}
}

func TestDeleteBuilding(t *testing.T) {
	f := newFixture()
	placed := f.router.PointerDown(click(15, 15))
	if placed.Action != ActionPlaced {
		t.Fatalf("place: %s %v", placed.Action, placed.Err)
	}
	f.router.ToggleDeleteMode()

	res := f.router.PointerDown(click(10, 10))
	if res.Action != ActionRemoved || res.Node != placed.Node {
		t.Fatalf("delete: %s, want removed", res.Action)
	}
	if _, ok := f.engine.Query(15, 15); ok {
		t.Error("grid cell should be cleared")
	}
	if f.graph.Contains(placed.Node) {
		t.Error("node should be removed from the scene")
	}
	if len(f.engine.Placed()) != 0 {
		t.Error("placed list should be empty")
	}
}

func TestDeleteSkipsGround(t *testing.T) {
	f := newFixture()
	f.router.ToggleDeleteMode()
	before := f.graph.Len()
	res := f.router.PointerDown(click(20, -20))
	if res.Action != ActionNone {
		t.Errorf("action = %s, want none", res.Action)
	}
	if f.graph.Len() != before || !f.graph.Contains(f.graph.Ground()) {
		t.Error("ground must never be deleted")
	}
}

func TestDrawRoad(t *testing.T) {
	f := newFixture()
	if err := f.router.SetTool("road"); err != nil {
		t.Fatal(err)
	}
	if res := f.router.PointerMove(click(1, 1)); res.Action != ActionNone {
		t.Errorf("move before down = %s, want none", res.Action)
	}
	if res := f.router.PointerDown(click(-10, 0)); res.Action != ActionRoadStarted {
		t.Fatalf("down = %s, want road_started", res.Action)
	}
	f.router.PointerMove(click(0, 0))
	if res := f.router.PointerMove(click(10, 0)); res.Action != ActionRoadPreview {
		t.Fatalf("move = %s (%v), want road_preview", res.Action, res.Err)
	}
	res := f.router.PointerUp()
	if res.Action != ActionRoadCommitted {
		t.Fatalf("up = %s (%v), want road_committed", res.Action, res.Err)
	}
	if f.roads.Len() != 1 {
		t.Fatalf("roads = %d, want 1", f.roads.Len())
	}
	seg := f.roads.Roads()[0]
	if seg.Length < 19.99 || seg.Length > 20.01 {
		t.Errorf("length = %v, want 20", seg.Length)
	}

	f.router.PointerDown(click(0, -10))
	f.router.PointerMove(click(0, 10))
	res = f.router.PointerUp()
	if len(res.Intersections) != 1 {
		t.Errorf("intersections = %d, want 1", len(res.Intersections))
	}

	if res := f.router.PointerUp(); res.Action != ActionNone {
		t.Errorf("second up = %s, want none", res.Action)
	}
}

func TestDeleteRoadAndIntersection(t *testing.T) {
	f := newFixture()
	f.roads.DrawRoad(scene.Vec3{X: -20, Z: 20}, scene.Vec3{X: 20, Z: 20})
	_, found, _ := f.roads.DrawRoad(scene.Vec3{X: 30, Z: -20}, scene.Vec3{X: 30, Z: 40})
	if len(found) != 1 {
		t.Fatalf("intersections = %d, want 1", len(found))
	}
	f.router.ToggleDeleteMode()

	// The intersection decoration sits at (30, 20), off the end of the
	// first road.
	res := f.router.PointerDown(click(-15, 20))
	if res.Action != ActionRemoved || f.roads.Len() != 1 {
		t.Fatalf("delete road: %s, roads = %d", res.Action, f.roads.Len())
	}

	res = f.router.PointerDown(click(31.5, 20.1))
	if res.Action != ActionRemoved || res.Node != found[0].Node {
		t.Fatalf("delete intersection: %s", res.Action)
	}
	if len(f.roads.Intersections()) != 0 {
		t.Error("intersection registry should be empty")
	}
}

func TestDeleteBesideDiagonalRoad(t *testing.T) {
	f := newFixture()
	seg, _, err := f.roads.DrawRoad(scene.Vec3{X: -20, Z: -20}, scene.Vec3{X: 20, Z: 20})
	if err != nil {
		t.Fatal(err)
	}
	f.router.ToggleDeleteMode()

	// Inside the road's world bounding box but about 21 units from it.
	res := f.router.PointerDown(click(15, -15))
	if res.Action != ActionNone {
		t.Fatalf("action = %s, want none", res.Action)
	}
	if f.roads.Len() != 1 || !f.graph.Contains(seg.Node) {
		t.Fatal("road should survive a click on bare ground")
	}

	res = f.router.PointerDown(click(5, 5))
	if res.Action != ActionRemoved || res.Node != seg.Node {
		t.Errorf("action = %s, want the road removed", res.Action)
	}
}

func TestRoadBlocksPlacement(t *testing.T) {
	f := newFixture()
	if _, _, err := f.roads.DrawRoad(scene.Vec3{X: -30}, scene.Vec3{X: 30}); err != nil {
		t.Fatal(err)
	}

	res := f.router.PointerDown(click(1, 1))
	if res.Action != ActionRejected || !errors.Is(res.Err, placement.ErrOverlap) {
		t.Fatalf("result = %s %v, want rejected with ErrOverlap", res.Action, res.Err)
	}
	if len(f.engine.Placed()) != 0 {
		t.Error("nothing should be placed on the road")
	}

	res = f.router.PointerDown(click(1, 11))
	if res.Action != ActionPlaced {
		t.Errorf("result = %s %v, want placed clear of the road", res.Action, res.Err)
	}
}
