package road

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/geo"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

const (
	roadColor      = "#333333"
	footpathColor  = "#cccccc"
	dashColor      = "#ffff00"
	edgeLineColor  = "#ffffff"
	lightColor     = "#ffffcc"
	vehicleColor   = "#ff0000"
	pedestrianSkin = "#ffcc99"
	markingHeight  = 0.1
	markingWidth   = 0.2
)

// Segment is one straight road with its decorations. Decorations are
// children of Node, laid out in road-local space where +X runs from Start
// to End.
type Segment struct {
	Start     scene.Vec3
	End       scene.Vec3
	Length    float64
	Direction mgl64.Vec3
	Yaw       float64
	Node      *scene.Node

	Footpaths   []*scene.Node
	Dashes      []*scene.Node
	EdgeLines   []*scene.Node
	Lights      []*scene.Node
	Vehicles    []*Vehicle
	Pedestrians []*Pedestrian
}

func vec(v scene.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec(v mgl64.Vec3) scene.Vec3 {
	return scene.Vec3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Midpoint returns the centre of the segment.
func (s *Segment) Midpoint() scene.Vec3 {
	return fromVec(vec(s.Start).Add(vec(s.End)).Mul(0.5))
}

// Footprint returns the ground rectangle covered by the carriageway.
func (s *Segment) Footprint(width float64) geo.Polygon {
	return geo.Strip(geo.Pt(s.Start.X, s.Start.Z), geo.Pt(s.End.X, s.End.Z), width)
}

// yawFor returns the yaw that turns local +X onto the horizontal direction
// (dx, dz).
func yawFor(dx, dz float64) float64 {
	return math.Atan2(dx, dz) - math.Pi/2
}

// newSegment builds the road node and its decorations. Both endpoints are
// pinned to the ground.
func newSegment(start, end scene.Vec3, cfg Config) *Segment {
	start.Y, end.Y = 0, 0
	delta := vec(end).Sub(vec(start))
	length := delta.Len()

	s := &Segment{
		Start:     start,
		End:       end,
		Length:    length,
		Direction: delta.Normalize(),
		Yaw:       yawFor(delta.X(), delta.Z()),
	}

	n := scene.NewNode(scene.EntityRoad)
	n.Kind = "road"
	n.Material = "asphalt"
	n.Color = roadColor
	n.Position = s.Midpoint()
	n.Yaw = s.Yaw
	n.Extent = scene.Box(length, cfg.Height, cfg.Width)
	n.Metadata = map[string]any{
		"type":   "road",
		"length": length,
		"start":  start,
		"end":    end,
	}
	s.Node = n

	s.decorate(cfg)
	return s
}

func child(parent *scene.Node, t scene.EntityType, color string, pos scene.Vec3, extent scene.BoundingBox) *scene.Node {
	c := scene.NewNode(t)
	c.Color = color
	c.Position = pos
	c.Extent = extent
	parent.Add(c)
	return c
}

func (s *Segment) decorate(cfg Config) {
	length := s.Length
	half := length / 2
	fz := cfg.FootpathCentre()

	for _, side := range []float64{-1, 1} {
		fp := child(s.Node, scene.EntityFootpath, footpathColor,
			scene.Vec3{Z: fz * side},
			scene.Box(length, cfg.Height, cfg.FootpathWidth))
		s.Footpaths = append(s.Footpaths, fp)
	}

	period := cfg.DashLength + cfg.GapLength
	if period > 0 {
		dashes := int(math.Floor(length / period))
		for i := 0; i < dashes; i++ {
			x := -half + float64(i)*period + cfg.DashLength/2
			d := child(s.Node, scene.EntityLaneMarking, dashColor,
				scene.Vec3{X: x, Y: markingHeight / 2},
				scene.Box(cfg.DashLength, markingHeight, markingWidth))
			d.Metadata = map[string]any{"marking": "centre_dash"}
			s.Dashes = append(s.Dashes, d)
		}
	}

	for _, side := range []float64{-1, 1} {
		e := child(s.Node, scene.EntityLaneMarking, edgeLineColor,
			scene.Vec3{Y: markingHeight / 2, Z: cfg.EdgeLineOffset * side},
			scene.Box(length, markingHeight, markingWidth))
		e.Metadata = map[string]any{"marking": "edge_line"}
		s.EdgeLines = append(s.EdgeLines, e)
	}

	if cfg.LightSpacing > 0 {
		lights := int(math.Floor(length / cfg.LightSpacing))
		for i := 0; i < lights; i++ {
			side := 1.0
			if i%2 == 0 {
				side = -1
			}
			x := -half + float64(i)*cfg.LightSpacing + cfg.LightSpacing/2
			l := child(s.Node, scene.EntityStreetLight, lightColor,
				scene.Vec3{X: x, Z: cfg.LightOffset * side},
				scene.Box(0.6, 5.3, 0.6))
			s.Lights = append(s.Lights, l)
		}
	}

	if cfg.VehicleSpacing > 0 {
		vehicles := int(math.Floor(length / cfg.VehicleSpacing))
		for i := 0; i < vehicles; i++ {
			lane := cfg.LaneOffset
			if i%2 != 0 {
				lane = -cfg.LaneOffset
			}
			dir := -1.0
			if lane > 0 {
				dir = 1
			}
			n := child(s.Node, scene.EntityVehicle, vehicleColor,
				scene.Vec3{X: -half + float64(i)*cfg.VehicleSpacing, Z: lane},
				scene.Box(1.5, 0.7, 0.8))
			s.Vehicles = append(s.Vehicles, &Vehicle{
				Node:      n,
				Lane:      lane,
				Direction: dir,
				Speed:     cfg.VehicleSpeed,
				HalfLen:   half,
			})
		}
	}

	if cfg.PedestrianSpacing > 0 {
		people := int(math.Floor(length/cfg.PedestrianSpacing)) * 2
		for i := 0; i < people; i++ {
			side := 1.0
			if i%2 == 0 {
				side = -1
			}
			x := math.Max(-half, math.Min(half, -half+float64(i)*cfg.PedestrianSpacing))
			n := child(s.Node, scene.EntityPedestrian, pedestrianSkin,
				scene.Vec3{X: x, Z: fz * side},
				scene.Box(0.3, 1.05, 0.3))
			n.Metadata = map[string]any{"side": side}
			s.Pedestrians = append(s.Pedestrians, &Pedestrian{
				Node:      n,
				FootpathZ: fz * side,
				Direction: 1,
				Speed:     cfg.PedestrianSpeed,
				MinX:      -half,
				MaxX:      half,
			})
		}
	}
}
