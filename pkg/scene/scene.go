package scene

import "math"

// EntityType identifies the kind of node in the scene.
type EntityType string

const (
	EntityGround       EntityType = "ground"
	EntityBuilding     EntityType = "building"
	EntityTree         EntityType = "tree"
	EntityRoad         EntityType = "road"
	EntityIntersection EntityType = "intersection"
	EntityMarker       EntityType = "marker"
	EntityFootpath     EntityType = "footpath"
	EntityLaneMarking  EntityType = "lane_marking"
	EntityStreetLight  EntityType = "street_light"
	EntityVehicle      EntityType = "vehicle"
	EntityPedestrian   EntityType = "pedestrian"
	EntityConnector    EntityType = "connector"
	EntityCrosswalk    EntityType = "crosswalk"
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// RotateY rotates v around the Y axis by yaw radians. Positive yaw turns +Z
// toward +X, matching the renderer's right-handed convention.
func (v Vec3) RotateY(yaw float64) Vec3 {
	c, s := math.Cos(yaw), math.Sin(yaw)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// BoundingBox defines an axis-aligned bounding box.
type BoundingBox struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Box returns the box centred on the X/Z origin with its base at y=0.
func Box(width, height, depth float64) BoundingBox {
	return BoundingBox{
		Min: Vec3{X: -width / 2, Y: 0, Z: -depth / 2},
		Max: Vec3{X: width / 2, Y: height, Z: depth / 2},
	}
}

// CenteredBox returns the box centred on the origin on all three axes.
func CenteredBox(width, height, depth float64) BoundingBox {
	return BoundingBox{
		Min: Vec3{X: -width / 2, Y: -height / 2, Z: -depth / 2},
		Max: Vec3{X: width / 2, Y: height / 2, Z: depth / 2},
	}
}

// IsEmpty reports whether the box has no volume on some axis.
func (b BoundingBox) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Size returns the extent along each axis.
func (b BoundingBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Translate returns the box moved by v.
func (b BoundingBox) Translate(v Vec3) BoundingBox {
	return BoundingBox{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

// Expand grows the box by d on every side.
func (b BoundingBox) Expand(d float64) BoundingBox {
	pad := Vec3{d, d, d}
	return BoundingBox{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// Intersects reports whether b and o overlap. Touching faces count as an
// overlap.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// Union returns the smallest box enclosing b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		Min: Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

// Corners returns the eight corners of the box.
func (b BoundingBox) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

// Ray is a half-line from Origin along Direction.
type Ray struct {
	Origin    Vec3 `json:"origin" yaml:"origin"`
	Direction Vec3 `json:"direction" yaml:"direction"`
}

// Down returns a ray cast straight down onto the point (x, z) from height h.
func Down(x, z, h float64) Ray {
	return Ray{Origin: Vec3{X: x, Y: h, Z: z}, Direction: Vec3{Y: -1}}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectRay returns the entry distance of r into b using the slab method.
// A ray starting inside the box reports distance 0.
func (b BoundingBox) IntersectRay(r Ray) (float64, bool) {
	tMin, tMax := 0.0, math.Inf(1)
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
