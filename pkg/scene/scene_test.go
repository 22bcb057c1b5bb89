package scene

import (
	"math"
	"testing"
)

const tolerance = 1e-6

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func vecApprox(a, b Vec3) bool {
	return approxEqual(a.X, b.X, tolerance) && approxEqual(a.Y, b.Y, tolerance) && approxEqual(a.Z, b.Z, tolerance)
}

func TestBoxIntersects(t *testing.T) {
	a := Box(8, 20, 8)
	tests := []struct {
		name   string
		offset Vec3
		want   bool
	}{
		{"same place", Vec3{}, true},
		{"overlapping", Vec3{X: 6}, true},
		{"touching faces", Vec3{X: 8}, true},
		{"apart", Vec3{X: 9}, false},
		{"above", Vec3{Y: 21}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := a.Translate(tt.offset)
			if got := a.Intersects(b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxExpand(t *testing.T) {
	b := Box(6, 4, 6).Expand(2)
	if !vecApprox(b.Min, Vec3{-5, -2, -5}) || !vecApprox(b.Max, Vec3{5, 6, 5}) {
		t.Errorf("expanded box = %+v", b)
	}
}

func TestBoxIntersectRay(t *testing.T) {
	b := Box(2, 2, 2)
	d, ok := b.IntersectRay(Down(0, 0, 10))
	if !ok {
		t.Fatal("expected ray to hit box")
	}
	if !approxEqual(d, 8, tolerance) {
		t.Errorf("distance = %v, want 8", d)
	}
	if _, ok := b.IntersectRay(Down(5, 0, 10)); ok {
		t.Error("expected ray beside the box to miss")
	}
	up := Ray{Origin: Vec3{Y: 10}, Direction: Vec3{Y: 1}}
	if _, ok := b.IntersectRay(up); ok {
		t.Error("expected ray pointing away to miss")
	}
}

func TestRotateY(t *testing.T) {
	v := Vec3{Z: 1}.RotateY(math.Pi / 2)
	if !vecApprox(v, Vec3{X: 1}) {
		t.Errorf("RotateY(+Z, pi/2) = %+v, want +X", v)
	}
}

func TestNodeHierarchyTransforms(t *testing.T) {
	parent := NewNode(EntityRoad)
	parent.Position = Vec3{X: 10, Z: 5}
	parent.Yaw = math.Pi / 2

	child := NewNode(EntityLaneMarking)
	child.Position = Vec3{X: 0, Z: 1}
	parent.Add(child)

	got := child.WorldPosition()
	if !vecApprox(got, Vec3{X: 11, Z: 5}) {
		t.Errorf("child world position = %+v, want (11,0,5)", got)
	}
	if child.TopLevel() != parent {
		t.Error("expected TopLevel to return the parent")
	}
	if !parent.Remove(child) {
		t.Error("expected child to be removed")
	}
	if child.Parent() != nil {
		t.Error("removed child should have no parent")
	}
}

func TestLocalBoundsWithScale(t *testing.T) {
	n := NewNode(EntityTree)
	n.Extent = Box(4, 6, 4)
	n.Scale = 1.2
	b := n.LocalBounds()
	if !approxEqual(b.Max.X, 2.4, tolerance) || !approxEqual(b.Max.Y, 7.2, tolerance) {
		t.Errorf("scaled bounds = %+v", b)
	}
}

func TestGraphIntersectRayNearestFirst(t *testing.T) {
	g := NewGraph(100)
	tower := NewNode(EntityBuilding)
	tower.Extent = Box(8, 20, 8)
	tower.Position = Vec3{X: 10, Z: 10}
	g.AddNode(tower)

	hits := g.IntersectRay(Vec3{X: 10, Y: 50, Z: 10}, Vec3{Y: -1})
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].Node != tower {
		t.Error("expected tower to be the nearest hit")
	}
	if !g.IsGround(hits[1].Node) {
		t.Error("expected ground as the second hit")
	}
	if !approxEqual(hits[1].Point.Y, 0, tolerance) {
		t.Errorf("ground hit y = %v, want 0", hits[1].Point.Y)
	}
}

func TestGraphIgnoresMarkers(t *testing.T) {
	g := NewGraph(100)
	m := NewNode(EntityMarker)
	m.Extent = Box(10, 0.2, 10)
	g.AddNode(m)

	hits := g.IntersectRay(Vec3{Y: 50}, Vec3{Y: -1})
	if len(hits) != 1 || !g.IsGround(hits[0].Node) {
		t.Errorf("expected only the ground hit, got %d hits", len(hits))
	}
}

func TestGraphAddRemove(t *testing.T) {
	g := NewGraph(100)
	a := NewNode(EntityBuilding)
	b := NewNode(EntityBuilding)
	g.AddNode(a)
	g.AddNode(b)
	g.AddNode(a)
	if g.Len() != 3 {
		t.Fatalf("len = %d, want 3", g.Len())
	}
	if !g.RemoveNode(a) {
		t.Error("expected a to be removed")
	}
	if g.RemoveNode(a) {
		t.Error("second removal should report false")
	}
	if !g.Contains(b) {
		t.Error("b should still be present")
	}
	if g.RemoveNode(b); g.Len() != 1 {
		t.Errorf("len = %d, want 1", g.Len())
	}
}

func TestGraphIntersectRayRotatedNode(t *testing.T) {
	g := NewGraph(100)
	strip := NewNode(EntityRoad)
	strip.Extent = Box(40, 0.1, 2)
	strip.Yaw = math.Pi / 4
	g.AddNode(strip)

	// (10, 10) lies inside the strip's world AABB but far from the strip.
	hits := g.IntersectRay(Vec3{X: 10, Y: 50, Z: 10}, Vec3{Y: -1})
	if len(hits) != 1 || !g.IsGround(hits[0].Node) {
		t.Errorf("expected only the ground hit beside a rotated strip, got %d hits", len(hits))
	}

	// Local +X runs along (1, -1) in world space.
	hits = g.IntersectRay(Vec3{X: 10, Y: 50, Z: -10}, Vec3{Y: -1})
	if len(hits) != 2 || hits[0].Node != strip {
		t.Fatalf("expected the strip first, got %d hits", len(hits))
	}
	if !approxEqual(hits[0].Point.Y, 0.1, tolerance) {
		t.Errorf("strip hit y = %v, want 0.1", hits[0].Point.Y)
	}
}

func TestGraphIntersectRayScaledChild(t *testing.T) {
	g := NewGraph(100)
	parent := NewNode(EntityBuilding)
	parent.Position = Vec3{X: 20}
	parent.Scale = 2
	child := NewNode(EntityLaneMarking)
	child.Position = Vec3{X: 3}
	child.Extent = Box(1, 1, 1)
	parent.Add(child)
	g.AddNode(parent)

	hits := g.IntersectRay(Vec3{X: 26, Y: 50}, Vec3{Y: -1})
	if len(hits) != 2 || hits[0].Node != child {
		t.Fatalf("expected the scaled child first, got %d hits", len(hits))
	}
	if !approxEqual(hits[0].Distance, 48, tolerance) {
		t.Errorf("distance = %v, want 48", hits[0].Distance)
	}
}

func TestGraphIntersectRayTiesFavourNewest(t *testing.T) {
	g := NewGraph(100)
	older := NewNode(EntityRoad)
	older.Extent = Box(4, 0.1, 4)
	newer := NewNode(EntityIntersection)
	newer.Extent = Box(4, 0.1, 4)
	g.AddNode(older)
	g.AddNode(newer)

	hits := g.IntersectRay(Vec3{Y: 50}, Vec3{Y: -1})
	if len(hits) != 3 || hits[0].Node != newer || hits[1].Node != older {
		t.Errorf("expected newer, older, ground; got %d hits", len(hits))
	}
}

func TestToLocalInvertsToWorld(t *testing.T) {
	parent := NewNode(EntityRoad)
	parent.Position = Vec3{X: 4, Z: -2}
	parent.Yaw = 0.7
	parent.Scale = 1.5
	child := NewNode(EntityLaneMarking)
	child.Position = Vec3{X: 1, Y: 0.1, Z: 2}
	child.Yaw = -1.2
	parent.Add(child)

	p := Vec3{X: 0.3, Y: 0.2, Z: -0.8}
	if got := child.ToLocal(child.ToWorld(p)); !vecApprox(got, p) {
		t.Errorf("ToLocal(ToWorld(p)) = %+v, want %+v", got, p)
	}
}
