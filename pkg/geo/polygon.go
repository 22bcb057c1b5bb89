package geo

// Polygon is a closed polygon defined by its vertices in order.
type Polygon struct {
	Vertices []Point2D
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// Strip returns the rectangle of the given width centred on the segment
// from a to b. Vertices run a-left, b-left, b-right, a-right.
func Strip(a, b Point2D, width float64) Polygon {
	side := b.Sub(a).Normalize().Perp().Scale(width / 2)
	return NewPolygon(
		a.Add(side),
		b.Add(side),
		b.Sub(side),
		a.Sub(side),
	)
}

// Rect returns the axis-aligned rectangle spanning min to max.
func Rect(min, max Point2D) Polygon {
	return NewPolygon(
		min,
		Pt(max.X, min.Z),
		max,
		Pt(min.X, max.Z),
	)
}

// Contains returns true if the point is inside the polygon using ray casting.
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Z > pt.Z) != (vj.Z > pt.Z) &&
			pt.X < (vj.X-vi.X)*(pt.Z-vi.Z)/(vj.Z-vi.Z)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Overlaps reports whether two convex polygons share any point, using the
// separating axis test. Polygons that only touch overlap.
func (p Polygon) Overlaps(q Polygon) bool {
	if len(p.Vertices) < 3 || len(q.Vertices) < 3 {
		return false
	}
	for _, poly := range []Polygon{p, q} {
		n := len(poly.Vertices)
		for i := 0; i < n; i++ {
			axis := poly.Vertices[(i+1)%n].Sub(poly.Vertices[i]).Perp()
			if axis.Length() < 1e-12 {
				continue
			}
			pMin, pMax := p.project(axis)
			qMin, qMax := q.project(axis)
			if pMax < qMin-1e-9 || qMax < pMin-1e-9 {
				return false
			}
		}
	}
	return true
}

func (p Polygon) project(axis Point2D) (lo, hi float64) {
	lo = p.Vertices[0].Dot(axis)
	hi = lo
	for _, v := range p.Vertices[1:] {
		d := v.Dot(axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}
