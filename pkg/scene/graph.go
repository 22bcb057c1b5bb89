package scene

import (
	"math"
	"sort"
)

// distanceEpsilon is the gap below which two hits count as equally near.
const distanceEpsilon = 1e-9

// Scene is the set of commands the engine issues to the renderable scene.
// The scene is a side effect of engine state and is never consulted for
// occupancy.
type Scene interface {
	AddNode(n *Node)
	RemoveNode(n *Node) bool
	IntersectRay(origin, direction Vec3) []Hit
}

// Hit is a ray intersection with a single node.
type Hit struct {
	Node     *Node
	Point    Vec3
	Distance float64
}

// Graph is an in-memory Scene holding top-level nodes in insertion order.
type Graph struct {
	ground *Node
	nodes  []*Node
	index  map[*Node]int
}

// NewGraph creates a scene containing only a square ground plane of the
// given side length centred on the origin.
func NewGraph(groundSize float64) *Graph {
	g := &Graph{index: make(map[*Node]int)}

	ground := NewNode(EntityGround)
	ground.Material = "grass"
	ground.Color = "#2e8b57"
	ground.Extent = BoundingBox{
		Min: Vec3{X: -groundSize / 2, Y: -0.01, Z: -groundSize / 2},
		Max: Vec3{X: groundSize / 2, Y: 0, Z: groundSize / 2},
	}
	ground.Metadata = map[string]any{"isGround": true}
	g.ground = ground
	g.AddNode(ground)
	return g
}

// Ground returns the ground plane node.
func (g *Graph) Ground() *Node {
	return g.ground
}

// IsGround reports whether n is the ground plane.
func (g *Graph) IsGround(n *Node) bool {
	return n != nil && n == g.ground
}

// AddNode adds a top-level node. Adding a node twice is a no-op.
func (g *Graph) AddNode(n *Node) {
	if _, ok := g.index[n]; ok {
		return
	}
	if n.parent != nil {
		n.parent.Remove(n)
	}
	g.index[n] = len(g.nodes)
	g.nodes = append(g.nodes, n)
}

// RemoveNode removes a top-level node and reports whether it was present.
func (g *Graph) RemoveNode(n *Node) bool {
	i, ok := g.index[n]
	if !ok {
		return false
	}
	g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
	delete(g.index, n)
	for j := i; j < len(g.nodes); j++ {
		g.index[g.nodes[j]] = j
	}
	return true
}

// Contains reports whether n is a top-level node of the graph.
func (g *Graph) Contains(n *Node) bool {
	_, ok := g.index[n]
	return ok
}

// Nodes returns a snapshot of the top-level nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Len returns the number of top-level nodes, ground included.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// IntersectRay tests every node with a non-empty extent against the ray and
// returns the hits nearest-first. Each extent is tested in its node's own
// frame, so rotated nodes are hit only where they actually are. Equal
// distances go to the most recently added top-level node, which is drawn
// on top. Marker nodes are transient feedback and are never hit.
func (g *Graph) IntersectRay(origin, direction Vec3) []Hit {
	ray := Ray{Origin: origin, Direction: direction}
	var hits []Hit
	var order []int
	for i, top := range g.nodes {
		if top.Type == EntityMarker {
			continue
		}
		top.Walk(func(n *Node) {
			if n.Extent.IsEmpty() {
				return
			}
			t, ok := n.Extent.IntersectRay(n.LocalRay(ray))
			if !ok {
				return
			}
			hits = append(hits, Hit{Node: n, Point: ray.At(t), Distance: t})
			order = append(order, i)
		})
	}
	idx := make([]int, len(hits))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ha, hb := hits[idx[a]], hits[idx[b]]
		if math.Abs(ha.Distance-hb.Distance) > distanceEpsilon {
			return ha.Distance < hb.Distance
		}
		return order[idx[a]] > order[idx[b]]
	})
	out := make([]Hit, len(hits))
	for i, j := range idx {
		out[i] = hits[j]
	}
	return out
}
