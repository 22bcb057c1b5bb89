package scene

import "github.com/google/uuid"

// Node is a renderable element of the scene. Transforms are local to the
// parent: scale first, then yaw around Y, then translation.
type Node struct {
	ID       string
	Type     EntityType
	Kind     string // house, skyscraper, tree, road
	Style    string // buildings only
	Floors   int    // skyscrapers only
	Material string
	Color    string

	Position Vec3
	Yaw      float64
	Scale    float64

	// Extent is the local, untransformed volume of this node alone.
	// An empty extent makes the node invisible to ray casts.
	Extent BoundingBox

	Metadata map[string]any

	parent   *Node
	children []*Node
}

// NewNode creates a node with a fresh ID and unit scale.
func NewNode(t EntityType) *Node {
	return &Node{
		ID:    uuid.NewString(),
		Type:  t,
		Scale: 1,
		Extent: BoundingBox{
			Min: Vec3{1, 1, 1},
			Max: Vec3{-1, -1, -1},
		},
	}
}

// Parent returns the node's parent, or nil for a top-level node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's direct children. The slice must not be
// modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It reports whether child was attached.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// TopLevel walks up the parent chain and returns the outermost ancestor.
func (n *Node) TopLevel() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Walk visits n and every descendant depth-first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

func (n *Node) scale() float64 {
	if n.Scale == 0 {
		return 1
	}
	return n.Scale
}

// ToParent maps a point from n's local space into its parent's space.
func (n *Node) ToParent(p Vec3) Vec3 {
	return p.Scale(n.scale()).RotateY(n.Yaw).Add(n.Position)
}

// ToWorld maps a point from n's local space into world space.
func (n *Node) ToWorld(p Vec3) Vec3 {
	for cur := n; cur != nil; cur = cur.parent {
		p = cur.ToParent(p)
	}
	return p
}

// FromParent maps a point from the parent's space into n's local space.
func (n *Node) FromParent(p Vec3) Vec3 {
	return p.Sub(n.Position).RotateY(-n.Yaw).Scale(1 / n.scale())
}

// ToLocal maps a world-space point into n's local space.
func (n *Node) ToLocal(p Vec3) Vec3 {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		p = chain[i].FromParent(p)
	}
	return p
}

// LocalRay maps a world-space ray into n's local space. Distances along
// the mapped ray match distances along r.
func (n *Node) LocalRay(r Ray) Ray {
	o := n.ToLocal(r.Origin)
	return Ray{Origin: o, Direction: n.ToLocal(r.Origin.Add(r.Direction)).Sub(o)}
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() Vec3 {
	return n.ToWorld(Vec3{})
}

// WorldYaw returns the accumulated yaw of n and its ancestors.
func (n *Node) WorldYaw() float64 {
	yaw := 0.0
	for cur := n; cur != nil; cur = cur.parent {
		yaw += cur.Yaw
	}
	return yaw
}

// WorldScale returns the accumulated scale of n and its ancestors.
func (n *Node) WorldScale() float64 {
	s := 1.0
	for cur := n; cur != nil; cur = cur.parent {
		s *= cur.scale()
	}
	return s
}

// LocalBounds returns the axis-aligned box of the node's own extent after
// scale and yaw, relative to its position.
func (n *Node) LocalBounds() BoundingBox {
	return transformBox(n.Extent, func(p Vec3) Vec3 {
		return p.Scale(n.scale()).RotateY(n.Yaw)
	})
}

func transformBox(b BoundingBox, fn func(Vec3) Vec3) BoundingBox {
	if b.IsEmpty() {
		return b
	}
	corners := b.Corners()
	first := fn(corners[0])
	out := BoundingBox{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := fn(c)
		out = out.Union(BoundingBox{Min: p, Max: p})
	}
	return out
}
