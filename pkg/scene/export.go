package scene

import (
	"math"
	"time"
)

// Entity is a single node flattened into world space for clients.
type Entity struct {
	ID         string         `json:"id"`
	Type       EntityType     `json:"type"`
	Kind       string         `json:"kind,omitempty"`
	Style      string         `json:"style,omitempty"`
	Floors     int            `json:"floors,omitempty"`
	Position   Vec3           `json:"position"`
	Dimensions Vec3           `json:"dimensions"`
	Rotation   [4]float64     `json:"rotation"` // quaternion [x, y, z, w]
	Material   string         `json:"material,omitempty"`
	Color      string         `json:"color,omitempty"`
	Parent     string         `json:"parent,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Children   []string       `json:"children,omitempty"`
}

// Yaw recovers the rotation about Y from the entity's quaternion.
func (e Entity) Yaw() float64 {
	return 2 * math.Atan2(e.Rotation[1], e.Rotation[3])
}

// Document is the serialisable form of the scene sent to clients.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	GeneratedAt string      `json:"generated_at"`
	Bounds      BoundingBox `json:"bounds"`
	TopLevel    int         `json:"top_level"`
}

// Groups organizes entity IDs by various axes for fast filtering.
type Groups struct {
	EntityTypes map[EntityType][]string `json:"entity_types"`
	Kinds       map[string][]string     `json:"kinds"`
	TopLevel    []string                `json:"top_level"`
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		Entities: []Entity{},
		Groups: Groups{
			EntityTypes: make(map[EntityType][]string),
			Kinds:       make(map[string][]string),
			TopLevel:    []string{},
		},
	}
}

// Export flattens the graph into world-space entities. Dimensions are the
// node's scaled extent; positions are the extent centre's footprint in
// world space with Y at the extent base.
func (g *Graph) Export() *Document {
	doc := NewDocument()
	for _, top := range g.nodes {
		doc.Groups.TopLevel = append(doc.Groups.TopLevel, top.ID)
		top.Walk(func(n *Node) {
			addEntity(doc, entityFromNode(n))
		})
	}
	doc.Metadata = Metadata{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Bounds:      computeBounds(doc.Entities),
		TopLevel:    len(g.nodes),
	}
	return doc
}

func entityFromNode(n *Node) Entity {
	e := Entity{
		ID:       n.ID,
		Type:     n.Type,
		Kind:     n.Kind,
		Style:    n.Style,
		Floors:   n.Floors,
		Rotation: yawQuat(n.WorldYaw()),
		Material: n.Material,
		Color:    n.Color,
		Metadata: n.Metadata,
	}
	if n.parent != nil {
		e.Parent = n.parent.ID
	}
	for _, c := range n.children {
		e.Children = append(e.Children, c.ID)
	}

	if n.Extent.IsEmpty() {
		e.Position = n.WorldPosition()
		return e
	}
	s := n.WorldScale()
	size := n.Extent.Size().Scale(s)
	base := n.Extent.Center()
	base.Y = n.Extent.Min.Y
	e.Position = n.ToWorld(base)
	e.Dimensions = size
	return e
}

// addEntity appends an entity and updates all group indices.
func addEntity(doc *Document, e Entity) {
	doc.Entities = append(doc.Entities, e)
	id := e.ID

	if e.Kind != "" {
		doc.Groups.Kinds[e.Kind] = append(doc.Groups.Kinds[e.Kind], id)
	}
	doc.Groups.EntityTypes[e.Type] = append(doc.Groups.EntityTypes[e.Type], id)
}

// computeBounds calculates the AABB of all entities.
func computeBounds(entities []Entity) BoundingBox {
	if len(entities) == 0 {
		return BoundingBox{}
	}
	minV := Vec3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	maxV := Vec3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}

	for _, e := range entities {
		halfX := e.Dimensions.X / 2
		halfZ := e.Dimensions.Z / 2

		loX := e.Position.X - halfX
		hiX := e.Position.X + halfX
		loY := e.Position.Y
		hiY := e.Position.Y + e.Dimensions.Y
		loZ := e.Position.Z - halfZ
		hiZ := e.Position.Z + halfZ

		if loX < minV.X {
			minV.X = loX
		}
		if hiX > maxV.X {
			maxV.X = hiX
		}
		if loY < minV.Y {
			minV.Y = loY
		}
		if hiY > maxV.Y {
			maxV.Y = hiY
		}
		if loZ < minV.Z {
			minV.Z = loZ
		}
		if hiZ > maxV.Z {
			maxV.Z = hiZ
		}
	}
	return BoundingBox{Min: minV, Max: maxV}
}

func yawQuat(angle float64) [4]float64 {
	half := angle / 2
	return [4]float64{0, math.Sin(half), 0, math.Cos(half)}
}
