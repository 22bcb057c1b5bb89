package scene

import (
	"testing"
)

func validDocument() *Document {
	doc := NewDocument()
	doc.Entities = []Entity{
		{
			ID:         "bld-1",
			Type:       EntityBuilding,
			Kind:       "house",
			Style:      "modern",
			Position:   Vec3{X: 10, Y: 0, Z: 20},
			Dimensions: Vec3{X: 6, Y: 5, Z: 6},
			Rotation:   [4]float64{0, 0, 0, 1},
			Material:   "plaster",
		},
		{
			ID:         "road-1",
			Type:       EntityRoad,
			Kind:       "road",
			Position:   Vec3{X: 0, Y: 0, Z: 0},
			Dimensions: Vec3{X: 20, Y: 0.1, Z: 2},
			Rotation:   [4]float64{0, 0, 0, 1},
			Material:   "asphalt",
			Children:   []string{"dash-1"},
		},
		{
			ID:         "dash-1",
			Type:       EntityLaneMarking,
			Position:   Vec3{X: -9, Y: 0.05, Z: 0},
			Dimensions: Vec3{X: 2, Y: 0.1, Z: 0.2},
			Rotation:   [4]float64{0, 0, 0, 1},
			Parent:     "road-1",
		},
	}
	doc.Groups.EntityTypes[EntityBuilding] = []string{"bld-1"}
	doc.Groups.EntityTypes[EntityRoad] = []string{"road-1"}
	doc.Groups.EntityTypes[EntityLaneMarking] = []string{"dash-1"}
	doc.Groups.Kinds["house"] = []string{"bld-1"}
	doc.Groups.Kinds["road"] = []string{"road-1"}
	doc.Groups.TopLevel = []string{"bld-1", "road-1"}
	doc.Metadata = Metadata{
		Bounds: BoundingBox{
			Min: Vec3{X: -100, Y: -1, Z: -100},
			Max: Vec3{X: 100, Y: 50, Z: 100},
		},
	}
	return doc
}

func TestValidateDocument_Valid(t *testing.T) {
	r := ValidateDocument(validDocument())
	if !r.Valid {
		t.Errorf("expected valid, got %d errors", len(r.Errors))
		for _, e := range r.Errors {
			t.Logf("  error: %s", e.Message)
		}
	}
}

func TestValidateDocument_Nil(t *testing.T) {
	r := ValidateDocument(nil)
	if r.Valid {
		t.Error("expected invalid for nil document")
	}
}

func TestValidateDocument_DuplicateID(t *testing.T) {
	doc := validDocument()
	doc.Entities = append(doc.Entities, Entity{
		ID:         "bld-1",
		Type:       EntityBuilding,
		Position:   Vec3{X: 20, Y: 0, Z: 30},
		Dimensions: Vec3{X: 5, Y: 9, Z: 5},
		Rotation:   [4]float64{0, 0, 0, 1},
	})
	r := ValidateDocument(doc)
	if r.Valid {
		t.Error("expected invalid for duplicate ID")
	}
}

func TestValidateDocument_OrphanedGroupReference(t *testing.T) {
	doc := validDocument()
	doc.Groups.Kinds["house"] = append(doc.Groups.Kinds["house"], "nonexistent")
	r := ValidateDocument(doc)
	if r.Valid {
		t.Error("expected invalid for orphaned group reference")
	}
}

func TestValidateDocument_MissingGroupMembership(t *testing.T) {
	doc := validDocument()
	doc.Groups.EntityTypes[EntityBuilding] = []string{}
	r := ValidateDocument(doc)
	if r.Valid {
		t.Error("expected invalid for missing group membership")
	}
}

func TestValidateDocument_BrokenParentLink(t *testing.T) {
	doc := validDocument()
	doc.Entities[1].Children = nil
	r := ValidateDocument(doc)
	if r.Valid {
		t.Error("expected invalid when parent does not list child")
	}
}

func TestValidateDocument_OutsideBounds(t *testing.T) {
	doc := validDocument()
	doc.Entities[0].Position.X = 500
	r := ValidateDocument(doc)
	if !r.Valid {
		t.Error("bounds violations should only warn")
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a bounds warning")
	}
}

func TestExportValidates(t *testing.T) {
	g := NewGraph(100)
	road := NewNode(EntityRoad)
	road.Kind = "road"
	road.Extent = CenteredBox(20, 0.1, 2)
	road.Yaw = 0.5
	dash := NewNode(EntityLaneMarking)
	dash.Extent = CenteredBox(2, 0.1, 0.2)
	dash.Position = Vec3{X: -9, Y: 0.1}
	road.Add(dash)
	g.AddNode(road)

	house := NewNode(EntityBuilding)
	house.Kind = "house"
	house.Extent = Box(6, 5, 6)
	house.Position = Vec3{X: 20, Z: 20}
	g.AddNode(house)

	doc := g.Export()
	r := ValidateDocument(doc)
	if !r.Valid {
		for _, e := range r.Errors {
			t.Logf("  error: %s", e.Message)
		}
		t.Fatalf("exported graph should validate: %s", r.Summary)
	}
	if len(doc.Entities) != 4 {
		t.Errorf("entities = %d, want 4", len(doc.Entities))
	}
	if doc.Metadata.TopLevel != 3 {
		t.Errorf("top level = %d, want 3", doc.Metadata.TopLevel)
	}
}
