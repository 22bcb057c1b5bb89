package building

import (
	"errors"
	"math"
	"testing"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/logger"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

func init() {
	logger.Silence()
}

func TestDescribeTable(t *testing.T) {
	tests := []struct {
		kind   Kind
		style  Style
		floors int
		height float64
		width  float64
	}{
		{House, Modern, 0, 5, 6},
		{House, Classic, 0, 6, 6},
		{House, Futuristic, 0, 6.5, 7},
		{Skyscraper, Modern, 0, 4*DefaultFloors + 2.5, 8},
		{Skyscraper, Classic, 10, 42.5, 8},
		{Skyscraper, Futuristic, 3, 18.5, 8},
		{Tree, "", 0, 6, 4},
		{Tree, Classic, 7, 6, 4},
	}
	for _, tt := range tests {
		d, err := Describe(tt.kind, tt.style, tt.floors)
		if err != nil {
			t.Errorf("Describe(%s, %s, %d) error: %v", tt.kind, tt.style, tt.floors, err)
			continue
		}
		if math.Abs(d.Height-tt.height) > 1e-9 {
			t.Errorf("Describe(%s, %s, %d) height = %v, want %v", tt.kind, tt.style, tt.floors, d.Height, tt.height)
		}
		if d.Width != tt.width {
			t.Errorf("Describe(%s, %s, %d) width = %v, want %v", tt.kind, tt.style, tt.floors, d.Width, tt.width)
		}
	}
}

func TestDescribeInvalid(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		style  Style
		floors int
	}{
		{"unknown kind", Kind("castle"), Modern, 0},
		{"road is not a building", Road, Modern, 0},
		{"house without style", House, "", 0},
		{"unknown style", Skyscraper, Style("gothic"), 5},
		{"too many floors", Skyscraper, Modern, MaxFloors + 1},
		{"negative floors", Skyscraper, Modern, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Describe(tt.kind, tt.style, tt.floors)
			if !errors.Is(err, ErrInvalidBuildingTypeOrStyle) {
				t.Errorf("error = %v, want ErrInvalidBuildingTypeOrStyle", err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if k, err := ParseKind(" Skyscraper "); err != nil || k != Skyscraper {
		t.Errorf("ParseKind = %q, %v", k, err)
	}
	if _, err := ParseKind("bridge"); !errors.Is(err, ErrInvalidBuildingTypeOrStyle) {
		t.Errorf("ParseKind(bridge) error = %v", err)
	}
	if s, err := ParseStyle("CLASSIC"); err != nil || s != Classic {
		t.Errorf("ParseStyle = %q, %v", s, err)
	}
	if _, err := ParseStyle("baroque"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestPitchedRoof(t *testing.T) {
	if PitchedRoof(House, Modern) {
		t.Error("modern house has a flat roof")
	}
	if !PitchedRoof(House, Classic) || !PitchedRoof(House, Futuristic) {
		t.Error("classic and futuristic houses have pitched roofs")
	}
	if PitchedRoof(Skyscraper, Classic) {
		t.Error("only houses get the roof allowance")
	}
}

func TestFactoryTagsNode(t *testing.T) {
	f := NewFactory(1)
	n, err := f.New(Skyscraper, Futuristic, 12)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n.Type != scene.EntityBuilding || n.Kind != "skyscraper" || n.Style != "futuristic" || n.Floors != 12 {
		t.Errorf("unexpected tags: %+v", n)
	}
	if n.Color == "" {
		t.Error("skyscraper should get a palette colour")
	}
	if got := n.Extent.Size().Y; math.Abs(got-(48+2.5+4)) > 1e-9 {
		t.Errorf("height = %v", got)
	}
	if n.Metadata["floors"] != 12 {
		t.Errorf("metadata floors = %v", n.Metadata["floors"])
	}
}

func TestFactoryTreeScale(t *testing.T) {
	f := NewFactory(7)
	for i := 0; i < 20; i++ {
		n, err := f.New(Tree, "", 0)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if n.Type != scene.EntityTree {
			t.Fatalf("type = %s, want tree", n.Type)
		}
		if n.Scale < 0.8 || n.Scale > 1.2 {
			t.Errorf("tree scale %v outside [0.8, 1.2]", n.Scale)
		}
		if n.Yaw != 0 {
			t.Errorf("tree yaw = %v, want 0", n.Yaw)
		}
	}
}

func TestFactoryDeterministic(t *testing.T) {
	a, _ := NewFactory(42).New(Skyscraper, Modern, 5)
	b, _ := NewFactory(42).New(Skyscraper, Modern, 5)
	if a.Color != b.Color {
		t.Errorf("colours differ: %s vs %s", a.Color, b.Color)
	}
}

func TestFactoryInvalidReturnsNil(t *testing.T) {
	n, err := NewFactory(1).New(House, Style("gothic"), 0)
	if n != nil {
		t.Error("expected nil node")
	}
	if !errors.Is(err, ErrInvalidBuildingTypeOrStyle) {
		t.Errorf("error = %v", err)
	}
}
