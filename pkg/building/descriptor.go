package building

import "fmt"

const (
	floorHeight     = 4.0
	skyscraperWidth = 8.0
	rooftopHeight   = 2.5 // roof slab plus rooftop structure

	// DefaultFloors is the skyscraper height used when none is selected.
	DefaultFloors = 5
	// MaxFloors is the tallest skyscraper the factory builds.
	MaxFloors = 50
)

// Descriptor is the geometry a kind/style/floors combination resolves to.
// The footprint is centred on the node origin with its base at y=0.
type Descriptor struct {
	Kind     Kind
	Style    Style
	Floors   int
	Width    float64
	Depth    float64
	Height   float64
	Material string
	Color    string
}

var houses = map[Style]Descriptor{
	Modern:     {Width: 6, Depth: 6, Height: 5, Material: "render", Color: "#e0e0e0"},
	Classic:    {Width: 6, Depth: 6, Height: 6, Material: "brick", Color: "#b5651d"},
	Futuristic: {Width: 7, Depth: 7, Height: 6.5, Material: "composite", Color: "#cfd8dc"},
}

var skyscraperMaterials = map[Style]string{
	Modern:     "glass",
	Classic:    "stone",
	Futuristic: "titanium",
}

// Describe resolves a kind, style and floor count to its geometry. Trees
// ignore style and floors. A zero floor count means DefaultFloors.
func Describe(kind Kind, style Style, floors int) (Descriptor, error) {
	switch kind {
	case House:
		d, ok := houses[style]
		if !ok {
			return Descriptor{}, fmt.Errorf("house style %q: %w", style, ErrInvalidBuildingTypeOrStyle)
		}
		d.Kind, d.Style = House, style
		return d, nil

	case Skyscraper:
		mat, ok := skyscraperMaterials[style]
		if !ok {
			return Descriptor{}, fmt.Errorf("skyscraper style %q: %w", style, ErrInvalidBuildingTypeOrStyle)
		}
		if floors == 0 {
			floors = DefaultFloors
		}
		if floors < 1 || floors > MaxFloors {
			return Descriptor{}, fmt.Errorf("skyscraper floors %d outside [1, %d]: %w", floors, MaxFloors, ErrInvalidBuildingTypeOrStyle)
		}
		h := floorHeight*float64(floors) + rooftopHeight
		if style == Futuristic {
			h += 4 // spire
		}
		return Descriptor{
			Kind:     Skyscraper,
			Style:    style,
			Floors:   floors,
			Width:    skyscraperWidth,
			Depth:    skyscraperWidth,
			Height:   h,
			Material: mat,
		}, nil

	case Tree:
		return Descriptor{
			Kind:     Tree,
			Width:    4,
			Depth:    4,
			Height:   6,
			Material: "foliage",
			Color:    "#228b22",
		}, nil
	}
	return Descriptor{}, fmt.Errorf("kind %q: %w", kind, ErrInvalidBuildingTypeOrStyle)
}
