package building

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/logger"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

var skyscraperPalette = []string{
	"#e57373", "#81c784", "#64b5f6", "#ffb74d", "#ba68c8",
	"#4dd0e1", "#f06292", "#aed581", "#4fc3f7", "#ffd54f",
}

// Factory turns descriptors into scene nodes tagged with kind, style and
// floors. Colour and tree jitter come from a seeded source so runs repeat.
type Factory struct {
	rng *rand.Rand
}

// NewFactory creates a factory whose random choices derive from seed.
func NewFactory(seed int64) *Factory {
	return &Factory{rng: rand.New(rand.NewSource(seed))}
}

// New builds a node for the given kind. Invalid combinations are logged and
// return a nil node with ErrInvalidBuildingTypeOrStyle.
func (f *Factory) New(kind Kind, style Style, floors int) (*scene.Node, error) {
	d, err := Describe(kind, style, floors)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"kind":   kind,
			"style":  style,
			"floors": floors,
		}).WithError(err).Warn("building not created")
		return nil, err
	}

	t := scene.EntityBuilding
	if d.Kind == Tree {
		t = scene.EntityTree
	}
	n := scene.NewNode(t)
	n.Kind = string(d.Kind)
	n.Style = string(d.Style)
	n.Floors = d.Floors
	n.Material = d.Material
	n.Color = d.Color
	n.Extent = scene.Box(d.Width, d.Height, d.Depth)

	n.Metadata = map[string]any{
		"type":   n.Kind,
		"style":  n.Style,
		"floors": n.Floors,
	}

	switch d.Kind {
	case Skyscraper:
		n.Color = skyscraperPalette[f.rng.Intn(len(skyscraperPalette))]
	case Tree:
		n.Scale = 0.8 + f.rng.Float64()*0.4
		// Foliage is round, so the spin is cosmetic and stays out of the
		// node transform where it would inflate the bounding box.
		n.Metadata["spin"] = f.rng.Float64() * 2 * math.Pi
	}
	return n, nil
}
