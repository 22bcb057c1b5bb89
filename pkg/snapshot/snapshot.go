// Package snapshot renders an exported scene as a top-down raster map.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

// ColourScheme defines how each entity type is drawn. Types without an
// entry are skipped.
type ColourScheme struct {
	Background color.Color
	Types      map[scene.EntityType]color.Color
	// UseEntityColour prefers an entity's own hex colour for buildings.
	UseEntityColour bool
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background: colornames.Black,
		Types: map[scene.EntityType]color.Color{
			scene.EntityGround:       colornames.Darkseagreen,
			scene.EntityRoad:         colornames.Dimgray,
			scene.EntityFootpath:     colornames.Lightgray,
			scene.EntityIntersection: colornames.Dimgray,
			scene.EntityConnector:    colornames.Dimgray,
			scene.EntityLaneMarking:  colornames.White,
			scene.EntityBuilding:     colornames.Steelblue,
			scene.EntityTree:         colornames.Forestgreen,
			scene.EntityVehicle:      colornames.Crimson,
		},
		UseEntityColour: true,
	}
}

// drawOrder lists entity types bottom layer first.
var drawOrder = []scene.EntityType{
	scene.EntityGround,
	scene.EntityFootpath,
	scene.EntityRoad,
	scene.EntityIntersection,
	scene.EntityConnector,
	scene.EntityLaneMarking,
	scene.EntityVehicle,
	scene.EntityBuilding,
	scene.EntityTree,
}

// Options control the output image.
type Options struct {
	// Size is the width and height of the image in pixels.
	Size   int
	Scheme *ColourScheme
}

// DefaultOptions returns an 800 pixel square image in the default scheme.
func DefaultOptions() Options {
	return Options{Size: 800, Scheme: DefaultScheme()}
}

// projection maps world X/Z onto pixels with +X right and +Z down.
type projection struct {
	minX, minZ float64
	scale      float64
}

func (p projection) point(v scene.Vec3) (float64, float64) {
	return (v.X - p.minX) * p.scale, (v.Z - p.minZ) * p.scale
}

func newProjection(doc *scene.Document, size int) projection {
	b := doc.Metadata.Bounds
	for _, e := range doc.Entities {
		if e.Type == scene.EntityGround {
			b = scene.BoundingBox{
				Min: scene.Vec3{X: e.Position.X - e.Dimensions.X/2, Z: e.Position.Z - e.Dimensions.Z/2},
				Max: scene.Vec3{X: e.Position.X + e.Dimensions.X/2, Z: e.Position.Z + e.Dimensions.Z/2},
			}
			break
		}
	}
	span := math.Max(b.Max.X-b.Min.X, b.Max.Z-b.Min.Z)
	if span <= 0 {
		span = 1
	}
	return projection{minX: b.Min.X, minZ: b.Min.Z, scale: float64(size) / span}
}

// Render draws doc from above.
func Render(doc *scene.Document, opts Options) (image.Image, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("snapshot size %d must be positive", opts.Size)
	}
	if opts.Scheme == nil {
		opts.Scheme = DefaultScheme()
	}

	dc := gg.NewContext(opts.Size, opts.Size)
	dc.SetColor(opts.Scheme.Background)
	dc.Clear()

	proj := newProjection(doc, opts.Size)
	byType := make(map[scene.EntityType][]scene.Entity)
	for _, e := range doc.Entities {
		byType[e.Type] = append(byType[e.Type], e)
	}

	for _, t := range drawOrder {
		col, ok := opts.Scheme.Types[t]
		if !ok {
			continue
		}
		for _, e := range byType[t] {
			drawEntity(dc, proj, e, col, opts.Scheme.UseEntityColour)
		}
	}
	return dc.Image(), nil
}

func drawEntity(dc *gg.Context, proj projection, e scene.Entity, col color.Color, own bool) {
	x, y := proj.point(e.Position)
	w := e.Dimensions.X * proj.scale
	h := e.Dimensions.Z * proj.scale
	if w <= 0 || h <= 0 {
		return
	}

	if own && e.Color != "" && (e.Type == scene.EntityBuilding || e.Type == scene.EntityLaneMarking) {
		dc.SetHexColor(e.Color)
	} else {
		dc.SetColor(col)
	}

	switch e.Type {
	case scene.EntityTree, scene.EntityIntersection:
		dc.DrawCircle(x, y, math.Min(w, h)/2)
		dc.Fill()
		return
	}

	dc.Push()
	dc.Translate(x, y)
	dc.Rotate(-e.Yaw())
	dc.DrawRectangle(-w/2, -h/2, w, h)
	dc.Fill()
	dc.Pop()
}

// SavePNG renders doc and writes it to path.
func SavePNG(doc *scene.Document, path string, opts Options) error {
	im, err := Render(doc, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, im)
}
