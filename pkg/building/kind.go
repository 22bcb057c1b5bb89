package building

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBuildingTypeOrStyle is returned for kind/style/floor
// combinations the factory cannot build.
var ErrInvalidBuildingTypeOrStyle = errors.New("invalid building type or style")

// Kind identifies what a tool places.
type Kind string

const (
	House      Kind = "house"
	Skyscraper Kind = "skyscraper"
	Tree       Kind = "tree"
	Road       Kind = "road"
)

// Kinds lists every tool kind in toolbar order.
var Kinds = []Kind{House, Skyscraper, Road, Tree}

// Style is the architectural variant of a building.
type Style string

const (
	Modern     Style = "modern"
	Classic    Style = "classic"
	Futuristic Style = "futuristic"
)

// Styles lists every building style.
var Styles = []Style{Modern, Classic, Futuristic}

// ParseKind converts a tool name into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("kind %q: %w", s, ErrInvalidBuildingTypeOrStyle)
}

// ParseStyle converts a style name into a Style.
func ParseStyle(s string) (Style, error) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Styles {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("style %q: %w", s, ErrInvalidBuildingTypeOrStyle)
}

// IsBuilding reports whether k is placed on the grid.
func (k Kind) IsBuilding() bool {
	return k == House || k == Skyscraper || k == Tree
}

// PitchedRoof reports whether the silhouette of this kind and style rises
// above its axis-aligned body, which is true of every non-modern house.
func PitchedRoof(k Kind, s Style) bool {
	return k == House && s != "" && s != Modern
}
