// Package grid is the authoritative occupancy map for grid-placed objects.
// The domain is unbounded: cells exist only while something occupies them.
package grid

import (
	"math"
	"sort"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

// DefaultCellSize is the side length of a cell in world units.
const DefaultCellSize = 10.0

// snapEpsilon absorbs float error when a coordinate already sits on a cell
// boundary, so snapping a cell origin returns the same cell.
const snapEpsilon = 1e-9

// Cell is the origin corner of a grid cell, in world units.
type Cell struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Store maps cells to their single occupant.
type Store struct {
	size  float64
	cells map[Cell]*scene.Node
}

// New creates an empty store. A non-positive size selects DefaultCellSize.
func New(size float64) *Store {
	if size <= 0 {
		size = DefaultCellSize
	}
	return &Store{size: size, cells: make(map[Cell]*scene.Node)}
}

// Size returns the cell side length.
func (s *Store) Size() float64 {
	return s.size
}

// CellKey snaps a world coordinate to the origin of its containing cell.
// CellKey(c.X, c.Z) == c for every cell it returns.
func (s *Store) CellKey(x, z float64) Cell {
	return Cell{X: s.snap(x), Z: s.snap(z)}
}

func (s *Store) snap(v float64) float64 {
	i := math.Floor(v/s.size + snapEpsilon)
	c := i * s.size
	if c == 0 {
		return 0 // normalise -0
	}
	return c
}

// Occupant returns the node in cell, if any.
func (s *Store) Occupant(c Cell) (*scene.Node, bool) {
	n, ok := s.cells[c]
	return n, ok
}

// Set records n as the occupant of c. A nil node clears the cell.
func (s *Store) Set(c Cell, n *scene.Node) {
	if n == nil {
		delete(s.cells, c)
		return
	}
	s.cells[c] = n
}

// Clear empties c.
func (s *Store) Clear(c Cell) {
	delete(s.cells, c)
}

// Len returns the number of occupied cells.
func (s *Store) Len() int {
	return len(s.cells)
}

// Find returns the cell occupied by n.
func (s *Store) Find(n *scene.Node) (Cell, bool) {
	for c, occ := range s.cells {
		if occ == n {
			return c, true
		}
	}
	return Cell{}, false
}

// Cells returns the occupied cells ordered by X, then Z.
func (s *Store) Cells() []Cell {
	out := make([]Cell, 0, len(s.cells))
	for c := range s.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Z < out[j].Z
	})
	return out
}
