package grid

import (
	"testing"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

func TestCellKey(t *testing.T) {
	s := New(10)
	tests := []struct {
		x, z float64
		want Cell
	}{
		{0, 0, Cell{0, 0}},
		{3.2, 7.9, Cell{0, 0}},
		{10, 10, Cell{10, 10}},
		{19.99, 0.5, Cell{10, 0}},
		{-0.1, -9.9, Cell{-10, -10}},
		{-10, 25, Cell{-10, 20}},
	}
	for _, tt := range tests {
		got := s.CellKey(tt.x, tt.z)
		if got != tt.want {
			t.Errorf("CellKey(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestCellKeyIdempotent(t *testing.T) {
	for _, size := range []float64{10, 8, 0.3, 2.5} {
		s := New(size)
		for _, x := range []float64{-37.3, -0.01, 0, 0.9, 12.4, 99.99, 1234.5} {
			c := s.CellKey(x, -x)
			if again := s.CellKey(c.X, c.Z); again != c {
				t.Errorf("size %v: CellKey(CellKey(%v)) = %v, want %v", size, x, again, c)
			}
		}
	}
}

func TestDefaultSize(t *testing.T) {
	if got := New(0).Size(); got != DefaultCellSize {
		t.Errorf("Size() = %v, want %v", got, DefaultCellSize)
	}
	if got := New(-4).Size(); got != DefaultCellSize {
		t.Errorf("Size() = %v, want %v", got, DefaultCellSize)
	}
}

func TestSetAndClear(t *testing.T) {
	s := New(10)
	a := scene.NewNode(scene.EntityBuilding)
	b := scene.NewNode(scene.EntityTree)
	c := s.CellKey(5, 5)

	if _, ok := s.Occupant(c); ok {
		t.Fatal("fresh cell should be empty")
	}
	s.Set(c, a)
	s.Set(c, b)
	if got, _ := s.Occupant(c); got != b {
		t.Error("second Set should replace the occupant")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if found, ok := s.Find(b); !ok || found != c {
		t.Errorf("Find = %v, %v, want %v", found, ok, c)
	}

	s.Set(c, nil)
	if _, ok := s.Occupant(c); ok {
		t.Error("Set(nil) should clear the cell")
	}

	s.Set(c, a)
	s.Clear(c)
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", s.Len())
	}
}

func TestCellsSorted(t *testing.T) {
	s := New(10)
	for _, p := range [][2]float64{{25, 5}, {-5, 15}, {5, 5}, {-5, -5}} {
		s.Set(s.CellKey(p[0], p[1]), scene.NewNode(scene.EntityTree))
	}
	want := []Cell{{-10, -10}, {-10, 10}, {0, 0}, {20, 0}}
	got := s.Cells()
	if len(got) != len(want) {
		t.Fatalf("Cells() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Cells()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
