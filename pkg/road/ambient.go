package road

import (
	"math"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/scene"
)

// Vehicle drives along its lane in road-local X and reappears at the far
// end when it leaves the road.
type Vehicle struct {
	Node      *scene.Node
	Lane      float64
	Direction float64
	Speed     float64
	HalfLen   float64
}

// Tick advances the vehicle by dt seconds.
func (v *Vehicle) Tick(dt float64) {
	v.Node.Position.X += v.Speed * v.Direction * dt
	switch {
	case v.Direction > 0 && v.Node.Position.X > v.HalfLen:
		v.Node.Position.X = -v.HalfLen
	case v.Direction < 0 && v.Node.Position.X < -v.HalfLen:
		v.Node.Position.X = v.HalfLen
	}
}

// Pedestrian walks a footpath, turning around at either end of the road.
type Pedestrian struct {
	Node      *scene.Node
	FootpathZ float64
	Direction float64
	Speed     float64
	MinX      float64
	MaxX      float64
}

// Tick advances the pedestrian by dt seconds.
func (p *Pedestrian) Tick(dt float64) {
	step := p.Speed * dt
	next := p.Node.Position.X + step*p.Direction
	if next > p.MaxX {
		p.Direction = -1
		p.Node.Yaw = math.Pi
	} else if next < p.MinX {
		p.Direction = 1
		p.Node.Yaw = 0
	}
	p.Node.Position.X += step * p.Direction
	p.Node.Position.Z = p.FootpathZ
}
