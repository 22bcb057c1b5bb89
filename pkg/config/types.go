package config

import (
	"time"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/building"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/collision"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/grid"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/placement"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/road"
)

// Config is the top-level sandbox configuration.
type Config struct {
	Grid      GridDef      `yaml:"grid" json:"grid"`
	Collision CollisionDef `yaml:"collision" json:"collision"`
	Placement PlacementDef `yaml:"placement" json:"placement"`
	Road      road.Config  `yaml:"road" json:"road"`
	Scene     SceneDef     `yaml:"scene" json:"scene"`
	Server    ServerDef    `yaml:"server" json:"server"`
}

type GridDef struct {
	CellSize float64 `yaml:"cell_size" json:"cell_size"`
}

type CollisionDef struct {
	Buffers       map[string]float64 `yaml:"buffers" json:"buffers"`
	DefaultBuffer float64            `yaml:"default_buffer" json:"default_buffer"`
	RoofAllowance float64            `yaml:"roof_allowance" json:"roof_allowance"`
	FloorSink     float64            `yaml:"floor_sink" json:"floor_sink"`
}

type PlacementDef struct {
	MarkerDelayMS int `yaml:"marker_delay_ms" json:"marker_delay_ms"`
}

type SceneDef struct {
	GroundSize float64 `yaml:"ground_size" json:"ground_size"`
	// Seed drives skyscraper colours and tree jitter.
	Seed int64 `yaml:"seed" json:"seed"`
}

type ServerDef struct {
	Port           int `yaml:"port" json:"port"`
	TickHz         int `yaml:"tick_hz" json:"tick_hz"`
	BroadcastEvery int `yaml:"broadcast_every" json:"broadcast_every"`
}

// Default returns the stock sandbox configuration.
func Default() *Config {
	cc := collision.DefaultConfig()
	buffers := make(map[string]float64, len(cc.Buffers))
	for k, v := range cc.Buffers {
		buffers[string(k)] = v
	}
	return &Config{
		Grid: GridDef{CellSize: grid.DefaultCellSize},
		Collision: CollisionDef{
			Buffers:       buffers,
			DefaultBuffer: cc.DefaultBuffer,
			RoofAllowance: cc.RoofAllowance,
			FloorSink:     cc.FloorSink,
		},
		Placement: PlacementDef{
			MarkerDelayMS: int(placement.DefaultOptions().MarkerDelay / time.Millisecond),
		},
		Road:  road.DefaultConfig(),
		Scene: SceneDef{GroundSize: 100, Seed: 1},
		Server: ServerDef{
			Port:           8080,
			TickHz:         30,
			BroadcastEvery: 3,
		},
	}
}

// CollisionConfig converts the collision section for the checker.
func (c *Config) CollisionConfig() collision.Config {
	buffers := make(map[building.Kind]float64, len(c.Collision.Buffers))
	for k, v := range c.Collision.Buffers {
		buffers[building.Kind(k)] = v
	}
	return collision.Config{
		Buffers:       buffers,
		DefaultBuffer: c.Collision.DefaultBuffer,
		RoofAllowance: c.Collision.RoofAllowance,
		FloorSink:     c.Collision.FloorSink,
	}
}

// PlacementOptions converts the placement section for the engine.
func (c *Config) PlacementOptions() placement.Options {
	return placement.Options{
		MarkerDelay: time.Duration(c.Placement.MarkerDelayMS) * time.Millisecond,
	}
}

// TickInterval returns the server's frame period.
func (c *Config) TickInterval() time.Duration {
	if c.Server.TickHz <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.Server.TickHz)
}
