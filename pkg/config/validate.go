package config

import (
	"fmt"
	"sort"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/building"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/validation"
)

// Validate checks a configuration for values the engine cannot use.
func Validate(c *Config) *validation.Report {
	r := validation.NewReport()

	validateGrid(c, r)
	validateCollision(c, r)
	validatePlacement(c, r)
	validateRoad(c, r)
	validateScene(c, r)
	validateServer(c, r)

	return r
}

func positive(r *validation.Report, path string, v float64) {
	if v <= 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     fmt.Sprintf("%s must be greater than 0", path),
			Path:        path,
			ActualValue: v,
			Expected:    "> 0",
		})
	}
}

func nonNegative(r *validation.Report, path string, v float64) {
	if v < 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     fmt.Sprintf("%s must be non-negative", path),
			Path:        path,
			ActualValue: v,
			Expected:    ">= 0",
		})
	}
}

func validateGrid(c *Config, r *validation.Report) {
	positive(r, "grid.cell_size", c.Grid.CellSize)
}

func validateCollision(c *Config, r *validation.Report) {
	kinds := make([]string, 0, len(c.Collision.Buffers))
	for k := range c.Collision.Buffers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	for _, k := range kinds {
		path := "collision.buffers." + k
		nonNegative(r, path, c.Collision.Buffers[k])
		if _, err := building.ParseKind(k); err != nil {
			r.AddWarning(validation.Result{
				Level:       validation.LevelConfig,
				Message:     fmt.Sprintf("buffer for %q never applies: no object of that kind exists", k),
				Path:        path,
				ActualValue: k,
			})
		}
	}
	nonNegative(r, "collision.default_buffer", c.Collision.DefaultBuffer)
	nonNegative(r, "collision.roof_allowance", c.Collision.RoofAllowance)
	nonNegative(r, "collision.floor_sink", c.Collision.FloorSink)

	if c.Collision.DefaultBuffer*2 >= c.Grid.CellSize && c.Grid.CellSize > 0 {
		r.AddWarning(validation.Result{
			Level:       validation.LevelConfig,
			Message:     "default buffer spans a whole cell; neighbouring placements will always collide",
			Path:        "collision.default_buffer",
			ActualValue: c.Collision.DefaultBuffer,
			Expected:    fmt.Sprintf("< %g", c.Grid.CellSize/2),
		})
	}
}

func validatePlacement(c *Config, r *validation.Report) {
	positive(r, "placement.marker_delay_ms", float64(c.Placement.MarkerDelayMS))
}

func validateRoad(c *Config, r *validation.Report) {
	rc := c.Road
	positive(r, "road.width", rc.Width)
	positive(r, "road.height", rc.Height)
	positive(r, "road.dash_length", rc.DashLength)
	nonNegative(r, "road.gap_length", rc.GapLength)
	positive(r, "road.light_spacing", rc.LightSpacing)
	positive(r, "road.vehicle_spacing", rc.VehicleSpacing)
	positive(r, "road.pedestrian_spacing", rc.PedestrianSpacing)
	nonNegative(r, "road.vehicle_speed", rc.VehicleSpeed)
	nonNegative(r, "road.pedestrian_speed", rc.PedestrianSpeed)
	positive(r, "road.intersection_radius", rc.IntersectionRadius)
	positive(r, "road.parallel_epsilon", rc.ParallelEpsilon)

	if rc.LaneOffset*2 > rc.Width {
		r.AddWarning(validation.Result{
			Level:       validation.LevelConfig,
			Message:     "vehicle lanes lie outside the carriageway",
			Path:        "road.lane_offset",
			ActualValue: rc.LaneOffset,
			Expected:    fmt.Sprintf("<= %g", rc.Width/2),
		})
	}
	if rc.FootpathOffset < rc.Width/2 {
		r.AddWarning(validation.Result{
			Level:       validation.LevelConfig,
			Message:     "footpaths overlap the carriageway",
			Path:        "road.footpath_offset",
			ActualValue: rc.FootpathOffset,
			Expected:    fmt.Sprintf(">= %g", rc.Width/2),
		})
	}
}

func validateScene(c *Config, r *validation.Report) {
	positive(r, "scene.ground_size", c.Scene.GroundSize)
	if c.Grid.CellSize > 0 && c.Scene.GroundSize > 0 && c.Scene.GroundSize < c.Grid.CellSize {
		r.AddWarning(validation.Result{
			Level:       validation.LevelConfig,
			Message:     "ground is smaller than a single grid cell",
			Path:        "scene.ground_size",
			ActualValue: c.Scene.GroundSize,
		})
	}
}

func validateServer(c *Config, r *validation.Report) {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     "server.port out of range",
			Path:        "server.port",
			ActualValue: c.Server.Port,
			Expected:    "0-65535",
		})
	}
	positive(r, "server.tick_hz", float64(c.Server.TickHz))
	positive(r, "server.broadcast_every", float64(c.Server.BroadcastEvery))
}
