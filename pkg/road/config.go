package road

// Config holds road geometry, decoration spacing and ambient motion speeds.
// Distances are world units, speeds units per second.
type Config struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`

	FootpathWidth  float64 `yaml:"footpath_width" json:"footpath_width"`
	FootpathOffset float64 `yaml:"footpath_offset" json:"footpath_offset"`

	DashLength     float64 `yaml:"dash_length" json:"dash_length"`
	GapLength      float64 `yaml:"gap_length" json:"gap_length"`
	EdgeLineOffset float64 `yaml:"edge_line_offset" json:"edge_line_offset"`

	LightSpacing float64 `yaml:"light_spacing" json:"light_spacing"`
	LightOffset  float64 `yaml:"light_offset" json:"light_offset"`

	VehicleSpacing float64 `yaml:"vehicle_spacing" json:"vehicle_spacing"`
	LaneOffset     float64 `yaml:"lane_offset" json:"lane_offset"`
	VehicleSpeed   float64 `yaml:"vehicle_speed" json:"vehicle_speed"`

	PedestrianSpacing float64 `yaml:"pedestrian_spacing" json:"pedestrian_spacing"`
	PedestrianSpeed   float64 `yaml:"pedestrian_speed" json:"pedestrian_speed"`

	IntersectionRadius float64 `yaml:"intersection_radius" json:"intersection_radius"`
	// MinCrossingAngle is the smallest angle in radians between two road
	// directions that is treated as a crossing.
	MinCrossingAngle float64 `yaml:"min_crossing_angle" json:"min_crossing_angle"`
	// ParallelEpsilon bounds |d1 x d2|^2 below which two roads are parallel.
	ParallelEpsilon float64 `yaml:"parallel_epsilon" json:"parallel_epsilon"`
}

// DefaultConfig returns the stock road layout.
func DefaultConfig() Config {
	return Config{
		Width:              2,
		Height:             0.1,
		FootpathWidth:      1.5,
		FootpathOffset:     1.2,
		DashLength:         2,
		GapLength:          2,
		EdgeLineOffset:     0.9,
		LightSpacing:       10,
		LightOffset:        2.5,
		VehicleSpacing:     15,
		LaneOffset:         0.4,
		VehicleSpeed:       3,
		PedestrianSpacing:  4,
		PedestrianSpeed:    1.2,
		IntersectionRadius: 2,
		MinCrossingAngle:   0.1,
		ParallelEpsilon:    1e-4,
	}
}

// FootpathCentre is the lateral distance from the road axis to the middle
// of each footpath.
func (c Config) FootpathCentre() float64 {
	return c.FootpathOffset + c.FootpathWidth/2
}
