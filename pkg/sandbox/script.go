package sandbox

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/interaction"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/logger"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/validation"
)

// Point is a ground position.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Z float64 `yaml:"z" json:"z"`
}

// Drag is a pointer drag. Steps intermediate moves are sent between the
// endpoints.
type Drag struct {
	From  Point `yaml:"from" json:"from"`
	To    Point `yaml:"to" json:"to"`
	Steps int   `yaml:"steps" json:"steps"`
}

// Step is one gesture. Exactly one field is set.
type Step struct {
	Tool   string `yaml:"tool,omitempty" json:"tool,omitempty"`
	Style  string `yaml:"style,omitempty" json:"style,omitempty"`
	Floors int    `yaml:"floors,omitempty" json:"floors,omitempty"`
	Click  *Point `yaml:"click,omitempty" json:"click,omitempty"`
	Drag   *Drag  `yaml:"drag,omitempty" json:"drag,omitempty"`
	Delete *Point `yaml:"delete,omitempty" json:"delete,omitempty"`
	Key    string `yaml:"key,omitempty" json:"key,omitempty"`
	WaitMS int    `yaml:"wait_ms,omitempty" json:"wait_ms,omitempty"`
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Tool != "", s.Style != "", s.Floors != 0,
		s.Click != nil, s.Drag != nil, s.Delete != nil,
		s.Key != "", s.WaitMS != 0,
	} {
		if set {
			n++
		}
	}
	return n
}

// Script is a recorded gesture sequence.
type Script struct {
	Name  string `yaml:"name" json:"name"`
	Steps []Step `yaml:"steps" json:"steps"`
}

// LoadScript reads a gesture script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script file: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML gesture script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script YAML: %w", err)
	}
	return &s, nil
}

// ValidateScript checks that every step names exactly one gesture and that
// waits are not negative.
func ValidateScript(s *Script) *validation.Report {
	r := validation.NewReport()
	if len(s.Steps) == 0 {
		r.AddWarning(validation.Result{
			Level:   validation.LevelScript,
			Message: "script has no steps",
			Path:    "steps",
		})
	}
	for i, st := range s.Steps {
		path := fmt.Sprintf("steps[%d]", i)
		if n := st.actions(); n != 1 {
			r.AddError(validation.Result{
				Level:       validation.LevelScript,
				Message:     "step must contain exactly one gesture",
				Path:        path,
				ActualValue: n,
				Expected:    "1",
			})
		}
		if st.WaitMS < 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelScript,
				Message:     "wait_ms must be non-negative",
				Path:        path + ".wait_ms",
				ActualValue: st.WaitMS,
				Expected:    ">= 0",
			})
		}
		if st.Drag != nil && st.Drag.Steps < 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelScript,
				Message:     "drag.steps must be non-negative",
				Path:        path + ".drag.steps",
				ActualValue: st.Drag.Steps,
				Expected:    ">= 0",
			})
		}
	}
	return r
}

// Outcome tallies what a script did.
type Outcome struct {
	Placed        int                  `json:"placed"`
	Rejected      int                  `json:"rejected"`
	Removed       int                  `json:"removed"`
	Roads         int                  `json:"roads"`
	Intersections int                  `json:"intersections"`
	Ignored       int                  `json:"ignored"`
	Results       []interaction.Action `json:"results"`
}

func (o *Outcome) record(res interaction.Result) {
	o.Results = append(o.Results, res.Action)
	switch res.Action {
	case interaction.ActionPlaced:
		o.Placed++
	case interaction.ActionRejected:
		o.Rejected++
	case interaction.ActionRemoved:
		o.Removed++
	case interaction.ActionRoadCommitted:
		o.Roads++
		o.Intersections += len(res.Intersections)
	case interaction.ActionNone:
		if res.Err != nil {
			o.Ignored++
		}
	}
}

// RunScript replays s against the sandbox. Gesture failures are absorbed
// and counted; invalid scripts and toolbar selections return an error.
func (s *Sandbox) RunScript(script *Script) (*Outcome, error) {
	if err := ValidateScript(script).Err(); err != nil {
		return nil, fmt.Errorf("script %q: %w", script.Name, err)
	}

	out := &Outcome{}
	for i, st := range script.Steps {
		if err := s.apply(st, out); err != nil {
			return out, fmt.Errorf("step %d: %w", i, err)
		}
	}
	logger.Log.WithFields(logrus.Fields{
		"script":   script.Name,
		"placed":   out.Placed,
		"rejected": out.Rejected,
		"roads":    out.Roads,
	}).Info("script complete")
	return out, nil
}

func (s *Sandbox) apply(st Step, out *Outcome) error {
	r := s.Router
	switch {
	case st.Tool != "":
		return r.SetTool(st.Tool)
	case st.Style != "":
		return r.SetStyle(st.Style)
	case st.Floors != 0:
		return r.SetFloors(st.Floors)
	case st.Key != "":
		r.KeyDown(st.Key)
	case st.WaitMS > 0:
		s.Wait(time.Duration(st.WaitMS) * time.Millisecond)
	case st.Click != nil:
		out.record(r.PointerDown(Click(st.Click.X, st.Click.Z)))
		r.PointerUp()
	case st.Delete != nil:
		wasDeleting := r.DeleteMode()
		if !wasDeleting {
			r.ToggleDeleteMode()
		}
		out.record(r.PointerDown(Click(st.Delete.X, st.Delete.Z)))
		if !wasDeleting {
			r.ToggleDeleteMode()
		}
	case st.Drag != nil:
		s.drag(*st.Drag, out)
	}
	return nil
}

func (s *Sandbox) drag(d Drag, out *Outcome) {
	r := s.Router
	down := r.PointerDown(Click(d.From.X, d.From.Z))
	if down.Action != interaction.ActionRoadStarted {
		out.record(down)
		r.PointerUp()
		return
	}
	n := d.Steps + 1
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		x := d.From.X + (d.To.X-d.From.X)*t
		z := d.From.Z + (d.To.Z-d.From.Z)*t
		r.PointerMove(Click(x, z))
	}
	out.record(r.PointerUp())
}
