// Package validation collects findings from the config, script and scene
// checks into one report.
package validation

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by Report.Err when a report holds errors.
var ErrInvalid = errors.New("validation failed")

// Level indicates which validation stage produced the result.
type Level string

const (
	LevelConfig Level = "config"
	LevelScene  Level = "scene"
	LevelScript Level = "script"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is a single validation finding. Path is the dotted location of the
// offending value, such as "collision.buffers.house" or "steps[3].wait_ms".
type Result struct {
	Level        Level    `json:"level"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	Path         string   `json:"path"`
	ActualValue  any      `json:"actual_value,omitempty"`
	Expected     string   `json:"expected,omitempty"`
	ConflictWith string   `json:"conflict_with,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

func (r Result) String() string {
	if r.Path == "" {
		return fmt.Sprintf("[%s] %s", r.Level, r.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", r.Level, r.Path, r.Message)
}

// Report is the complete validation output.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	r := &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
	r.updateSummary()
	return r
}

// Add files result under sev.
func (r *Report) Add(sev Severity, result Result) {
	result.Severity = sev
	switch sev {
	case SeverityError:
		r.Errors = append(r.Errors, result)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, result)
	default:
		result.Severity = SeverityInfo
		r.Info = append(r.Info, result)
	}
	r.updateSummary()
}

// AddError adds an error result and marks the report invalid.
func (r *Report) AddError(result Result) { r.Add(SeverityError, result) }

// AddWarning adds a warning result.
func (r *Report) AddWarning(result Result) { r.Add(SeverityWarning, result) }

// AddInfo adds an informational result.
func (r *Report) AddInfo(result Result) { r.Add(SeverityInfo, result) }

// Merge combines another report into this one.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

// Levels returns the stages that produced findings, in the order each
// first appears among errors, then warnings, then info.
func (r *Report) Levels() []Level {
	var out []Level
	seen := make(map[Level]bool)
	for _, list := range [][]Result{r.Errors, r.Warnings, r.Info} {
		for _, res := range list {
			if !seen[res.Level] {
				seen[res.Level] = true
				out = append(out, res.Level)
			}
		}
	}
	return out
}

// Filter returns a new report holding only the findings of one stage.
func (r *Report) Filter(level Level) *Report {
	out := NewReport()
	for _, list := range [][]Result{r.Errors, r.Warnings, r.Info} {
		for _, res := range list {
			if res.Level == level {
				out.Add(res.Severity, res)
			}
		}
	}
	return out
}

// Err returns nil for a valid report. Otherwise it wraps ErrInvalid and
// names the first error.
func (r *Report) Err() error {
	if r.Valid {
		return nil
	}
	if len(r.Errors) == 0 {
		return ErrInvalid
	}
	if len(r.Errors) == 1 {
		return fmt.Errorf("%w: %s", ErrInvalid, r.Errors[0])
	}
	return fmt.Errorf("%w: %s (and %d more)", ErrInvalid, r.Errors[0], len(r.Errors)-1)
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}
