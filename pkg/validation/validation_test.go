package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestNewReport(t *testing.T) {
	r := NewReport()
	if !r.Valid {
		t.Error("new report should be valid")
	}
	if len(r.Errors) != 0 || len(r.Warnings) != 0 || len(r.Info) != 0 {
		t.Error("new report should have empty slices")
	}
}

func TestAddError(t *testing.T) {
	r := NewReport()
	r.AddError(Result{
		Level:   LevelConfig,
		Message: "bad value",
	})
	if r.Valid {
		t.Error("report with error should be invalid")
	}
	if len(r.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(r.Errors))
	}
	if r.Errors[0].Severity != SeverityError {
		t.Error("AddError should set severity to error")
	}
	if r.Summary != "1 errors, 0 warnings, 0 info" {
		t.Errorf("unexpected summary: %s", r.Summary)
	}
}

func TestAddWarning(t *testing.T) {
	r := NewReport()
	r.AddWarning(Result{Level: LevelScene, Message: "heads up"})
	if !r.Valid {
		t.Error("warnings should not invalidate report")
	}
	if len(r.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(r.Warnings))
	}
	if r.Warnings[0].Severity != SeverityWarning {
		t.Error("AddWarning should set severity to warning")
	}
}

func TestAddInfo(t *testing.T) {
	r := NewReport()
	r.AddInfo(Result{Level: LevelScene, Message: "fyi"})
	if !r.Valid {
		t.Error("info should not invalidate report")
	}
	if len(r.Info) != 1 {
		t.Fatalf("expected 1 info, got %d", len(r.Info))
	}
}

func TestMerge(t *testing.T) {
	r1 := NewReport()
	r1.AddWarning(Result{Level: LevelConfig, Message: "warn1"})

	r2 := NewReport()
	r2.AddError(Result{Level: LevelScene, Message: "err1"})
	r2.AddWarning(Result{Level: LevelScene, Message: "warn2"})
	r2.AddInfo(Result{Level: LevelScene, Message: "info1"})

	r1.Merge(r2)

	if r1.Valid {
		t.Error("merged report should be invalid when other has errors")
	}
	if len(r1.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(r1.Errors))
	}
	if len(r1.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %d", len(r1.Warnings))
	}
	if len(r1.Info) != 1 {
		t.Errorf("expected 1 info, got %d", len(r1.Info))
	}
	if r1.Summary != "1 errors, 2 warnings, 1 info" {
		t.Errorf("unexpected summary: %s", r1.Summary)
	}
}

func TestMergeValidIntoValid(t *testing.T) {
	r1 := NewReport()
	r2 := NewReport()
	r2.AddInfo(Result{Level: LevelConfig, Message: "note"})

	r1.Merge(r2)

	if !r1.Valid {
		t.Error("merging two valid reports should stay valid")
	}
	if len(r1.Info) != 1 {
		t.Errorf("expected 1 info, got %d", len(r1.Info))
	}
}

func TestNewReportSummary(t *testing.T) {
	r := NewReport()
	if r.Summary != "0 errors, 0 warnings, 0 info" {
		t.Errorf("unexpected summary: %s", r.Summary)
	}
}

func TestFilterAndLevels(t *testing.T) {
	r := NewReport()
	r.AddWarning(Result{Level: LevelConfig, Message: "wide buffer"})
	r.AddError(Result{Level: LevelScript, Message: "two gestures", Path: "steps[1]"})
	r.AddInfo(Result{Level: LevelScene, Message: "3 roads"})
	r.AddError(Result{Level: LevelConfig, Message: "cell size", Path: "grid.cell_size"})

	levels := r.Levels()
	want := []Level{LevelScript, LevelConfig, LevelScene}
	if len(levels) != len(want) {
		t.Fatalf("levels = %v, want %v", levels, want)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("levels[%d] = %s, want %s", i, levels[i], want[i])
		}
	}

	cfg := r.Filter(LevelConfig)
	if cfg.Valid || len(cfg.Errors) != 1 || len(cfg.Warnings) != 1 || len(cfg.Info) != 0 {
		t.Errorf("config report = %+v", cfg)
	}
	if cfg.Summary != "1 errors, 1 warnings, 0 info" {
		t.Errorf("unexpected summary: %s", cfg.Summary)
	}
	if scn := r.Filter(LevelScene); !scn.Valid || len(scn.Info) != 1 {
		t.Errorf("scene report = %+v", scn)
	}
}

func TestErr(t *testing.T) {
	r := NewReport()
	if r.Err() != nil {
		t.Error("valid report should have no error")
	}
	r.AddError(Result{Level: LevelScript, Message: "wait_ms must be non-negative", Path: "steps[0].wait_ms"})
	err := r.Err()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if want := "validation failed: [script] steps[0].wait_ms: wait_ms must be non-negative"; err.Error() != want {
		t.Errorf("err = %q, want %q", err, want)
	}
	r.AddError(Result{Level: LevelScript, Message: "bad"})
	if got := r.Err().Error(); !strings.HasSuffix(got, "(and 1 more)") {
		t.Errorf("err = %q, want a count of the remaining errors", got)
	}
}

func TestMergeNil(t *testing.T) {
	r := NewReport()
	r.Merge(nil)
	if !r.Valid {
		t.Error("merging nil should leave the report valid")
	}
}
