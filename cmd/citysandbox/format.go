package main

import (
	"fmt"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/sandbox"
	"github.com/sivasanjeevs/3D-City-Builder/pkg/validation"
)

// printValidationReport prints one section per stage that produced
// findings, then the overall result.
func printValidationReport(r *validation.Report) {
	for _, level := range r.Levels() {
		sub := r.Filter(level)
		fmt.Printf("== %s (%s) ==\n", level, sub.Summary)
		printFindings(sub)
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printFindings(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  %s\n", e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			if e.ConflictWith != "" {
				fmt.Printf("    conflicts with: %s\n", e.ConflictWith)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  %s\n", w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  %s\n", i.Message)
		}
		fmt.Println()
	}
}

func printOutcome(o *sandbox.Outcome) {
	fmt.Println()
	fmt.Println("Gestures")
	fmt.Println("--------")
	fmt.Printf("  %-15s %4d\n", "placed", o.Placed)
	fmt.Printf("  %-15s %4d\n", "rejected", o.Rejected)
	fmt.Printf("  %-15s %4d\n", "removed", o.Removed)
	fmt.Printf("  %-15s %4d\n", "roads", o.Roads)
	fmt.Printf("  %-15s %4d\n", "intersections", o.Intersections)
	if o.Ignored > 0 {
		fmt.Printf("  %-15s %4d\n", "ignored", o.Ignored)
	}
}
