package scene

import (
	"fmt"

	"github.com/sivasanjeevs/3D-City-Builder/pkg/validation"
)

// ValidateDocument performs structural validation on an exported scene.
// It checks entity integrity, group index consistency, parent links and
// bounds enclosure.
func ValidateDocument(doc *Document) *validation.Report {
	r := validation.NewReport()

	if doc == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelScene,
			Message: "scene document is nil",
		})
		return r
	}

	validateEntityIDs(doc, r)
	validateGroupIndices(doc, r)
	validateGroupMembership(doc, r)
	validateParents(doc, r)
	validateBoundsEnclosure(doc, r)
	validateEntityDimensions(doc, r)

	return r
}

func validateEntityIDs(doc *Document, r *validation.Report) {
	seen := make(map[string]int, len(doc.Entities))

	for i, e := range doc.Entities {
		if e.ID == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity at index %d has empty ID", i),
				Path:        fmt.Sprintf("entities[%d].id", i),
				ActualValue: "",
				Expected:    "non-empty string",
			})
			continue
		}
		if prev, exists := seen[e.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("duplicate entity ID %q at indices %d and %d", e.ID, prev, i),
				Path:        fmt.Sprintf("entities[%d].id", i),
				ActualValue: e.ID,
			})
		}
		seen[e.ID] = i
	}
}

func validateGroupIndices(doc *Document, r *validation.Report) {
	entityIDs := make(map[string]bool, len(doc.Entities))
	for _, e := range doc.Entities {
		entityIDs[e.ID] = true
	}

	checkGroup := func(groupType, groupName string, ids []string) {
		for _, id := range ids {
			if !entityIDs[id] {
				r.AddError(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("group %s.%s references non-existent entity %q", groupType, groupName, id),
					Path:        fmt.Sprintf("groups.%s.%s", groupType, groupName),
					ActualValue: id,
					Expected:    "existing entity ID",
				})
			}
		}
	}

	for name, ids := range doc.Groups.EntityTypes {
		checkGroup("entity_types", string(name), ids)
	}
	for name, ids := range doc.Groups.Kinds {
		checkGroup("kinds", name, ids)
	}
	checkGroup("top_level", "", doc.Groups.TopLevel)
}

func validateGroupMembership(doc *Document, r *validation.Report) {
	typeMembers := make(map[EntityType]map[string]bool)
	for et, ids := range doc.Groups.EntityTypes {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		typeMembers[et] = m
	}

	kindMembers := make(map[string]map[string]bool)
	for kind, ids := range doc.Groups.Kinds {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		kindMembers[kind] = m
	}

	for _, e := range doc.Entities {
		if e.ID == "" {
			continue
		}

		if tm, ok := typeMembers[e.Type]; !ok || !tm[e.ID] {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity %q has type %q but is not in entity_types group", e.ID, e.Type),
				Path:        fmt.Sprintf("groups.entity_types.%s", e.Type),
				ActualValue: e.ID,
			})
		}

		if e.Kind != "" {
			if km, ok := kindMembers[e.Kind]; !ok || !km[e.ID] {
				r.AddError(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("entity %q has kind %q but is not in kinds group", e.ID, e.Kind),
					Path:        fmt.Sprintf("groups.kinds.%s", e.Kind),
					ActualValue: e.ID,
				})
			}
		}
	}
}

func validateParents(doc *Document, r *validation.Report) {
	byID := make(map[string]Entity, len(doc.Entities))
	for _, e := range doc.Entities {
		byID[e.ID] = e
	}

	for _, e := range doc.Entities {
		if e.Parent == "" {
			continue
		}
		parent, ok := byID[e.Parent]
		if !ok {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity %q references missing parent %q", e.ID, e.Parent),
				Path:        fmt.Sprintf("entities.%s.parent", e.ID),
				ActualValue: e.Parent,
			})
			continue
		}
		listed := false
		for _, c := range parent.Children {
			if c == e.ID {
				listed = true
				break
			}
		}
		if !listed {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity %q is not listed among the children of %q", e.ID, e.Parent),
				Path:        fmt.Sprintf("entities.%s.children", e.Parent),
				ActualValue: e.ID,
			})
		}
	}
}

func validateBoundsEnclosure(doc *Document, r *validation.Report) {
	bounds := doc.Metadata.Bounds
	tolerance := 1.0

	for _, e := range doc.Entities {
		halfX := e.Dimensions.X / 2
		halfZ := e.Dimensions.Z / 2

		if e.Position.X-halfX < bounds.Min.X-tolerance || e.Position.X+halfX > bounds.Max.X+tolerance {
			r.AddWarning(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity %q X extent [%.1f, %.1f] outside scene bounds [%.1f, %.1f]", e.ID, e.Position.X-halfX, e.Position.X+halfX, bounds.Min.X, bounds.Max.X),
				Path:        "metadata.bounds",
				ActualValue: e.Position.X,
			})
			break
		}
		if e.Position.Z-halfZ < bounds.Min.Z-tolerance || e.Position.Z+halfZ > bounds.Max.Z+tolerance {
			r.AddWarning(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity %q Z extent [%.1f, %.1f] outside scene bounds [%.1f, %.1f]", e.ID, e.Position.Z-halfZ, e.Position.Z+halfZ, bounds.Min.Z, bounds.Max.Z),
				Path:        "metadata.bounds",
				ActualValue: e.Position.Z,
			})
			break
		}
	}
}

func validateEntityDimensions(doc *Document, r *validation.Report) {
	for _, e := range doc.Entities {
		if e.Dimensions.X < 0 || e.Dimensions.Y < 0 || e.Dimensions.Z < 0 {
			r.AddWarning(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity %q has negative dimension (%.2f, %.2f, %.2f)", e.ID, e.Dimensions.X, e.Dimensions.Y, e.Dimensions.Z),
				Path:        fmt.Sprintf("entities.%s.dimensions", e.ID),
				ActualValue: fmt.Sprintf("%.2f x %.2f x %.2f", e.Dimensions.X, e.Dimensions.Y, e.Dimensions.Z),
				Expected:    "all dimensions >= 0",
			})
		}
	}
}
