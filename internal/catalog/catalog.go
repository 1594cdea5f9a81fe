// Package catalog exposes the static exercise-definition reference
// data. The catalog is read-only: the tracker resolves definition IDs
// to display names and muscle groups but never writes back.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pedrohrf/ironlog/internal/models"
)

//go:embed exercises.json
var exercisesJSON []byte

type Catalog struct {
	byID  map[string]models.ExerciseDefinition
	order []string
}

// Load parses the embedded catalog. It only fails if the embedded data
// is malformed, which is a build problem rather than a runtime one.
func Load() (*Catalog, error) {
	var defs []models.ExerciseDefinition
	if err := json.Unmarshal(exercisesJSON, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse exercise catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]models.ExerciseDefinition, len(defs))}
	for _, d := range defs {
		c.byID[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	return c, nil
}

// Lookup resolves a definition ID. Unknown IDs resolve to a
// placeholder definition so render paths never have to handle an
// error; logged data may reference definitions removed from the
// catalog by a later release.
func (c *Catalog) Lookup(id string) models.ExerciseDefinition {
	if d, ok := c.byID[id]; ok {
		return d
	}
	return models.ExerciseDefinition{
		ID:                 id,
		Name:               "Exercício desconhecido",
		PrimaryMuscleGroup: "—",
	}
}

// Has reports whether the catalog contains the given definition ID.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns every definition in catalog order.
func (c *Catalog) All() []models.ExerciseDefinition {
	defs := make([]models.ExerciseDefinition, 0, len(c.order))
	for _, id := range c.order {
		defs = append(defs, c.byID[id])
	}
	return defs
}

// Search returns definitions whose name contains the query,
// case-insensitively, sorted by name.
func (c *Catalog) Search(query string) []models.ExerciseDefinition {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.All()
	}

	var out []models.ExerciseDefinition
	for _, d := range c.byID {
		if strings.Contains(strings.ToLower(d.Name), query) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
