package models

// ExerciseDefinition is a static catalog entry. The catalog is
// externally maintained reference data; the core only resolves IDs to
// names and muscle groups and never mutates it.
type ExerciseDefinition struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	PrimaryMuscleGroup string `json:"primary_muscle_group"`
	Equipment          string `json:"equipment"`
}
