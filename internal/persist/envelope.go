package persist

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pedrohrf/ironlog/internal/models"
)

// SchemaVersion tags every persisted snapshot. A mismatched version is
// treated as "no state" (there is no partial-field migration), which
// routes the load through the legacy path or the initial state.
const SchemaVersion = "2"

// Envelope is the persisted-state wrapper.
type Envelope struct {
	Version   string              `json:"version"`
	Data      models.WorkoutState `json:"data"`
	LastSaved time.Time           `json:"lastSaved"`
}

// EncodeEnvelope serializes a state into the versioned envelope.
func EncodeEnvelope(state models.WorkoutState, now time.Time) ([]byte, error) {
	payload, err := json.Marshal(Envelope{
		Version:   SchemaVersion,
		Data:      state,
		LastSaved: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize state: %w", err)
	}
	return payload, nil
}

// DecodeEnvelope parses a payload and checks its schema version. The
// bool is false when the payload is from another schema generation.
func DecodeEnvelope(payload []byte) (Envelope, bool, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, false, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if env.Version != SchemaVersion {
		return env, false, nil
	}
	return env, true, nil
}
