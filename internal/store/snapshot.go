package store

import (
	"encoding/json"
	"fmt"

	"github.com/pkordes/tripscout/internal/domain"
)

// snapshotVersion is written into every envelope. Version 0 is the layout the
// browser client has always persisted, so blobs exported from it load as-is.
const snapshotVersion = 0

// State is the persisted part of the store: trips, templates and settings.
// The current trip and the actual-mode flag are session-only.
type State struct {
	Trips     []domain.Trip         `json:"trips"`
	Templates []domain.TripTemplate `json:"templates"`
	Settings  domain.AppSettings    `json:"settings"`
}

type envelope struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// EncodeSnapshot serializes st into the versioned snapshot envelope.
func EncodeSnapshot(st State) ([]byte, error) {
	if st.Trips == nil {
		st.Trips = []domain.Trip{}
	}
	if st.Templates == nil {
		st.Templates = []domain.TripTemplate{}
	}
	b, err := json.Marshal(envelope{State: st, Version: snapshotVersion})
	if err != nil {
		return nil, fmt.Errorf("store.EncodeSnapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses a snapshot envelope. Settings fields missing from the
// snapshot keep their defaults. Derived trip totals are recomputed on load so
// a hand-edited snapshot cannot carry totals that disagree with its costs.
func DecodeSnapshot(data []byte) (State, error) {
	env := envelope{State: State{Settings: domain.DefaultSettings()}}
	if err := json.Unmarshal(data, &env); err != nil {
		return State{}, fmt.Errorf("store.DecodeSnapshot: %w", err)
	}
	if env.Version > snapshotVersion {
		return State{}, fmt.Errorf("store.DecodeSnapshot: unsupported snapshot version %d", env.Version)
	}
	for i := range env.State.Trips {
		env.State.Trips[i].Recalculate()
	}
	return env.State, nil
}
