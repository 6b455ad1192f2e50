// Package store owns all mutable TripScout state: the trips, the templates,
// the settings, the current trip and the planned/actual display mode.
//
// Every operation runs under one mutex, so callers always read their own
// writes. Operations that change trips, templates or settings write a full
// snapshot through the Persister before returning. Persistence failures are
// logged and remembered (LastSaveError) but never returned: the in-memory
// state stays the source of truth for the session.
package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/pkordes/tripscout/internal/domain"
)

// DefaultNamespace is the storage key the snapshot is saved under.
const DefaultNamespace = "tripscout-storage"

// Persister is the key-value contract the store reads its snapshot from at
// startup and writes it to after every change.
type Persister interface {
	// Load returns the snapshot stored under namespace, or an error wrapping
	// domain.ErrNotFound when nothing has been saved yet.
	Load(ctx context.Context, namespace string) ([]byte, error)

	// Save replaces the snapshot stored under namespace.
	Save(ctx context.Context, namespace string, data []byte) error
}

// Session is the non-persisted view state.
type Session struct {
	CurrentTrip *domain.Trip `json:"currentTrip"`
	ActualMode  bool         `json:"isActualMode"`
}

// Store is the single owner of application state. Create one per process
// with New or Open and share the pointer.
type Store struct {
	persister Persister
	namespace string
	log       *slog.Logger
	now       func() time.Time

	mu          sync.Mutex
	trips       []domain.Trip
	templates   []domain.TripTemplate
	settings    domain.AppSettings
	currentID   string
	actualMode  bool
	lastSaveErr error
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithNamespace overrides DefaultNamespace.
func WithNamespace(ns string) Option {
	return func(s *Store) { s.namespace = ns }
}

// New returns a store with no trips, no templates and default settings.
// Nothing is read from p; use Open to restore a saved snapshot.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		namespace: DefaultNamespace,
		log:       slog.Default(),
		now:       time.Now,
		settings:  domain.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open builds a store and restores the snapshot saved under its namespace.
// A missing snapshot is a first run and yields the default state. A snapshot
// that cannot be read or decoded is returned as an error.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := New(p, opts...)

	data, err := p.Load(ctx, s.namespace)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Info("no saved snapshot, starting fresh", "namespace", s.namespace)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store.Open: load: %w", err)
	}

	st, err := DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	s.trips = st.Trips
	s.templates = st.Templates
	s.settings = st.Settings
	s.log.Debug("snapshot restored",
		"namespace", s.namespace,
		"trips", len(s.trips),
		"templates", len(s.templates),
	)
	return s, nil
}

// ---- trips -----------------------------------------------------------------

// CreateTrip appends a new default trip, makes it the current trip and
// switches to planned mode.
func (s *Store) CreateTrip(ctx context.Context, name string, tripType domain.TripType) domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := domain.NewTrip(name, tripType, s.now())
	s.trips = append(s.trips, trip)
	s.currentID = trip.ID
	s.actualMode = false
	s.saveLocked(ctx)
	return trip.Clone()
}

// UpdateTrip merges u into the trip with the given id and recalculates its
// totals. It reports false, changing nothing, when the id is unknown.
func (s *Store) UpdateTrip(ctx context.Context, id string, u domain.TripUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.trips[i].Apply(u, s.now())
	s.saveLocked(ctx)
	return true
}

// UpdateTripFunc builds an update from the trip's current state and the
// settings, then applies it, all under one lock so no other operation can
// change the trip in between. An error from build is returned as is and
// nothing is written. ok is false, and build is not called, for an unknown id.
func (s *Store) UpdateTripFunc(
	ctx context.Context,
	id string,
	build func(current domain.Trip, settings domain.AppSettings) (domain.TripUpdate, error),
) (trip domain.Trip, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Trip{}, false, nil
	}
	u, err := build(s.trips[i].Clone(), s.settings)
	if err != nil {
		return domain.Trip{}, true, err
	}
	s.trips[i].Apply(u, s.now())
	s.saveLocked(ctx)
	return s.trips[i].Clone(), true, nil
}

// DeleteTrip removes a trip. Deleting the current trip clears the selection.
func (s *Store) DeleteTrip(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.trips = slices.Delete(s.trips, i, i+1)
	if s.currentID == id {
		s.currentID = ""
	}
	s.saveLocked(ctx)
	return true
}

// DuplicateTrip appends a copy of the trip under a new id. The current trip
// is left alone.
func (s *Store) DuplicateTrip(ctx context.Context, id string) (domain.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Trip{}, false
	}
	dup := s.trips[i].Duplicate(s.now())
	s.trips = append(s.trips, dup)
	s.saveLocked(ctx)
	return dup.Clone(), true
}

// LoadTrip selects a trip as current. Active and completed trips open in
// actual mode, planned trips in planned mode.
func (s *Store) LoadTrip(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.currentID = id
	s.actualMode = s.trips[i].WantsActualMode()
	return true
}

// ClearCurrentTrip deselects the current trip and returns to planned mode.
func (s *Store) ClearCurrentTrip() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentID = ""
	s.actualMode = false
}

// UpdatePlannedCosts replaces the planned breakdown of a trip wholesale.
func (s *Store) UpdatePlannedCosts(ctx context.Context, tripID string, costs domain.CostBreakdown) bool {
	return s.UpdateTrip(ctx, tripID, domain.TripUpdate{PlannedCosts: &costs})
}

// UpdateActualCosts replaces the actual breakdown of a trip wholesale.
func (s *Store) UpdateActualCosts(ctx context.Context, tripID string, costs domain.CostBreakdown) bool {
	return s.UpdateTrip(ctx, tripID, domain.TripUpdate{ActualCosts: &costs})
}

// SetActualMode sets the display mode flag.
func (s *Store) SetActualMode(actual bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.actualMode = actual
}

// RecalculateTotals re-derives a trip's totals from its cost breakdowns.
func (s *Store) RecalculateTotals(ctx context.Context, tripID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(tripID)
	if i < 0 {
		return false
	}
	before := s.trips[i]
	s.trips[i].Recalculate()
	after := s.trips[i]
	if before.TotalPlanned != after.TotalPlanned ||
		before.TotalActual != after.TotalActual ||
		before.Variance != after.Variance {
		s.saveLocked(ctx)
	}
	return true
}

// ---- templates -------------------------------------------------------------

// SaveAsTemplate snapshots a trip into a new template.
func (s *Store) SaveAsTemplate(ctx context.Context, tripID, name string) (domain.TripTemplate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(tripID)
	if i < 0 {
		return domain.TripTemplate{}, false
	}
	tpl := domain.NewTemplate(s.trips[i], name, s.now())
	s.templates = append(s.templates, tpl)
	s.saveLocked(ctx)
	return tpl.Clone(), true
}

// CreateTripFromTemplate appends a trip seeded from a template's planned
// costs, makes it current and switches to planned mode.
func (s *Store) CreateTripFromTemplate(ctx context.Context, templateID, name string) (domain.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.templates, func(t domain.TripTemplate) bool { return t.ID == templateID })
	if i < 0 {
		return domain.Trip{}, false
	}
	trip := s.templates[i].Instantiate(name, s.now())
	s.trips = append(s.trips, trip)
	s.currentID = trip.ID
	s.actualMode = false
	s.saveLocked(ctx)
	return trip.Clone(), true
}

// DeleteTemplate removes a template.
func (s *Store) DeleteTemplate(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.templates, func(t domain.TripTemplate) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	s.templates = slices.Delete(s.templates, i, i+1)
	s.saveLocked(ctx)
	return true
}

// ---- settings --------------------------------------------------------------

// UpdateSettings merges u into the settings and returns the result.
func (s *Store) UpdateSettings(ctx context.Context, u domain.SettingsUpdate) domain.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = s.settings.Apply(u)
	s.saveLocked(ctx)
	return s.settings
}

// ---- queries ---------------------------------------------------------------

// Trips returns every trip in insertion order.
func (s *Store) Trips() []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterLocked(func(domain.Trip) bool { return true })
}

// Trip returns the trip with the given id.
func (s *Store) Trip(id string) (domain.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Trip{}, false
	}
	return s.trips[i].Clone(), true
}

// TripsByStatus returns the trips with the given status in insertion order.
func (s *Store) TripsByStatus(status domain.TripStatus) []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterLocked(func(t domain.Trip) bool { return t.Status == status })
}

// UpcomingTrips returns planned trips dated today or later, soonest first.
func (s *Store) UpcomingTrips() []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.todayLocked()
	out := s.filterLocked(func(t domain.Trip) bool { return t.IsUpcoming(today) })
	slices.SortStableFunc(out, func(a, b domain.Trip) int { return cmp.Compare(a.Date, b.Date) })
	return out
}

// PastTrips returns trips dated before today or completed, latest first.
func (s *Store) PastTrips() []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.todayLocked()
	out := s.filterLocked(func(t domain.Trip) bool { return t.IsPast(today) })
	slices.SortStableFunc(out, func(a, b domain.Trip) int { return cmp.Compare(b.Date, a.Date) })
	return out
}

// Templates returns every template in insertion order.
func (s *Store) Templates() []domain.TripTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.TripTemplate, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.Clone()
	}
	return out
}

// Template returns the template with the given id.
func (s *Store) Template(id string) (domain.TripTemplate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.templates {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return domain.TripTemplate{}, false
}

// Settings returns the current settings.
func (s *Store) Settings() domain.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings
}

// CurrentTrip returns the selected trip, if any.
func (s *Store) CurrentTrip() (domain.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentLocked()
}

// IsActualMode reports whether actual costs are being displayed.
func (s *Store) IsActualMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.actualMode
}

// Session returns the current trip and display mode in one consistent read.
func (s *Store) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := Session{ActualMode: s.actualMode}
	if t, ok := s.currentLocked(); ok {
		sess.CurrentTrip = &t
	}
	return sess
}

// State returns a deep copy of the persisted part of the store.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stateLocked()
}

// LastSaveError returns the error of the most recent snapshot write, or nil
// if it succeeded.
func (s *Store) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSaveErr
}

// ---- internals -------------------------------------------------------------

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.trips, func(t domain.Trip) bool { return t.ID == id })
}

// currentLocked resolves the current trip through the collection, so the
// selection can never diverge from the stored trip.
func (s *Store) currentLocked() (domain.Trip, bool) {
	if s.currentID == "" {
		return domain.Trip{}, false
	}
	i := s.indexLocked(s.currentID)
	if i < 0 {
		return domain.Trip{}, false
	}
	return s.trips[i].Clone(), true
}

func (s *Store) filterLocked(keep func(domain.Trip) bool) []domain.Trip {
	out := make([]domain.Trip, 0, len(s.trips))
	for _, t := range s.trips {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (s *Store) todayLocked() string {
	return s.now().UTC().Format(domain.DateLayout)
}

func (s *Store) stateLocked() State {
	st := State{
		Trips:     make([]domain.Trip, len(s.trips)),
		Templates: make([]domain.TripTemplate, len(s.templates)),
		Settings:  s.settings,
	}
	for i, t := range s.trips {
		st.Trips[i] = t.Clone()
	}
	for i, t := range s.templates {
		st.Templates[i] = t.Clone()
	}
	return st
}

// saveLocked writes the snapshot. Failures are logged and kept for
// LastSaveError; the in-memory change stands either way.
func (s *Store) saveLocked(ctx context.Context) {
	if s.persister == nil {
		return
	}
	data, err := EncodeSnapshot(s.stateLocked())
	if err == nil {
		err = s.persister.Save(ctx, s.namespace, data)
	}
	if err != nil {
		s.log.Warn("snapshot not persisted", "namespace", s.namespace, "error", err)
	}
	s.lastSaveErr = err
}
