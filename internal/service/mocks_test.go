package service_test

import (
	"context"

	"github.com/pkordes/tripscout/internal/domain"
	"github.com/pkordes/tripscout/internal/service"
	"github.com/pkordes/tripscout/internal/store"
)

// ---- mock stores -----------------------------------------------------------
// Unset function fields panic when called, so a test fails loudly if the
// service touches the store in a path where it should not.

// mockTripStore is a hand-written test double for service.TripStore.
type mockTripStore struct {
	createTrip         func(ctx context.Context, name string, t domain.TripType) domain.Trip
	updateTrip         func(ctx context.Context, id string, u domain.TripUpdate) bool
	deleteTrip         func(ctx context.Context, id string) bool
	duplicateTrip      func(ctx context.Context, id string) (domain.Trip, bool)
	updateTripFunc     func(ctx context.Context, id string, build func(domain.Trip, domain.AppSettings) (domain.TripUpdate, error)) (domain.Trip, bool, error)
	recalculateTotals  func(ctx context.Context, id string) bool
	loadTrip           func(id string) bool
	setActualMode      func(actual bool)
	trips              func() []domain.Trip
	trip               func(id string) (domain.Trip, bool)
	tripsByStatus      func(s domain.TripStatus) []domain.Trip
	upcomingTrips      func() []domain.Trip
	pastTrips          func() []domain.Trip
	currentTrip        func() (domain.Trip, bool)
	isActualMode       func() bool
	settings           func() domain.AppSettings
}

func (m *mockTripStore) CreateTrip(ctx context.Context, name string, t domain.TripType) domain.Trip {
	return m.createTrip(ctx, name, t)
}
func (m *mockTripStore) UpdateTrip(ctx context.Context, id string, u domain.TripUpdate) bool {
	return m.updateTrip(ctx, id, u)
}
func (m *mockTripStore) DeleteTrip(ctx context.Context, id string) bool { return m.deleteTrip(ctx, id) }
func (m *mockTripStore) DuplicateTrip(ctx context.Context, id string) (domain.Trip, bool) {
	return m.duplicateTrip(ctx, id)
}
func (m *mockTripStore) UpdateTripFunc(
	ctx context.Context,
	id string,
	build func(domain.Trip, domain.AppSettings) (domain.TripUpdate, error),
) (domain.Trip, bool, error) {
	return m.updateTripFunc(ctx, id, build)
}
func (m *mockTripStore) RecalculateTotals(ctx context.Context, id string) bool {
	return m.recalculateTotals(ctx, id)
}
func (m *mockTripStore) LoadTrip(id string) bool { return m.loadTrip(id) }
func (m *mockTripStore) SetActualMode(actual bool) { m.setActualMode(actual) }
func (m *mockTripStore) Trips() []domain.Trip { return m.trips() }
func (m *mockTripStore) Trip(id string) (domain.Trip, bool) { return m.trip(id) }
func (m *mockTripStore) TripsByStatus(s domain.TripStatus) []domain.Trip { return m.tripsByStatus(s) }
func (m *mockTripStore) UpcomingTrips() []domain.Trip { return m.upcomingTrips() }
func (m *mockTripStore) PastTrips() []domain.Trip { return m.pastTrips() }
func (m *mockTripStore) CurrentTrip() (domain.Trip, bool) { return m.currentTrip() }
func (m *mockTripStore) IsActualMode() bool { return m.isActualMode() }
func (m *mockTripStore) Settings() domain.AppSettings {
	if m.settings == nil {
		return domain.DefaultSettings()
	}
	return m.settings()
}

// mockTemplateStore is a hand-written test double for service.TemplateStore.
type mockTemplateStore struct {
	saveAsTemplate         func(ctx context.Context, tripID, name string) (domain.TripTemplate, bool)
	createTripFromTemplate func(ctx context.Context, templateID, name string) (domain.Trip, bool)
	deleteTemplate         func(ctx context.Context, id string) bool
	templates              func() []domain.TripTemplate
	template               func(id string) (domain.TripTemplate, bool)
}

func (m *mockTemplateStore) SaveAsTemplate(ctx context.Context, tripID, name string) (domain.TripTemplate, bool) {
	return m.saveAsTemplate(ctx, tripID, name)
}
func (m *mockTemplateStore) CreateTripFromTemplate(ctx context.Context, templateID, name string) (domain.Trip, bool) {
	return m.createTripFromTemplate(ctx, templateID, name)
}
func (m *mockTemplateStore) DeleteTemplate(ctx context.Context, id string) bool {
	return m.deleteTemplate(ctx, id)
}
func (m *mockTemplateStore) Templates() []domain.TripTemplate { return m.templates() }
func (m *mockTemplateStore) Template(id string) (domain.TripTemplate, bool) {
	return m.template(id)
}

// mockSettingsStore is a hand-written test double for service.SettingsStore.
type mockSettingsStore struct {
	updateSettings func(ctx context.Context, u domain.SettingsUpdate) domain.AppSettings
	settings       func() domain.AppSettings
}

func (m *mockSettingsStore) UpdateSettings(ctx context.Context, u domain.SettingsUpdate) domain.AppSettings {
	return m.updateSettings(ctx, u)
}
func (m *mockSettingsStore) Settings() domain.AppSettings { return m.settings() }

// compile-time checks: mocks must satisfy the service interfaces.
var (
	_ service.TripStore     = (*mockTripStore)(nil)
	_ service.TemplateStore = (*mockTemplateStore)(nil)
	_ service.SettingsStore = (*mockSettingsStore)(nil)
)

// ---- helpers ---------------------------------------------------------------

func ptr[T any](v T) *T { return &v }

func newRealStore() *store.Store {
	return store.New(nil)
}

// buildOnTrip returns an updateTripFunc that runs build against an empty trip
// with the given settings and hands the resulting update to keep.
func buildOnTrip(settings domain.AppSettings, keep func(domain.TripUpdate)) func(context.Context, string, func(domain.Trip, domain.AppSettings) (domain.TripUpdate, error)) (domain.Trip, bool, error) {
	return func(_ context.Context, id string, build func(domain.Trip, domain.AppSettings) (domain.TripUpdate, error)) (domain.Trip, bool, error) {
		u, err := build(domain.Trip{ID: id}, settings)
		if err != nil {
			return domain.Trip{}, true, err
		}
		if keep != nil {
			keep(u)
		}
		return domain.Trip{ID: id}, true, nil
	}
}
