// Package service contains the input validation and not-found handling that
// sits between the HTTP handlers and the store. The store itself never fails;
// services turn its "nothing happened" results into domain.ErrNotFound and
// reject bad input with domain.ErrValidation before the store sees it.
package service

import (
	"context"

	"github.com/pkordes/tripscout/internal/domain"
	"github.com/pkordes/tripscout/internal/store"
)

// TripStore is the part of *store.Store the trip service needs.
type TripStore interface {
	CreateTrip(ctx context.Context, name string, tripType domain.TripType) domain.Trip
	UpdateTrip(ctx context.Context, id string, u domain.TripUpdate) bool
	DeleteTrip(ctx context.Context, id string) bool
	DuplicateTrip(ctx context.Context, id string) (domain.Trip, bool)
	UpdateTripFunc(
		ctx context.Context,
		id string,
		build func(current domain.Trip, settings domain.AppSettings) (domain.TripUpdate, error),
	) (domain.Trip, bool, error)
	RecalculateTotals(ctx context.Context, id string) bool
	LoadTrip(id string) bool
	SetActualMode(actual bool)

	Trips() []domain.Trip
	Trip(id string) (domain.Trip, bool)
	TripsByStatus(status domain.TripStatus) []domain.Trip
	UpcomingTrips() []domain.Trip
	PastTrips() []domain.Trip
	CurrentTrip() (domain.Trip, bool)
	IsActualMode() bool
	Settings() domain.AppSettings
}

// TemplateStore is the part of *store.Store the template service needs.
type TemplateStore interface {
	SaveAsTemplate(ctx context.Context, tripID, name string) (domain.TripTemplate, bool)
	CreateTripFromTemplate(ctx context.Context, templateID, name string) (domain.Trip, bool)
	DeleteTemplate(ctx context.Context, id string) bool
	Templates() []domain.TripTemplate
	Template(id string) (domain.TripTemplate, bool)
}

// SettingsStore is the part of *store.Store the settings service needs.
type SettingsStore interface {
	UpdateSettings(ctx context.Context, u domain.SettingsUpdate) domain.AppSettings
	Settings() domain.AppSettings
}

// SessionStore is the part of *store.Store the session service needs.
type SessionStore interface {
	LoadTrip(id string) bool
	ClearCurrentTrip()
	SetActualMode(actual bool)
	Session() store.Session
}

// ExportStore is the part of *store.Store the export service needs.
type ExportStore interface {
	Trips() []domain.Trip
	Settings() domain.AppSettings
}

var (
	_ TripStore     = (*store.Store)(nil)
	_ TemplateStore = (*store.Store)(nil)
	_ SettingsStore = (*store.Store)(nil)
	_ SessionStore  = (*store.Store)(nil)
	_ ExportStore   = (*store.Store)(nil)
)
