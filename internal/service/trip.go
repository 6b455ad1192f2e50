package service

import (
	"context"
	"fmt"

	"github.com/pkordes/tripscout/internal/domain"
)

// NewTripInput is everything a client may set when creating a trip.
// Only Name and Type are required.
type NewTripInput struct {
	Name             string
	Type             domain.TripType
	Date             *string
	NumberOfPeople   *int
	Location         *domain.Location
	CustomCategories []string
	PlannedCosts     *domain.CostBreakdown
}

// SummaryMode selects which side of the budget a summary reports.
type SummaryMode string

const (
	// SummaryModeAuto follows the session for the current trip and the
	// trip's status otherwise.
	SummaryModeAuto    SummaryMode = ""
	SummaryModePlanned SummaryMode = "planned"
	SummaryModeActual  SummaryMode = "actual"
)

// TripService implements validation and not-found handling for trips.
type TripService struct {
	store TripStore
}

// NewTripService constructs a TripService over the given store.
func NewTripService(s TripStore) *TripService {
	return &TripService{store: s}
}

// Create validates in and adds a new trip. The new trip becomes the current
// trip in planned mode.
func (s *TripService) Create(ctx context.Context, in NewTripInput) (domain.Trip, error) {
	name, err := validateName("name", in.Name)
	if err != nil {
		return domain.Trip{}, err
	}
	if err := validateTripType(in.Type); err != nil {
		return domain.Trip{}, err
	}

	u := domain.TripUpdate{
		Date:           in.Date,
		NumberOfPeople: in.NumberOfPeople,
		Location:       in.Location,
		PlannedCosts:   in.PlannedCosts,
	}
	if len(in.CustomCategories) > 0 {
		u.CustomCategories = &in.CustomCategories
	}
	u, err = prepareUpdate(u, nil, s.store.Settings())
	if err != nil {
		return domain.Trip{}, err
	}

	trip := s.store.CreateTrip(ctx, name, in.Type)
	if !u.IsEmpty() {
		s.store.UpdateTrip(ctx, trip.ID, u)
	}
	return s.Get(ctx, trip.ID)
}

// Get returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) Get(_ context.Context, id string) (domain.Trip, error) {
	trip, ok := s.store.Trip(id)
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", domain.ErrNotFound)
	}
	return trip, nil
}

// List returns a page of trips in insertion order, optionally filtered by
// status, and the total number of matching trips.
func (s *TripService) List(_ context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int, error) {
	var trips []domain.Trip
	if status != nil {
		if err := validateStatus(*status); err != nil {
			return nil, 0, err
		}
		trips = s.store.TripsByStatus(*status)
	} else {
		trips = s.store.Trips()
	}
	page, total := domain.Paginate(trips, p)
	return page, total, nil
}

// Upcoming returns planned trips dated today or later, soonest first.
func (s *TripService) Upcoming(_ context.Context) []domain.Trip {
	return nonNil(s.store.UpcomingTrips())
}

// Past returns trips dated before today or completed, latest first.
func (s *TripService) Past(_ context.Context) []domain.Trip {
	return nonNil(s.store.PastTrips())
}

// Update validates and applies a partial update.
// Changing the custom category list drops amounts recorded under names that
// are no longer declared. Validation and the write happen under one store lock.
func (s *TripService) Update(ctx context.Context, id string, u domain.TripUpdate) (domain.Trip, error) {
	if u.Name != nil {
		name, err := validateName("name", *u.Name)
		if err != nil {
			return domain.Trip{}, err
		}
		u.Name = &name
	}
	return s.apply(ctx, "Update", id, u)
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id string) error {
	if !s.store.DeleteTrip(ctx, id) {
		return fmt.Errorf("service.TripService.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// Duplicate copies a trip under a new ID.
func (s *TripService) Duplicate(ctx context.Context, id string) (domain.Trip, error) {
	dup, ok := s.store.DuplicateTrip(ctx, id)
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.TripService.Duplicate: %w", domain.ErrNotFound)
	}
	return dup, nil
}

// Start marks a trip active, selects it and switches to actual mode.
func (s *TripService) Start(ctx context.Context, id string) (domain.Trip, error) {
	active := domain.StatusActive
	if !s.store.UpdateTrip(ctx, id, domain.TripUpdate{Status: &active}) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Start: %w", domain.ErrNotFound)
	}
	s.store.LoadTrip(id)
	s.store.SetActualMode(true)
	return s.Get(ctx, id)
}

// Complete marks a trip completed.
func (s *TripService) Complete(ctx context.Context, id string) (domain.Trip, error) {
	completed := domain.StatusCompleted
	if !s.store.UpdateTrip(ctx, id, domain.TripUpdate{Status: &completed}) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Complete: %w", domain.ErrNotFound)
	}
	return s.Get(ctx, id)
}

// Recalculate re-derives a trip's totals.
func (s *TripService) Recalculate(ctx context.Context, id string) (domain.Trip, error) {
	if !s.store.RecalculateTotals(ctx, id) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Recalculate: %w", domain.ErrNotFound)
	}
	return s.Get(ctx, id)
}

// SetPlannedCosts replaces a trip's planned breakdown.
func (s *TripService) SetPlannedCosts(ctx context.Context, id string, costs domain.CostBreakdown) (domain.Trip, error) {
	return s.apply(ctx, "SetPlannedCosts", id, domain.TripUpdate{PlannedCosts: &costs})
}

// SetActualCosts replaces a trip's actual breakdown.
func (s *TripService) SetActualCosts(ctx context.Context, id string, costs domain.CostBreakdown) (domain.Trip, error) {
	return s.apply(ctx, "SetActualCosts", id, domain.TripUpdate{ActualCosts: &costs})
}

// apply validates u against the trip's current state and writes it.
func (s *TripService) apply(ctx context.Context, op, id string, u domain.TripUpdate) (domain.Trip, error) {
	trip, ok, err := s.store.UpdateTripFunc(ctx, id, func(current domain.Trip, settings domain.AppSettings) (domain.TripUpdate, error) {
		return prepareUpdate(u, &current, settings)
	})
	if err != nil {
		return domain.Trip{}, err
	}
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, domain.ErrNotFound)
	}
	return trip, nil
}

// Summary returns the rounded budget summary of a trip.
func (s *TripService) Summary(_ context.Context, id string, mode SummaryMode) (domain.BudgetSummary, error) {
	trip, ok := s.store.Trip(id)
	if !ok {
		return domain.BudgetSummary{}, fmt.Errorf("service.TripService.Summary: %w", domain.ErrNotFound)
	}

	var actual bool
	switch mode {
	case SummaryModePlanned:
	case SummaryModeActual:
		actual = true
	case SummaryModeAuto:
		if cur, ok := s.store.CurrentTrip(); ok && cur.ID == id {
			actual = s.store.IsActualMode()
		} else {
			actual = trip.WantsActualMode()
		}
	default:
		return domain.BudgetSummary{}, fmt.Errorf("%w: unknown summary mode %q", domain.ErrValidation, mode)
	}
	return domain.Summarize(trip, s.store.Settings(), actual), nil
}

// prepareUpdate validates every field u sets and returns the update to
// apply: custom names trimmed, custom amounts filed under their declared
// spelling, missing fuel efficiency taken from settings. current is nil on
// create.
func prepareUpdate(u domain.TripUpdate, current *domain.Trip, settings domain.AppSettings) (domain.TripUpdate, error) {
	if u.Date != nil {
		if err := validateDate(*u.Date); err != nil {
			return u, err
		}
	}
	if u.Type != nil {
		if err := validateTripType(*u.Type); err != nil {
			return u, err
		}
	}
	if u.Status != nil {
		if err := validateStatus(*u.Status); err != nil {
			return u, err
		}
	}
	if u.NumberOfPeople != nil {
		if err := validatePeople(*u.NumberOfPeople); err != nil {
			return u, err
		}
	}
	if u.Location != nil {
		if err := validateLocation(*u.Location); err != nil {
			return u, err
		}
	}

	var declared []string
	if current != nil {
		declared = current.CustomCategories
	}
	if u.CustomCategories != nil {
		names, err := cleanCustomCategories(*u.CustomCategories)
		if err != nil {
			return u, err
		}
		u.CustomCategories = &names
		declared = names
	}

	if u.PlannedCosts != nil {
		c, err := canonicalCosts(*u.PlannedCosts, declared)
		if err != nil {
			return u, err
		}
		c = withDefaultEfficiency(c, settings)
		u.PlannedCosts = &c
	} else if current != nil && u.CustomCategories != nil {
		if c, changed := reconcileCustom(current.PlannedCosts, declared); changed {
			u.PlannedCosts = &c
		}
	}
	if u.ActualCosts != nil {
		c, err := canonicalCosts(*u.ActualCosts, declared)
		if err != nil {
			return u, err
		}
		c = withDefaultEfficiency(c, settings)
		u.ActualCosts = &c
	} else if current != nil && u.CustomCategories != nil {
		if c, changed := reconcileCustom(current.ActualCosts, declared); changed {
			u.ActualCosts = &c
		}
	}
	return u, nil
}

func nonNil(trips []domain.Trip) []domain.Trip {
	if trips == nil {
		return []domain.Trip{}
	}
	return trips
}
