package domain

import (
	"slices"
	"time"
)

// TripTemplate is a reusable snapshot of a trip's type, location and planned
// costs. Templates are never mutated after creation, only deleted.
type TripTemplate struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Type             TripType      `json:"type"`
	Location         *Location     `json:"location,omitempty"`
	PlannedCosts     CostBreakdown `json:"plannedCosts"`
	CustomCategories []string      `json:"customCategories,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// NewTemplate snapshots trip into a template called name.
func NewTemplate(trip Trip, name string, now time.Time) TripTemplate {
	tpl := TripTemplate{
		ID:           NewID(),
		Name:         name,
		Type:         trip.Type,
		Location:     trip.Location.Clone(),
		PlannedCosts: trip.PlannedCosts.Clone(),
		CreatedAt:    now.UTC(),
	}
	if len(trip.CustomCategories) > 0 {
		tpl.CustomCategories = slices.Clone(trip.CustomCategories)
	}
	return tpl
}

// Instantiate builds a new planned trip from the template: today's date, the
// template's planned costs, empty actual costs and one person. Totals are
// computed, so Variance equals TotalPlanned.
func (tpl TripTemplate) Instantiate(name string, now time.Time) Trip {
	trip := NewTrip(name, tpl.Type, now)
	trip.PlannedCosts = tpl.PlannedCosts.Clone()
	trip.Location = tpl.Location.Clone()
	if len(tpl.CustomCategories) > 0 {
		trip.CustomCategories = slices.Clone(tpl.CustomCategories)
	}
	trip.Recalculate()
	return trip
}

// Clone returns a deep copy of tpl.
func (tpl TripTemplate) Clone() TripTemplate {
	out := tpl
	out.Location = tpl.Location.Clone()
	out.PlannedCosts = tpl.PlannedCosts.Clone()
	if len(tpl.CustomCategories) > 0 {
		out.CustomCategories = slices.Clone(tpl.CustomCategories)
	} else {
		out.CustomCategories = nil
	}
	return out
}
