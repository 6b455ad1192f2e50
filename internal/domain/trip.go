// Package domain contains the core data types and pure computations for the
// TripScout budgeting application: trips, templates, settings, the closed set
// of cost categories, and the fuel/total arithmetic.
// Nothing in this package performs I/O or returns errors from a computation;
// missing or invalid numbers degrade to 0.
package domain

import (
	"slices"
	"time"
)

// DateLayout is the ISO calendar date form used for Trip.Date.
const DateLayout = "2006-01-02"

// CopySuffix is appended to the name of a duplicated trip.
const CopySuffix = " (Copy)"

// TripType selects which cost categories are presented for a trip.
type TripType string

const (
	TripTypeDayTrip   TripType = "day-trip"
	TripTypeRoadTrip  TripType = "road-trip"
	TripTypeOvernight TripType = "overnight"
	TripTypeCamping   TripType = "camping"
	TripTypeCustom    TripType = "custom"
)

// Valid reports whether t is one of the five known trip types.
func (t TripType) Valid() bool {
	_, ok := tripTypeConfigs[t]
	return ok
}

// TripStatus is the lifecycle state of a trip.
// The usual progression is planned → active → completed, driven by the user.
// The model does not reject other transitions.
type TripStatus string

const (
	StatusPlanned   TripStatus = "planned"
	StatusActive    TripStatus = "active"
	StatusCompleted TripStatus = "completed"
)

// Valid reports whether s is a known status.
func (s TripStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Location is where a trip goes. Coordinates are optional.
type Location struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

// Clone returns a deep copy of l (nil-safe).
func (l *Location) Clone() *Location {
	if l == nil {
		return nil
	}
	out := Location{Name: l.Name}
	if l.Lat != nil {
		v := *l.Lat
		out.Lat = &v
	}
	if l.Lon != nil {
		v := *l.Lon
		out.Lon = &v
	}
	return &out
}

// Trip is a single planned or completed travel event with its own budget.
//
// TotalPlanned, TotalActual and Variance are derived from the two cost
// breakdowns. They must only be written by Recalculate.
type Trip struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Date             string        `json:"date"` // YYYY-MM-DD
	Type             TripType      `json:"type"`
	Status           TripStatus    `json:"status"`
	PlannedCosts     CostBreakdown `json:"plannedCosts"`
	ActualCosts      CostBreakdown `json:"actualCosts"`
	TotalPlanned     float64       `json:"totalPlanned"`
	TotalActual      float64       `json:"totalActual"`
	Variance         float64       `json:"variance"`
	NumberOfPeople   int           `json:"numberOfPeople"`
	Location         *Location     `json:"location,omitempty"`
	CustomCategories []string      `json:"customCategories,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// NewTrip builds a trip in its default state: fresh id, today's date,
// status planned, empty costs, zero totals and one person.
func NewTrip(name string, tripType TripType, now time.Time) Trip {
	now = now.UTC()
	return Trip{
		ID:             NewID(),
		Name:           name,
		Date:           now.Format(DateLayout),
		Type:           tripType,
		Status:         StatusPlanned,
		NumberOfPeople: 1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Recalculate re-derives TotalPlanned, TotalActual and Variance from the cost
// breakdowns. Calling it twice without a cost change is a no-op.
func (t *Trip) Recalculate() {
	t.TotalPlanned = TotalCost(t.PlannedCosts)
	t.TotalActual = TotalCost(t.ActualCosts)
	t.Variance = t.TotalPlanned - t.TotalActual
}

// Duplicate returns a full copy of t under a new id with the copy suffix,
// status reset to planned and fresh timestamps.
func (t Trip) Duplicate(now time.Time) Trip {
	now = now.UTC()
	dup := t.Clone()
	dup.ID = NewID()
	dup.Name = t.Name + CopySuffix
	dup.Status = StatusPlanned
	dup.CreatedAt = now
	dup.UpdatedAt = now
	return dup
}

// Clone returns a deep copy of t that shares no maps, slices or pointers.
func (t Trip) Clone() Trip {
	out := t
	out.PlannedCosts = t.PlannedCosts.Clone()
	out.ActualCosts = t.ActualCosts.Clone()
	out.Location = t.Location.Clone()
	if len(t.CustomCategories) > 0 {
		out.CustomCategories = slices.Clone(t.CustomCategories)
	} else {
		out.CustomCategories = nil
	}
	return out
}

// IsUpcoming reports whether the trip is still planned and dated today or later.
func (t Trip) IsUpcoming(today string) bool {
	return t.Status == StatusPlanned && t.Date >= today
}

// IsPast reports whether the trip is dated before today or already completed.
func (t Trip) IsPast(today string) bool {
	return t.Date < today || t.Status == StatusCompleted
}

// WantsActualMode reports whether the trip should open on its actual costs.
func (t Trip) WantsActualMode() bool {
	return t.Status == StatusActive || t.Status == StatusCompleted
}

// TripUpdate is a partial update of a trip. Nil fields are left untouched.
// The derived totals and the identity fields are not part of it on purpose.
type TripUpdate struct {
	Name             *string
	Date             *string
	Type             *TripType
	Status           *TripStatus
	NumberOfPeople   *int
	Location         *Location
	ClearLocation    bool
	CustomCategories *[]string
	PlannedCosts     *CostBreakdown
	ActualCosts      *CostBreakdown
}

// IsEmpty reports whether the update changes nothing.
func (u TripUpdate) IsEmpty() bool {
	return u.Name == nil && u.Date == nil && u.Type == nil && u.Status == nil &&
		u.NumberOfPeople == nil && u.Location == nil && !u.ClearLocation &&
		u.CustomCategories == nil && u.PlannedCosts == nil && u.ActualCosts == nil
}

// Apply merges u into t field by field, stamps UpdatedAt and recalculates the
// derived totals.
func (t *Trip) Apply(u TripUpdate, now time.Time) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
	if u.Type != nil {
		t.Type = *u.Type
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.NumberOfPeople != nil {
		t.NumberOfPeople = *u.NumberOfPeople
	}
	if u.ClearLocation {
		t.Location = nil
	}
	if u.Location != nil {
		t.Location = u.Location.Clone()
	}
	if u.CustomCategories != nil {
		if len(*u.CustomCategories) == 0 {
			t.CustomCategories = nil
		} else {
			t.CustomCategories = slices.Clone(*u.CustomCategories)
		}
	}
	if u.PlannedCosts != nil {
		t.PlannedCosts = u.PlannedCosts.Clone()
	}
	if u.ActualCosts != nil {
		t.ActualCosts = u.ActualCosts.Clone()
	}
	t.UpdatedAt = now.UTC()
	t.Recalculate()
}
