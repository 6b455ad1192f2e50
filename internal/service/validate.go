package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golang/geo/s2"

	"github.com/pkordes/tripscout/internal/domain"
)

// maxNameLen bounds trip and template names, counted in runes.
const maxNameLen = 200

func validateName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	if len([]rune(name)) > maxNameLen {
		return "", fmt.Errorf("%w: %s must be at most %d characters", domain.ErrValidation, field, maxNameLen)
	}
	return name, nil
}

func validateTripType(t domain.TripType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: unknown trip type %q", domain.ErrValidation, t)
	}
	return nil
}

func validateStatus(s domain.TripStatus) error {
	if !s.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, s)
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	return nil
}

func validatePeople(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: numberOfPeople must be at least 1", domain.ErrValidation)
	}
	return nil
}

// validateLocation requires a name and, when coordinates are given, both of
// them within the valid latitude/longitude ranges.
func validateLocation(l domain.Location) error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: location name is required", domain.ErrValidation)
	}
	if (l.Lat == nil) != (l.Lon == nil) {
		return fmt.Errorf("%w: location needs both lat and lon or neither", domain.ErrValidation)
	}
	if l.Lat != nil && !s2.LatLngFromDegrees(*l.Lat, *l.Lon).IsValid() {
		return fmt.Errorf("%w: location coordinates out of range", domain.ErrValidation)
	}
	return nil
}

// cleanCustomCategories trims the names and rejects blanks and names that
// differ only in case.
func cleanCustomCategories(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, fmt.Errorf("%w: custom category name is required", domain.ErrValidation)
		}
		key := strings.ToLower(n)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate custom category %q", domain.ErrValidation, n)
		}
		seen[key] = true
		out = append(out, n)
	}
	return out, nil
}

// canonicalCosts rejects negative or non-finite amounts and files every
// custom amount under the declared category name it matches, ignoring case.
// Two keys that resolve to the same category are rejected.
func canonicalCosts(c domain.CostBreakdown, declared []string) (domain.CostBreakdown, error) {
	if c.Fuel != nil {
		if err := validateAmount("fuel.distance", c.Fuel.Distance); err != nil {
			return domain.CostBreakdown{}, err
		}
		if err := validateAmount("fuel.pricePerLiter", c.Fuel.PricePerLiter); err != nil {
			return domain.CostBreakdown{}, err
		}
		if err := validateAmount("fuel.efficiency", c.Fuel.Efficiency); err != nil {
			return domain.CostBreakdown{}, err
		}
	}
	for cat, v := range c.Amounts {
		if err := validateAmount(string(cat), v); err != nil {
			return domain.CostBreakdown{}, err
		}
	}
	if len(c.Custom) == 0 {
		return c, nil
	}

	out := c.Clone()
	out.Custom = make(map[string]float64, len(c.Custom))
	for name, v := range c.Custom {
		canon, ok := matchFold(declared, name)
		if !ok {
			return domain.CostBreakdown{}, fmt.Errorf("%w: %q is not a custom category of this trip", domain.ErrValidation, name)
		}
		if _, dup := out.Custom[canon]; dup {
			return domain.CostBreakdown{}, fmt.Errorf("%w: custom category %q given more than once", domain.ErrValidation, canon)
		}
		if err := validateAmount(name, v); err != nil {
			return domain.CostBreakdown{}, err
		}
		out.Custom[canon] = v
	}
	return out, nil
}

// reconcileCustom re-files stored custom amounts under a new declared list:
// amounts for dropped names are removed, the rest take the declared spelling
// (amounts that end up under one name are added together).
// changed reports whether c needed any change.
func reconcileCustom(c domain.CostBreakdown, declared []string) (out domain.CostBreakdown, changed bool) {
	if len(c.Custom) == 0 {
		return c, false
	}
	out = c.Clone()
	out.Custom = make(map[string]float64, len(c.Custom))
	for name, v := range c.Custom {
		canon, ok := matchFold(declared, name)
		if !ok || canon != name {
			changed = true
		}
		if ok {
			out.Custom[canon] += v
		}
	}
	if len(out.Custom) == 0 {
		out.Custom = nil
	}
	return out, changed
}

func validateAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrValidation, field)
	}
	return nil
}

// matchFold returns the entry of list equal to s ignoring case and
// surrounding space.
func matchFold(list []string, s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return v, true
		}
	}
	return "", false
}

// withDefaultEfficiency fills a fuel entry's missing efficiency from settings.
func withDefaultEfficiency(c domain.CostBreakdown, settings domain.AppSettings) domain.CostBreakdown {
	if c.Fuel == nil || c.Fuel.Efficiency > 0 {
		return c
	}
	return c.WithFuel(c.Fuel.WithDefaultEfficiency(settings.DefaultEfficiency))
}
