package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Category is one key of the closed set of cost categories a CostBreakdown
// can hold. Only the constants below are valid.
type Category string

const (
	CategoryFuel             Category = "fuel"
	CategoryTolls            Category = "tolls"
	CategoryParking          Category = "parking"
	CategoryVehicleRental    Category = "vehicleRental"
	CategoryTransportTickets Category = "transportTickets"
	CategoryAccommodation    Category = "accommodation"
	CategoryCampsiteFee      Category = "campsiteFee"
	CategoryEquipmentRental  Category = "equipmentRental"
	CategoryFood             Category = "food"
	CategoryActivities       Category = "activities"
	CategoryMiscellaneous    Category = "miscellaneous"
)

// customKey is the JSON key under which per-trip custom category amounts are
// nested inside a serialized CostBreakdown.
const customKey = "custom"

// directCategories are the keys summed as plain amounts. Fuel is excluded
// because its cost is derived from a FuelCost record.
var directCategories = []Category{
	CategoryTolls,
	CategoryParking,
	CategoryVehicleRental,
	CategoryTransportTickets,
	CategoryAccommodation,
	CategoryCampsiteFee,
	CategoryEquipmentRental,
	CategoryFood,
	CategoryActivities,
	CategoryMiscellaneous,
}

var categoryLabels = map[Category]string{
	CategoryFuel:             "Fuel",
	CategoryTolls:            "Tolls",
	CategoryParking:          "Parking",
	CategoryVehicleRental:    "Vehicle Rental",
	CategoryTransportTickets: "Transport Tickets",
	CategoryAccommodation:    "Accommodation",
	CategoryCampsiteFee:      "Campsite Fee",
	CategoryEquipmentRental:  "Equipment Rental",
	CategoryFood:             "Food & Drinks",
	CategoryActivities:       "Activities",
	CategoryMiscellaneous:    "Miscellaneous",
}

// Categories returns every category key, fuel first, in display order.
func Categories() []Category {
	return append([]Category{CategoryFuel}, directCategories...)
}

// DirectCategories returns the keys that contribute their stored amount
// directly to a total.
func DirectCategories() []Category {
	return append([]Category(nil), directCategories...)
}

// ParseCategory reports whether s names a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	_, ok := categoryLabels[c]
	return c, ok
}

// Label returns the human-readable name of the category, or the raw key when
// the category is unknown.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// FuelCost is the input for the derived fuel cost of a trip.
// Distance is in km, Efficiency in km per liter.
type FuelCost struct {
	Distance      float64 `json:"distance"`
	PricePerLiter float64 `json:"pricePerLiter"`
	Efficiency    float64 `json:"efficiency"`
}

// Cost returns (distance / efficiency) * pricePerLiter. It is 0 when f is nil
// or when any of the three inputs is zero or not a finite number, so a
// partially filled form never yields a spurious amount.
func (f *FuelCost) Cost() float64 {
	if f == nil {
		return 0
	}
	if !usable(f.Distance) || !usable(f.PricePerLiter) || !usable(f.Efficiency) {
		return 0
	}
	return (f.Distance / f.Efficiency) * f.PricePerLiter
}

// WithDefaultEfficiency returns a copy of f whose Efficiency falls back to def
// when it was left unset.
func (f FuelCost) WithDefaultEfficiency(def float64) FuelCost {
	if !usable(f.Efficiency) && usable(def) && def > 0 {
		f.Efficiency = def
	}
	return f
}

func usable(v float64) bool {
	return v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CostBreakdown holds the planned or actual amounts of a trip.
// A category missing from Amounts has not been entered yet and counts as 0.
// Amounts is only consulted for the direct categories; fuel lives in Fuel.
// Custom holds amounts for the trip's custom category names.
type CostBreakdown struct {
	Fuel    *FuelCost
	Amounts map[Category]float64
	Custom  map[string]float64
}

// Amount returns the stored amount for a direct category.
func (c CostBreakdown) Amount(cat Category) (float64, bool) {
	v, ok := c.Amounts[cat]
	return v, ok
}

// With returns a copy of c with cat set to amount. Setting CategoryFuel is
// ignored; use WithFuel.
func (c CostBreakdown) With(cat Category, amount float64) CostBreakdown {
	out := c.Clone()
	if cat == CategoryFuel {
		return out
	}
	if out.Amounts == nil {
		out.Amounts = make(map[Category]float64)
	}
	out.Amounts[cat] = amount
	return out
}

// WithFuel returns a copy of c with the fuel entry replaced.
func (c CostBreakdown) WithFuel(f FuelCost) CostBreakdown {
	out := c.Clone()
	out.Fuel = &f
	return out
}

// WithCustom returns a copy of c with the custom category name set to amount.
func (c CostBreakdown) WithCustom(name string, amount float64) CostBreakdown {
	out := c.Clone()
	if out.Custom == nil {
		out.Custom = make(map[string]float64)
	}
	out.Custom[name] = amount
	return out
}

// IsEmpty reports whether nothing has been entered.
func (c CostBreakdown) IsEmpty() bool {
	return c.Fuel == nil && len(c.Amounts) == 0 && len(c.Custom) == 0
}

// Clone returns a deep copy. Empty maps are returned as nil so that a cloned
// breakdown compares equal to one decoded from JSON.
func (c CostBreakdown) Clone() CostBreakdown {
	var out CostBreakdown
	if c.Fuel != nil {
		f := *c.Fuel
		out.Fuel = &f
	}
	if len(c.Amounts) > 0 {
		out.Amounts = make(map[Category]float64, len(c.Amounts))
		for k, v := range c.Amounts {
			out.Amounts[k] = v
		}
	}
	if len(c.Custom) > 0 {
		out.Custom = make(map[string]float64, len(c.Custom))
		for k, v := range c.Custom {
			out.Custom[k] = v
		}
	}
	return out
}

// TotalCost aggregates a breakdown: the fuel formula plus every present direct
// category plus every custom amount. Non-finite values contribute 0.
// Custom names are summed in sorted order so repeated calls are bit-identical.
func TotalCost(c CostBreakdown) float64 {
	total := c.Fuel.Cost()
	for _, cat := range directCategories {
		if v, ok := c.Amounts[cat]; ok && finite(v) {
			total += v
		}
	}
	if len(c.Custom) > 0 {
		names := make([]string, 0, len(c.Custom))
		for name := range c.Custom {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if v := c.Custom[name]; finite(v) {
				total += v
			}
		}
	}
	return total
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MarshalJSON writes the breakdown as one flat object keyed by category,
// e.g. {"fuel":{...},"food":500,"custom":{"Souvenirs":20}}.
func (c CostBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	field := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(b)
		return nil
	}

	if c.Fuel != nil {
		if err := field(string(CategoryFuel), c.Fuel); err != nil {
			return nil, err
		}
	}
	for _, cat := range directCategories {
		if v, ok := c.Amounts[cat]; ok {
			if err := field(string(cat), v); err != nil {
				return nil, err
			}
		}
	}
	if len(c.Custom) > 0 {
		if err := field(customKey, c.Custom); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the flat category object. Keys outside the fixed
// category set are rejected with ErrValidation. Amounts that are not numbers
// (e.g. "12.50" or "abc") are normalised through ParseAmount.
func (c *CostBreakdown) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out CostBreakdown
	for key, val := range raw {
		if isNull(val) {
			continue
		}
		switch key {
		case string(CategoryFuel):
			f, err := decodeFuel(val)
			if err != nil {
				return err
			}
			out.Fuel = &f
		case customKey:
			var m map[string]json.RawMessage
			if err := json.Unmarshal(val, &m); err != nil {
				return fmt.Errorf("%w: custom costs must be an object", ErrValidation)
			}
			for name, v := range m {
				if out.Custom == nil {
					out.Custom = make(map[string]float64, len(m))
				}
				out.Custom[name] = decodeAmount(v)
			}
		default:
			cat, ok := ParseCategory(key)
			if !ok {
				return fmt.Errorf("%w: unknown cost category %q", ErrValidation, key)
			}
			if out.Amounts == nil {
				out.Amounts = make(map[Category]float64)
			}
			out.Amounts[cat] = decodeAmount(val)
		}
	}
	*c = out
	return nil
}

func decodeFuel(data []byte) (FuelCost, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return FuelCost{}, fmt.Errorf("%w: fuel must be an object", ErrValidation)
	}
	return FuelCost{
		Distance:      decodeAmount(m["distance"]),
		PricePerLiter: decodeAmount(m["pricePerLiter"]),
		Efficiency:    decodeAmount(m["efficiency"]),
	}, nil
}

// decodeAmount accepts a JSON number or a numeric string and degrades
// anything else to 0.
func decodeAmount(data json.RawMessage) float64 {
	if len(data) == 0 || isNull(data) {
		return 0
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return ParseAmount(s)
	}
	return 0
}

func isNull(data []byte) bool {
	return string(bytes.TrimSpace(data)) == "null"
}
