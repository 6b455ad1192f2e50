package domain

import "github.com/shopspring/decimal"

// CategoryLine is the planned and actual amount for one category of a trip.
type CategoryLine struct {
	Category Category        `json:"category"`
	Label    string          `json:"label"`
	Planned  decimal.Decimal `json:"planned"`
	Actual   decimal.Decimal `json:"actual"`
}

// BudgetSummary is the rounded, display-ready view of a trip's budget.
// Amounts are rounded to the settings' decimal places; the underlying trip
// keeps full precision.
type BudgetSummary struct {
	TripID         string          `json:"tripId"`
	TripTypeLabel  string          `json:"tripTypeLabel"`
	Mode           string          `json:"mode"` // "planned" or "actual"
	Currency       string          `json:"currency"`
	CurrencySymbol string          `json:"currencySymbol"`
	DecimalPlaces  int             `json:"decimalPlaces"`
	NumberOfPeople int             `json:"numberOfPeople"`
	Total          decimal.Decimal `json:"total"`
	PerPerson      decimal.Decimal `json:"perPerson"`
	TotalPlanned   decimal.Decimal `json:"totalPlanned"`
	TotalActual    decimal.Decimal `json:"totalActual"`
	Variance       decimal.Decimal `json:"variance"`
	UnderBudget    bool            `json:"underBudget"`
	// TotalDisplay and PerPersonDisplay are Total and PerPerson formatted
	// with the currency symbol, e.g. "₱1234.50".
	TotalDisplay     string `json:"totalDisplay"`
	PerPersonDisplay string `json:"perPersonDisplay"`
	Lines          []CategoryLine  `json:"lines"`
	Custom         []CustomLine    `json:"custom,omitempty"`
}

// CustomLine is the planned and actual amount for a custom category name.
type CustomLine struct {
	Name    string          `json:"name"`
	Planned decimal.Decimal `json:"planned"`
	Actual  decimal.Decimal `json:"actual"`
}

// Summarize computes the budget summary of trip for the given display mode.
// The per-person share divides the mode's total by NumberOfPeople (treated as
// 1 when not positive) before rounding.
func Summarize(trip Trip, settings AppSettings, actualMode bool) BudgetSummary {
	places := int32(settings.places())
	round := settings.Round

	total := trip.TotalPlanned
	mode := "planned"
	if actualMode {
		total = trip.TotalActual
		mode = "actual"
	}
	people := trip.NumberOfPeople
	if people < 1 {
		people = 1
	}
	perPerson := decimal.NewFromFloat(total).
		Div(decimal.NewFromInt(int64(people))).
		Round(places)

	s := BudgetSummary{
		TripID:         trip.ID,
		TripTypeLabel:  trip.Type.Label(),
		Mode:           mode,
		Currency:       settings.Currency,
		CurrencySymbol: settings.CurrencySymbol,
		DecimalPlaces:  int(places),
		NumberOfPeople: trip.NumberOfPeople,
		Total:          round(total),
		PerPerson:      perPerson,
		TotalPlanned:   round(trip.TotalPlanned),
		TotalActual:    round(trip.TotalActual),
		Variance:       round(trip.Variance),
		UnderBudget:    trip.Variance >= 0,

		TotalDisplay:     settings.Format(total),
		PerPersonDisplay: settings.Format(perPerson.InexactFloat64()),
	}

	cats := Categories()
	if cfg, ok := trip.Type.Config(); ok {
		cats = cfg.Categories
	}
	for _, cat := range cats {
		s.Lines = append(s.Lines, CategoryLine{
			Category: cat,
			Label:    cat.Label(),
			Planned:  round(categoryAmount(trip.PlannedCosts, cat)),
			Actual:   round(categoryAmount(trip.ActualCosts, cat)),
		})
	}
	for _, name := range trip.CustomCategories {
		s.Custom = append(s.Custom, CustomLine{
			Name:    name,
			Planned: round(trip.PlannedCosts.Custom[name]),
			Actual:  round(trip.ActualCosts.Custom[name]),
		})
	}
	return s
}

// categoryAmount returns what a single category contributes to the total.
func categoryAmount(c CostBreakdown, cat Category) float64 {
	if cat == CategoryFuel {
		return c.Fuel.Cost()
	}
	if v, ok := c.Amount(cat); ok && finite(v) {
		return v
	}
	return 0
}
