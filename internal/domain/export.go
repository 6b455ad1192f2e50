package domain

// ExportRow is a single row of the flat CSV export.
// There is one row per trip per category: every direct category of the
// trip's type, then each of the trip's custom categories. Trip fields repeat
// on every row of that trip.
type ExportRow struct {
	// Trip fields, repeated for every category row.
	TripID         string
	TripName       string
	TripDate       string
	TripType       TripType
	TripStatus     TripStatus
	NumberOfPeople int

	// Category fields. Custom is true for a custom category name.
	Category string
	Custom   bool
	Planned  float64
	Actual   float64
}

// ExportRows flattens trip into export rows following its type's categories.
func ExportRows(trip Trip) []ExportRow {
	cats := Categories()
	if cfg, ok := trip.Type.Config(); ok {
		cats = cfg.Categories
	}

	base := ExportRow{
		TripID:         trip.ID,
		TripName:       trip.Name,
		TripDate:       trip.Date,
		TripType:       trip.Type,
		TripStatus:     trip.Status,
		NumberOfPeople: trip.NumberOfPeople,
	}

	rows := make([]ExportRow, 0, len(cats)+len(trip.CustomCategories))
	for _, cat := range cats {
		r := base
		r.Category = cat.Label()
		r.Planned = categoryAmount(trip.PlannedCosts, cat)
		r.Actual = categoryAmount(trip.ActualCosts, cat)
		rows = append(rows, r)
	}
	for _, name := range trip.CustomCategories {
		r := base
		r.Category = name
		r.Custom = true
		r.Planned = trip.PlannedCosts.Custom[name]
		r.Actual = trip.ActualCosts.Custom[name]
		rows = append(rows, r)
	}
	return rows
}
