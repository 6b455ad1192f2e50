package domain

// TripTypeConfig describes how a trip type is presented: its label and the
// ordered categories offered as inputs. The list does not restrict which
// categories may hold data.
type TripTypeConfig struct {
	Type        TripType   `json:"type"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Categories  []Category `json:"categories"`
}

var tripTypeOrder = []TripType{
	TripTypeDayTrip,
	TripTypeRoadTrip,
	TripTypeOvernight,
	TripTypeCamping,
	TripTypeCustom,
}

var tripTypeConfigs = map[TripType]TripTypeConfig{
	TripTypeDayTrip: {
		Label:       "Day Trip",
		Description: "Short trips without overnight stay",
		Categories: []Category{
			CategoryTransportTickets, CategoryParking, CategoryFood,
			CategoryActivities, CategoryMiscellaneous,
		},
	},
	TripTypeRoadTrip: {
		Label:       "Road Trip",
		Description: "Travel by car with fuel costs",
		Categories: []Category{
			CategoryFuel, CategoryTolls, CategoryParking, CategoryVehicleRental,
			CategoryFood, CategoryAccommodation, CategoryActivities, CategoryMiscellaneous,
		},
	},
	TripTypeOvernight: {
		Label:       "Overnight Stay",
		Description: "Trips with hotel or lodging",
		Categories: []Category{
			CategoryAccommodation, CategoryFood, CategoryActivities,
			CategoryTransportTickets, CategoryParking, CategoryMiscellaneous,
		},
	},
	TripTypeCamping: {
		Label:       "Camping",
		Description: "Outdoor camping adventures",
		Categories: []Category{
			CategoryCampsiteFee, CategoryEquipmentRental, CategoryFood,
			CategoryFuel, CategoryTransportTickets, CategoryMiscellaneous,
		},
	},
	TripTypeCustom: {
		Label:       "Custom",
		Description: "Create your own categories",
		Categories:  Categories(),
	},
}

// Config returns the presentation config for t. ok is false for an unknown type.
func (t TripType) Config() (cfg TripTypeConfig, ok bool) {
	cfg, ok = tripTypeConfigs[t]
	if !ok {
		return TripTypeConfig{}, false
	}
	cfg.Type = t
	cfg.Categories = append([]Category(nil), cfg.Categories...)
	return cfg, true
}

// Label returns the display label of t, or the raw value if unknown.
func (t TripType) Label() string {
	if cfg, ok := tripTypeConfigs[t]; ok {
		return cfg.Label
	}
	return string(t)
}

// TripTypes returns the configuration table for all trip types in display order.
func TripTypes() []TripTypeConfig {
	out := make([]TripTypeConfig, 0, len(tripTypeOrder))
	for _, t := range tripTypeOrder {
		cfg, _ := t.Config()
		out = append(out, cfg)
	}
	return out
}
