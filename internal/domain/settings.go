package domain

import "github.com/shopspring/decimal"

// AppSettings is the single, process-wide settings record.
type AppSettings struct {
	Currency          string  `json:"currency"`
	CurrencySymbol    string  `json:"currencySymbol"`
	DecimalPlaces     int     `json:"decimalPlaces"`
	DefaultEfficiency float64 `json:"defaultEfficiency"` // km per liter
	DarkMode          bool    `json:"darkMode"`
}

// DefaultSettings returns the settings used on first run.
func DefaultSettings() AppSettings {
	return AppSettings{
		Currency:          "PHP",
		CurrencySymbol:    "₱",
		DecimalPlaces:     2,
		DefaultEfficiency: 10,
		DarkMode:          false,
	}
}

// SettingsUpdate is a partial settings change. Nil fields are left untouched.
type SettingsUpdate struct {
	Currency          *string
	CurrencySymbol    *string
	DecimalPlaces     *int
	DefaultEfficiency *float64
	DarkMode          *bool
}

// Apply merges u into s. When u changes the currency and the code is in the
// currency table, the symbol is taken from the table even if u also carries
// an explicit symbol.
func (s AppSettings) Apply(u SettingsUpdate) AppSettings {
	if u.Currency != nil {
		s.Currency = *u.Currency
	}
	if u.CurrencySymbol != nil {
		s.CurrencySymbol = *u.CurrencySymbol
	}
	if u.DecimalPlaces != nil {
		s.DecimalPlaces = *u.DecimalPlaces
	}
	if u.DefaultEfficiency != nil {
		s.DefaultEfficiency = *u.DefaultEfficiency
	}
	if u.DarkMode != nil {
		s.DarkMode = *u.DarkMode
	}
	if u.Currency != nil && *u.Currency != "" {
		if c, ok := LookupCurrency(*u.Currency); ok {
			s.CurrencySymbol = c.Symbol
		}
	}
	return s
}

// Round rounds amount half-away-from-zero to the configured decimal places.
func (s AppSettings) Round(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(int32(s.places()))
}

// Format renders amount as the currency symbol followed by the amount fixed
// to the configured decimal places, e.g. "₱1234.50".
func (s AppSettings) Format(amount float64) string {
	return s.CurrencySymbol + s.Fixed(amount)
}

// Fixed renders amount fixed to the configured decimal places without a
// currency symbol, e.g. "1234.50".
func (s AppSettings) Fixed(amount float64) string {
	return s.Round(amount).StringFixed(int32(s.places()))
}

func (s AppSettings) places() int {
	switch {
	case s.DecimalPlaces < 0:
		return 0
	case s.DecimalPlaces > 2:
		return 2
	}
	return s.DecimalPlaces
}
