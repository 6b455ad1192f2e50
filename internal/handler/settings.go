package handler

import (
	"net/http"

	"github.com/pkordes/tripscout/internal/domain"
)

type updateSettingsRequest struct {
	Currency          *string  `json:"currency,omitempty" validate:"omitempty,min=1,max=8"`
	CurrencySymbol    *string  `json:"currencySymbol,omitempty" validate:"omitempty,min=1,max=8"`
	DecimalPlaces     *int     `json:"decimalPlaces,omitempty" validate:"omitempty,min=0,max=2"`
	DefaultEfficiency *float64 `json:"defaultEfficiency,omitempty" validate:"omitempty,gt=0"`
	DarkMode          *bool    `json:"darkMode,omitempty"`
}

// getSettings handles GET /settings.
func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Get(r.Context()))
}

// updateSettings handles PATCH /settings.
func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if !s.decodeBody(w, r, &req, false) {
		return
	}
	settings, err := s.settings.Update(r.Context(), domain.SettingsUpdate{
		Currency:          req.Currency,
		CurrencySymbol:    req.CurrencySymbol,
		DecimalPlaces:     req.DecimalPlaces,
		DefaultEfficiency: req.DefaultEfficiency,
		DarkMode:          req.DarkMode,
	})
	if err != nil {
		serviceError(w, r, err, "settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
