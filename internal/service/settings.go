package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/pkordes/tripscout/internal/domain"
)

// SettingsService validates settings changes.
type SettingsService struct {
	store SettingsStore
}

func NewSettingsService(s SettingsStore) *SettingsService {
	return &SettingsService{store: s}
}

func (s *SettingsService) Get(_ context.Context) domain.AppSettings {
	return s.store.Settings()
}

// Update validates and merges a partial settings change.
// Currency codes are upper-cased; a code missing from the currency table is
// accepted and keeps the current symbol.
func (s *SettingsService) Update(ctx context.Context, u domain.SettingsUpdate) (domain.AppSettings, error) {
	if u.Currency != nil {
		code := strings.ToUpper(strings.TrimSpace(*u.Currency))
		if code == "" {
			return domain.AppSettings{}, fmt.Errorf("%w: currency must not be empty", domain.ErrValidation)
		}
		u.Currency = &code
	}
	if u.CurrencySymbol != nil && strings.TrimSpace(*u.CurrencySymbol) == "" {
		return domain.AppSettings{}, fmt.Errorf("%w: currencySymbol must not be empty", domain.ErrValidation)
	}
	if u.DecimalPlaces != nil && (*u.DecimalPlaces < 0 || *u.DecimalPlaces > 2) {
		return domain.AppSettings{}, fmt.Errorf("%w: decimalPlaces must be between 0 and 2", domain.ErrValidation)
	}
	if u.DefaultEfficiency != nil {
		e := *u.DefaultEfficiency
		if math.IsNaN(e) || math.IsInf(e, 0) || e <= 0 {
			return domain.AppSettings{}, fmt.Errorf("%w: defaultEfficiency must be a positive number", domain.ErrValidation)
		}
	}
	return s.store.UpdateSettings(ctx, u), nil
}
