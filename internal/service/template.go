package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/tripscout/internal/domain"
)

// TemplateService saves trips as templates and creates trips from them.
type TemplateService struct {
	store TemplateStore
}

func NewTemplateService(s TemplateStore) *TemplateService {
	return &TemplateService{store: s}
}

// SaveFromTrip snapshots a trip into a new template.
func (s *TemplateService) SaveFromTrip(ctx context.Context, tripID, name string) (domain.TripTemplate, error) {
	name, err := validateName("template name", name)
	if err != nil {
		return domain.TripTemplate{}, err
	}
	tpl, ok := s.store.SaveAsTemplate(ctx, tripID, name)
	if !ok {
		return domain.TripTemplate{}, fmt.Errorf("service.TemplateService.SaveFromTrip: %w", domain.ErrNotFound)
	}
	return tpl, nil
}

// List returns every template in creation order.
func (s *TemplateService) List(_ context.Context) []domain.TripTemplate {
	tpls := s.store.Templates()
	if tpls == nil {
		return []domain.TripTemplate{}
	}
	return tpls
}

// Get returns a single template.
func (s *TemplateService) Get(_ context.Context, id string) (domain.TripTemplate, error) {
	tpl, ok := s.store.Template(id)
	if !ok {
		return domain.TripTemplate{}, fmt.Errorf("service.TemplateService.Get: %w", domain.ErrNotFound)
	}
	return tpl, nil
}

// CreateTrip starts a new trip from a template. A blank name falls back to
// the template's own name.
func (s *TemplateService) CreateTrip(ctx context.Context, templateID, name string) (domain.Trip, error) {
	if strings.TrimSpace(name) == "" {
		tpl, err := s.Get(ctx, templateID)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TemplateService.CreateTrip: %w", err)
		}
		name = tpl.Name
	}
	name, err := validateName("name", name)
	if err != nil {
		return domain.Trip{}, err
	}
	trip, ok := s.store.CreateTripFromTemplate(ctx, templateID, name)
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.TemplateService.CreateTrip: %w", domain.ErrNotFound)
	}
	return trip, nil
}

// Delete removes a template.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if !s.store.DeleteTemplate(ctx, id) {
		return fmt.Errorf("service.TemplateService.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
