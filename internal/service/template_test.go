package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripscout/internal/domain"
	"github.com/pkordes/tripscout/internal/service"
)

func TestTemplateService_SaveFromTrip(t *testing.T) {
	var gotName string
	svc := service.NewTemplateService(&mockTemplateStore{
		saveAsTemplate: func(_ context.Context, tripID, name string) (domain.TripTemplate, bool) {
			gotName = name
			return domain.TripTemplate{ID: "tpl", Name: name}, true
		},
	})

	tpl, err := svc.SaveFromTrip(context.Background(), "t1", "  Weekend  ")

	require.NoError(t, err)
	assert.Equal(t, "tpl", tpl.ID)
	assert.Equal(t, "Weekend", gotName)
}

func TestTemplateService_SaveFromTrip_BlankName(t *testing.T) {
	svc := service.NewTemplateService(&mockTemplateStore{})

	_, err := svc.SaveFromTrip(context.Background(), "t1", " ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTemplateService_SaveFromTrip_UnknownTrip(t *testing.T) {
	svc := service.NewTemplateService(&mockTemplateStore{
		saveAsTemplate: func(context.Context, string, string) (domain.TripTemplate, bool) {
			return domain.TripTemplate{}, false
		},
	})

	_, err := svc.SaveFromTrip(context.Background(), "missing", "T")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateService_CreateTrip_DefaultsToTemplateName(t *testing.T) {
	var gotName string
	svc := service.NewTemplateService(&mockTemplateStore{
		template: func(id string) (domain.TripTemplate, bool) {
			return domain.TripTemplate{ID: id, Name: "Weekend"}, true
		},
		createTripFromTemplate: func(_ context.Context, _, name string) (domain.Trip, bool) {
			gotName = name
			return domain.Trip{ID: "new", Name: name}, true
		},
	})

	trip, err := svc.CreateTrip(context.Background(), "tpl", "")

	require.NoError(t, err)
	assert.Equal(t, "new", trip.ID)
	assert.Equal(t, "Weekend", gotName)
}

func TestTemplateService_CreateTrip_UnknownTemplate(t *testing.T) {
	svc := service.NewTemplateService(&mockTemplateStore{
		template: func(string) (domain.TripTemplate, bool) { return domain.TripTemplate{}, false },
		createTripFromTemplate: func(context.Context, string, string) (domain.Trip, bool) {
			return domain.Trip{}, false
		},
	})
	ctx := context.Background()

	_, err := svc.CreateTrip(ctx, "missing", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.CreateTrip(ctx, "missing", "Named")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateService_EndToEnd(t *testing.T) {
	st := newRealStore()
	trips := service.NewTripService(st)
	svc := service.NewTemplateService(st)
	ctx := context.Background()
	trip, err := trips.Create(ctx, service.NewTripInput{
		Name:         "Road",
		Type:         domain.TripTypeRoadTrip,
		PlannedCosts: ptr(domain.CostBreakdown{}.With(domain.CategoryFood, 500)),
	})
	require.NoError(t, err)

	tpl, err := svc.SaveFromTrip(ctx, trip.ID, "Road template")
	require.NoError(t, err)
	require.Len(t, svc.List(ctx), 1)

	fresh, err := svc.CreateTrip(ctx, tpl.ID, "Road again")
	require.NoError(t, err)
	assert.Equal(t, 500.0, fresh.TotalPlanned)
	assert.Equal(t, 500.0, fresh.Variance)

	require.NoError(t, svc.Delete(ctx, tpl.ID))
	assert.Empty(t, svc.List(ctx))
	assert.ErrorIs(t, svc.Delete(ctx, tpl.ID), domain.ErrNotFound)
}

func TestTemplateService_List_NonNil(t *testing.T) {
	svc := service.NewTemplateService(&mockTemplateStore{
		templates: func() []domain.TripTemplate { return nil },
	})

	assert.NotNil(t, svc.List(context.Background()))
}
