package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripscout/internal/domain"
	"github.com/pkordes/tripscout/internal/handler"
	"github.com/pkordes/tripscout/internal/service"
)

func tripsHandler(svc handler.TripServicer) http.Handler {
	return newHTTPHandler(handler.Deps{Trips: svc})
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	var got service.NewTripInput
	svc := &mockTripServicer{
		create: func(_ context.Context, in service.NewTripInput) (domain.Trip, error) {
			got = in
			return tripFixture(), nil
		},
	}

	rec := do(t, tripsHandler(svc), http.MethodPost, "/trips", map[string]any{
		"name":           "Summer Tour",
		"type":           "road-trip",
		"date":           "2025-07-04",
		"numberOfPeople": 3,
		"location":       map[string]any{"name": "Baguio", "lat": 16.4, "lon": 120.6},
		"plannedCosts":   map[string]any{"food": 500, "fuel": map[string]any{"distance": 100}},
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "trip-1", resp.ID)

	assert.Equal(t, domain.TripTypeRoadTrip, got.Type)
	require.NotNil(t, got.Date)
	assert.Equal(t, "2025-07-04", *got.Date)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Baguio", got.Location.Name)
	require.NotNil(t, got.PlannedCosts)
	assert.Equal(t, 500.0, got.PlannedCosts.Amounts[domain.CategoryFood])
}

func TestCreateTrip_422_RequestValidation(t *testing.T) {
	for name, body := range map[string]map[string]any{
		"missing name": {"type": "day-trip"},
		"unknown type": {"name": "x", "type": "cruise"},
		"zero people":  {"name": "x", "type": "day-trip", "numberOfPeople": 0},
		"half coords":  {"name": "x", "type": "day-trip", "location": map[string]any{"name": "a", "lat": 1}},
	} {
		t.Run(name, func(t *testing.T) {
			svc := &mockTripServicer{
				create: func(context.Context, service.NewTripInput) (domain.Trip, error) {
					t.Error("service must not be reached")
					return domain.Trip{}, nil
				},
			}
			rec := do(t, tripsHandler(svc), http.MethodPost, "/trips", body)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
		})
	}
}

func TestCreateTrip_422_UnknownCostCategory(t *testing.T) {
	rec := do(t, tripsHandler(&mockTripServicer{}), http.MethodPost, "/trips", map[string]any{
		"name":         "x",
		"type":         "day-trip",
		"plannedCosts": map[string]any{"snacks": 10},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Message, "snacks")
}

func TestCreateTrip_422_ServiceValidation(t *testing.T) {
	svc := &mockTripServicer{
		create: func(context.Context, service.NewTripInput) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
		},
	}

	rec := do(t, tripsHandler(svc), http.MethodPost, "/trips", map[string]any{"name": " ", "type": "day-trip"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "name is required", decodeError(t, rec).Error.Message)
}

func TestCreateTrip_400_Malformed(t *testing.T) {
	for name, body := range map[string]string{
		"not json":      "{",
		"unknown field": `{"name":"x","type":"day-trip","colour":"red"}`,
		"bad date":      `{"name":"x","type":"day-trip","date":"04/07/2025"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(t, tripsHandler(&mockTripServicer{}), http.MethodPost, "/trips", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateTrip_400_EmptyBody(t *testing.T) {
	rec := do(t, tripsHandler(&mockTripServicer{}), http.MethodPost, "/trips", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body is required", decodeError(t, rec).Error.Message)
}

func TestCreateTrip_500(t *testing.T) {
	svc := &mockTripServicer{
		create: func(context.Context, service.NewTripInput) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("boom")
		},
	}

	rec := do(t, tripsHandler(svc), http.MethodPost, "/trips", map[string]any{"name": "x", "type": "day-trip"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Error.Code)
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_Pagination(t *testing.T) {
	var gotParams domain.PaginationParams
	var gotStatus *domain.TripStatus
	svc := &mockTripServicer{
		list: func(_ context.Context, st *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int, error) {
			gotStatus, gotParams = st, p
			return []domain.Trip{tripFixture()}, 41, nil
		},
	}

	rec := do(t, tripsHandler(svc), http.MethodGet, "/trips?page=3&limit=500&status=planned", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, gotParams.Page)
	assert.Equal(t, 100, gotParams.Limit, "limit is capped")
	require.NotNil(t, gotStatus)
	assert.Equal(t, domain.StatusPlanned, *gotStatus)

	var resp struct {
		Data       []domain.Trip `json:"data"`
		Pagination struct {
			Page, Limit, Total int
		} `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 41, resp.Pagination.Total)
}

func TestListTrips_BadPage(t *testing.T) {
	rec := do(t, tripsHandler(&mockTripServicer{}), http.MethodGet, "/trips?page=two", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTrips_UnknownStatus(t *testing.T) {
	svc := &mockTripServicer{
		list: func(context.Context, *domain.TripStatus, domain.PaginationParams) ([]domain.Trip, int, error) {
			return nil, 0, fmt.Errorf("%w: unknown status \"archived\"", domain.ErrValidation)
		},
	}

	rec := do(t, tripsHandler(svc), http.MethodGet, "/trips?status=archived", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpcomingAndPast(t *testing.T) {
	svc := &mockTripServicer{
		upcoming: func(context.Context) []domain.Trip { return []domain.Trip{tripFixture()} },
		past:     func(context.Context) []domain.Trip { return []domain.Trip{} },
	}
	h := tripsHandler(svc)

	up := do(t, h, http.MethodGet, "/trips/upcoming", nil)
	past := do(t, h, http.MethodGet, "/trips/past", nil)

	require.Equal(t, http.StatusOK, up.Code)
	require.Equal(t, http.StatusOK, past.Code)
	assert.Contains(t, up.Body.String(), "trip-1")
	assert.JSONEq(t, "[]", past.Body.String())
}

// ---- GET/PATCH/DELETE /trips/{id} ------------------------------------------

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		get: func(context.Context, string) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", domain.ErrNotFound)
		},
	}

	rec := do(t, tripsHandler(svc), http.MethodGet, "/trips/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "not_found", body.Error.Code)
	assert.Equal(t, "trip not found", body.Error.Message)
}

func TestGetTrip_200(t *testing.T) {
	svc := &mockTripServicer{
		get: func(_ context.Context, id string) (domain.Trip, error) {
			assert.Equal(t, "trip-1", id)
			return tripFixture(), nil
		},
	}

	rec := do(t, tripsHandler(svc), http.MethodGet, "/trips/trip-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var raw map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	for _, key := range []string{"id", "name", "date", "type", "status", "plannedCosts", "actualCosts",
		"totalPlanned", "totalActual", "variance", "numberOfPeople", "createdAt", "updatedAt"} {
		assert.Contains(t, raw, key)
	}
}

func TestUpdateTrip_MapsFields(t *testing.T) {
	var got domain.TripUpdate
	svc := &mockTripServicer{
		update: func(_ context.Context, _ string, u domain.TripUpdate) (domain.Trip, error) {
			got = u
			return tripFixture(), nil
		},
	}

	rec := do(t, tripsHandler(svc), http.MethodPatch, "/trips/trip-1", map[string]any{
		"status":           "active",
		"date":             "2025-08-01",
		"clearLocation":    true,
		"customCategories": []string{"Guide"},
		"actualCosts":      map[string]any{"tolls": "120"},
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, got.Status)
	assert.Equal(t, domain.StatusActive, *got.Status)
	assert.Equal(t, "2025-08-01", *got.Date)
	assert.True(t, got.ClearLocation)
	assert.Nil(t, got.Name)
	assert.Equal(t, []string{"Guide"}, *got.CustomCategories)
	assert.Equal(t, 120.0, got.ActualCosts.Amounts[domain.CategoryTolls], "numeric strings are parsed")
}

func TestUpdateTrip_BadStatus(t *testing.T) {
	rec := do(t, tripsHandler(&mockTripServicer{}), http.MethodPatch, "/trips/trip-1", map[string]any{"status": "done"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Message, "status")
}

func TestDeleteTrip(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, id string) error {
			if id == "trip-1" {
				return nil
			}
			return domain.ErrNotFound
		},
	}
	h := tripsHandler(svc)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/trips/trip-1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/trips/other", nil).Code)
}

// ---- actions ---------------------------------------------------------------

func TestTripActions(t *testing.T) {
	called := map[string]string{}
	action := func(name string) func(context.Context, string) (domain.Trip, error) {
		return func(_ context.Context, id string) (domain.Trip, error) {
			called[name] = id
			return tripFixture(), nil
		}
	}
	svc := &mockTripServicer{
		duplicate:   action("duplicate"),
		start:       action("start"),
		complete:    action("complete"),
		recalculate: action("recalculate"),
	}
	h := tripsHandler(svc)

	assert.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/trips/a/duplicate", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/trips/b/start", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/trips/c/complete", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/trips/d/recalculate", nil).Code)
	assert.Equal(t, map[string]string{"duplicate": "a", "start": "b", "complete": "c", "recalculate": "d"}, called)
}

func TestTripActions_404(t *testing.T) {
	notFound := func(context.Context, string) (domain.Trip, error) { return domain.Trip{}, domain.ErrNotFound }
	svc := &mockTripServicer{duplicate: notFound, start: notFound, complete: notFound, recalculate: notFound}
	h := tripsHandler(svc)

	for _, path := range []string{"duplicate", "start", "complete", "recalculate"} {
		rec := do(t, h, http.MethodPost, "/trips/x/"+path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

// ---- costs -----------------------------------------------------------------

func TestPutCosts(t *testing.T) {
	var planned, actual domain.CostBreakdown
	svc := &mockTripServicer{
		setPlannedCosts: func(_ context.Context, _ string, c domain.CostBreakdown) (domain.Trip, error) {
			planned = c
			return tripFixture(), nil
		},
		setActualCosts: func(_ context.Context, _ string, c domain.CostBreakdown) (domain.Trip, error) {
			actual = c
			return tripFixture(), nil
		},
	}
	h := tripsHandler(svc)

	rec := do(t, h, http.MethodPut, "/trips/trip-1/costs/planned",
		`{"fuel":{"distance":200,"pricePerLiter":60,"efficiency":10},"food":500,"custom":{"Guide":50}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, h, http.MethodPut, "/trips/trip-1/costs/actual", `{"food":"abc"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, 1750.0, domain.TotalCost(planned))
	assert.Equal(t, 0.0, actual.Amounts[domain.CategoryFood], "non-numeric input degrades to 0")
}

func TestPutCosts_UnknownCategory(t *testing.T) {
	rec := do(t, tripsHandler(&mockTripServicer{}), http.MethodPut, "/trips/trip-1/costs/planned", `{"snacks":1}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- summary ---------------------------------------------------------------

func TestGetTripSummary(t *testing.T) {
	var gotMode service.SummaryMode
	svc := &mockTripServicer{
		summary: func(_ context.Context, id string, mode service.SummaryMode) (domain.BudgetSummary, error) {
			gotMode = mode
			return domain.BudgetSummary{TripID: id, Mode: "actual", Total: decimal.RequireFromString("12.50")}, nil
		},
	}

	rec := do(t, tripsHandler(svc), http.MethodGet, "/trips/trip-1/summary?mode=actual", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.SummaryModeActual, gotMode)
	assert.True(t, strings.Contains(rec.Body.String(), `"total":"12.5"`), rec.Body.String())
}
