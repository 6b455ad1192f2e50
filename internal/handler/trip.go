package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripscout/internal/domain"
	"github.com/pkordes/tripscout/internal/service"
)

// ---- request bodies --------------------------------------------------------

type locationRequest struct {
	Name string   `json:"name" validate:"required,max=200"`
	Lat  *float64 `json:"lat,omitempty" validate:"required_with=Lon"`
	Lon  *float64 `json:"lon,omitempty" validate:"required_with=Lat"`
}

func (l *locationRequest) toDomain() *domain.Location {
	if l == nil {
		return nil
	}
	return &domain.Location{Name: l.Name, Lat: l.Lat, Lon: l.Lon}
}

type createTripRequest struct {
	Name             string                `json:"name" validate:"required,max=200"`
	Type             domain.TripType       `json:"type" validate:"required,oneof=day-trip road-trip overnight camping custom"`
	Date             *openapi_types.Date   `json:"date,omitempty"`
	NumberOfPeople   *int                  `json:"numberOfPeople,omitempty" validate:"omitempty,min=1"`
	Location         *locationRequest      `json:"location,omitempty"`
	CustomCategories []string              `json:"customCategories,omitempty" validate:"omitempty,dive,required"`
	PlannedCosts     *domain.CostBreakdown `json:"plannedCosts,omitempty"`
}

// updateTripRequest is a partial update. Absent fields are left untouched;
// clearLocation removes the location.
type updateTripRequest struct {
	Name             *string               `json:"name,omitempty" validate:"omitempty,max=200"`
	Date             *openapi_types.Date   `json:"date,omitempty"`
	Type             *domain.TripType      `json:"type,omitempty" validate:"omitempty,oneof=day-trip road-trip overnight camping custom"`
	Status           *domain.TripStatus    `json:"status,omitempty" validate:"omitempty,oneof=planned active completed"`
	NumberOfPeople   *int                  `json:"numberOfPeople,omitempty" validate:"omitempty,min=1"`
	Location         *locationRequest      `json:"location,omitempty"`
	ClearLocation    bool                  `json:"clearLocation,omitempty"`
	CustomCategories *[]string             `json:"customCategories,omitempty"`
	PlannedCosts     *domain.CostBreakdown `json:"plannedCosts,omitempty"`
	ActualCosts      *domain.CostBreakdown `json:"actualCosts,omitempty"`
}

// tripListResponse wraps one page of trips.
type tripListResponse struct {
	Data       []domain.Trip `json:"data"`
	Pagination pagination    `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ---- handlers --------------------------------------------------------------

// createTrip handles POST /trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if !s.decodeBody(w, r, &req, false) {
		return
	}

	in := service.NewTripInput{
		Name:             req.Name,
		Type:             req.Type,
		Date:             dateString(req.Date),
		NumberOfPeople:   req.NumberOfPeople,
		Location:         req.Location.toDomain(),
		CustomCategories: req.CustomCategories,
		PlannedCosts:     req.PlannedCosts,
	}
	trip, err := s.trips.Create(r.Context(), in)
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// listTrips handles GET /trips.
// Supports ?status=, ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := optionalInt(q.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "page must be an integer")
		return
	}
	limit, err := optionalInt(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "limit must be an integer")
		return
	}
	var status *domain.TripStatus
	if v := q.Get("status"); v != "" {
		st := domain.TripStatus(v)
		status = &st
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.trips.List(r.Context(), status, params)
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripListResponse{
		Data:       trips,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// listUpcomingTrips handles GET /trips/upcoming.
func (s *Server) listUpcomingTrips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.trips.Upcoming(r.Context()))
}

// listPastTrips handles GET /trips/past.
func (s *Server) listPastTrips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.trips.Past(r.Context()))
}

// getTrip handles GET /trips/{id}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// updateTrip handles PATCH /trips/{id}.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	var req updateTripRequest
	if !s.decodeBody(w, r, &req, false) {
		return
	}

	u := domain.TripUpdate{
		Name:             req.Name,
		Date:             dateString(req.Date),
		Type:             req.Type,
		Status:           req.Status,
		NumberOfPeople:   req.NumberOfPeople,
		Location:         req.Location.toDomain(),
		ClearLocation:    req.ClearLocation,
		CustomCategories: req.CustomCategories,
		PlannedCosts:     req.PlannedCosts,
		ActualCosts:      req.ActualCosts,
	}
	trip, err := s.trips.Update(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// deleteTrip handles DELETE /trips/{id}.
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serviceError(w, r, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// duplicateTrip handles POST /trips/{id}/duplicate.
func (s *Server) duplicateTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

func (s *Server) startTrip(w http.ResponseWriter, r *http.Request) {
	s.tripAction(w, r, s.trips.Start)
}

func (s *Server) completeTrip(w http.ResponseWriter, r *http.Request) {
	s.tripAction(w, r, s.trips.Complete)
}

func (s *Server) recalculateTrip(w http.ResponseWriter, r *http.Request) {
	s.tripAction(w, r, s.trips.Recalculate)
}

// putPlannedCosts handles PUT /trips/{id}/costs/planned.
// The body is a whole cost breakdown and replaces the stored one.
func (s *Server) putPlannedCosts(w http.ResponseWriter, r *http.Request) {
	var costs domain.CostBreakdown
	if !s.decodeBody(w, r, &costs, false) {
		return
	}
	trip, err := s.trips.SetPlannedCosts(r.Context(), chi.URLParam(r, "id"), costs)
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// putActualCosts handles PUT /trips/{id}/costs/actual.
func (s *Server) putActualCosts(w http.ResponseWriter, r *http.Request) {
	var costs domain.CostBreakdown
	if !s.decodeBody(w, r, &costs, false) {
		return
	}
	trip, err := s.trips.SetActualCosts(r.Context(), chi.URLParam(r, "id"), costs)
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// getTripSummary handles GET /trips/{id}/summary?mode=planned|actual.
func (s *Server) getTripSummary(w http.ResponseWriter, r *http.Request) {
	mode := service.SummaryMode(r.URL.Query().Get("mode"))
	summary, err := s.trips.Summary(r.Context(), chi.URLParam(r, "id"), mode)
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// tripAction runs a body-less state change on the trip in the path.
func (s *Server) tripAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id string) (domain.Trip, error)) {
	trip, err := action(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// ---- mapping helpers -------------------------------------------------------

func dateString(d *openapi_types.Date) *string {
	if d == nil {
		return nil
	}
	s := d.Format(openapi_types.DateFormat)
	return &s
}

func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
