package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripscout/internal/domain"
	"github.com/pkordes/tripscout/internal/handler"
	"github.com/pkordes/tripscout/internal/service"
	"github.com/pkordes/tripscout/internal/store"
)

// ---- mock services ---------------------------------------------------------
// Set only the method fields your test needs.

type mockTripServicer struct {
	create          func(ctx context.Context, in service.NewTripInput) (domain.Trip, error)
	get             func(ctx context.Context, id string) (domain.Trip, error)
	list            func(ctx context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int, error)
	upcoming        func(ctx context.Context) []domain.Trip
	past            func(ctx context.Context) []domain.Trip
	update          func(ctx context.Context, id string, u domain.TripUpdate) (domain.Trip, error)
	delete          func(ctx context.Context, id string) error
	duplicate       func(ctx context.Context, id string) (domain.Trip, error)
	start           func(ctx context.Context, id string) (domain.Trip, error)
	complete        func(ctx context.Context, id string) (domain.Trip, error)
	recalculate     func(ctx context.Context, id string) (domain.Trip, error)
	setPlannedCosts func(ctx context.Context, id string, c domain.CostBreakdown) (domain.Trip, error)
	setActualCosts  func(ctx context.Context, id string, c domain.CostBreakdown) (domain.Trip, error)
	summary         func(ctx context.Context, id string, mode service.SummaryMode) (domain.BudgetSummary, error)
}

func (m *mockTripServicer) Create(ctx context.Context, in service.NewTripInput) (domain.Trip, error) {
	return m.create(ctx, in)
}
func (m *mockTripServicer) Get(ctx context.Context, id string) (domain.Trip, error) {
	return m.get(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int, error) {
	return m.list(ctx, status, p)
}
func (m *mockTripServicer) Upcoming(ctx context.Context) []domain.Trip { return m.upcoming(ctx) }
func (m *mockTripServicer) Past(ctx context.Context) []domain.Trip     { return m.past(ctx) }
func (m *mockTripServicer) Update(ctx context.Context, id string, u domain.TripUpdate) (domain.Trip, error) {
	return m.update(ctx, id, u)
}
func (m *mockTripServicer) Delete(ctx context.Context, id string) error { return m.delete(ctx, id) }
func (m *mockTripServicer) Duplicate(ctx context.Context, id string) (domain.Trip, error) {
	return m.duplicate(ctx, id)
}
func (m *mockTripServicer) Start(ctx context.Context, id string) (domain.Trip, error) {
	return m.start(ctx, id)
}
func (m *mockTripServicer) Complete(ctx context.Context, id string) (domain.Trip, error) {
	return m.complete(ctx, id)
}
func (m *mockTripServicer) Recalculate(ctx context.Context, id string) (domain.Trip, error) {
	return m.recalculate(ctx, id)
}
func (m *mockTripServicer) SetPlannedCosts(ctx context.Context, id string, c domain.CostBreakdown) (domain.Trip, error) {
	return m.setPlannedCosts(ctx, id, c)
}
func (m *mockTripServicer) SetActualCosts(ctx context.Context, id string, c domain.CostBreakdown) (domain.Trip, error) {
	return m.setActualCosts(ctx, id, c)
}
func (m *mockTripServicer) Summary(ctx context.Context, id string, mode service.SummaryMode) (domain.BudgetSummary, error) {
	return m.summary(ctx, id, mode)
}

type mockTemplateServicer struct {
	saveFromTrip func(ctx context.Context, tripID, name string) (domain.TripTemplate, error)
	list         func(ctx context.Context) []domain.TripTemplate
	createTrip   func(ctx context.Context, templateID, name string) (domain.Trip, error)
	delete       func(ctx context.Context, id string) error
}

func (m *mockTemplateServicer) SaveFromTrip(ctx context.Context, tripID, name string) (domain.TripTemplate, error) {
	return m.saveFromTrip(ctx, tripID, name)
}
func (m *mockTemplateServicer) List(ctx context.Context) []domain.TripTemplate { return m.list(ctx) }
func (m *mockTemplateServicer) CreateTrip(ctx context.Context, templateID, name string) (domain.Trip, error) {
	return m.createTrip(ctx, templateID, name)
}
func (m *mockTemplateServicer) Delete(ctx context.Context, id string) error { return m.delete(ctx, id) }

type mockSettingsServicer struct {
	get    func(ctx context.Context) domain.AppSettings
	update func(ctx context.Context, u domain.SettingsUpdate) (domain.AppSettings, error)
}

func (m *mockSettingsServicer) Get(ctx context.Context) domain.AppSettings { return m.get(ctx) }
func (m *mockSettingsServicer) Update(ctx context.Context, u domain.SettingsUpdate) (domain.AppSettings, error) {
	return m.update(ctx, u)
}

type mockSessionServicer struct {
	get           func(ctx context.Context) store.Session
	selectTrip    func(ctx context.Context, id string) (store.Session, error)
	clear         func(ctx context.Context) store.Session
	setActualMode func(ctx context.Context, actual bool) store.Session
}

func (m *mockSessionServicer) Get(ctx context.Context) store.Session { return m.get(ctx) }
func (m *mockSessionServicer) SelectTrip(ctx context.Context, id string) (store.Session, error) {
	return m.selectTrip(ctx, id)
}
func (m *mockSessionServicer) Clear(ctx context.Context) store.Session { return m.clear(ctx) }
func (m *mockSessionServicer) SetActualMode(ctx context.Context, actual bool) store.Session {
	return m.setActualMode(ctx, actual)
}

type mockExportServicer struct {
	writeCSV func(ctx context.Context, w io.Writer) error
}

func (m *mockExportServicer) WriteCSV(ctx context.Context, w io.Writer) error {
	return m.writeCSV(ctx, w)
}

type healthFunc func() error

func (f healthFunc) LastSaveError() error { return f() }

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer     = (*mockTripServicer)(nil)
	_ handler.TemplateServicer = (*mockTemplateServicer)(nil)
	_ handler.SettingsServicer = (*mockSettingsServicer)(nil)
	_ handler.SessionServicer  = (*mockSessionServicer)(nil)
	_ handler.ExportServicer   = (*mockExportServicer)(nil)
	_ handler.HealthChecker    = healthFunc(nil)
)

// ---- helpers ---------------------------------------------------------------

func newHTTPHandler(d handler.Deps) http.Handler {
	return handler.NewServer(d).Handler()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func tripFixture() domain.Trip {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	trip := domain.NewTrip("Summer Tour", domain.TripTypeRoadTrip, now)
	trip.ID = "trip-1"
	return trip
}
