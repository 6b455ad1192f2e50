// Package handler implements the JSON/HTTP surface of the TripScout API on
// go-chi. Handlers are methods on Server, split into resource files
// (trip.go, template.go, ...), and depend only on the small service
// interfaces declared below.
package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pkordes/tripscout/internal/domain"
	"github.com/pkordes/tripscout/internal/service"
	"github.com/pkordes/tripscout/internal/store"
)

// TripServicer defines the trip operations the handlers depend on.
// Declared here, in the consumer, so tests can inject a mock.
type TripServicer interface {
	Create(ctx context.Context, in service.NewTripInput) (domain.Trip, error)
	Get(ctx context.Context, id string) (domain.Trip, error)
	List(ctx context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int, error)
	Upcoming(ctx context.Context) []domain.Trip
	Past(ctx context.Context) []domain.Trip
	Update(ctx context.Context, id string, u domain.TripUpdate) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (domain.Trip, error)
	Start(ctx context.Context, id string) (domain.Trip, error)
	Complete(ctx context.Context, id string) (domain.Trip, error)
	Recalculate(ctx context.Context, id string) (domain.Trip, error)
	SetPlannedCosts(ctx context.Context, id string, costs domain.CostBreakdown) (domain.Trip, error)
	SetActualCosts(ctx context.Context, id string, costs domain.CostBreakdown) (domain.Trip, error)
	Summary(ctx context.Context, id string, mode service.SummaryMode) (domain.BudgetSummary, error)
}

// TemplateServicer defines the template operations the handlers depend on.
type TemplateServicer interface {
	SaveFromTrip(ctx context.Context, tripID, name string) (domain.TripTemplate, error)
	List(ctx context.Context) []domain.TripTemplate
	CreateTrip(ctx context.Context, templateID, name string) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
}

// SettingsServicer defines the settings operations the handlers depend on.
type SettingsServicer interface {
	Get(ctx context.Context) domain.AppSettings
	Update(ctx context.Context, u domain.SettingsUpdate) (domain.AppSettings, error)
}

// SessionServicer defines the session operations the handlers depend on.
type SessionServicer interface {
	Get(ctx context.Context) store.Session
	SelectTrip(ctx context.Context, id string) (store.Session, error)
	Clear(ctx context.Context) store.Session
	SetActualMode(ctx context.Context, actual bool) store.Session
}

// ExportServicer writes the CSV export.
type ExportServicer interface {
	WriteCSV(ctx context.Context, w io.Writer) error
}

// HealthChecker reports the outcome of the most recent snapshot write.
type HealthChecker interface {
	LastSaveError() error
}

// Deps bundles the Server's collaborators. Nil entries are allowed in tests
// that never reach the corresponding routes.
type Deps struct {
	Trips     TripServicer
	Templates TemplateServicer
	Settings  SettingsServicer
	Session   SessionServicer
	Export    ExportServicer
	Health    HealthChecker
	OpenAPI   []byte
}

// Server holds every handler dependency.
type Server struct {
	trips     TripServicer
	templates TemplateServicer
	settings  SettingsServicer
	session   SessionServicer
	export    ExportServicer
	health    HealthChecker
	openAPI   []byte

	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	return &Server{
		trips:     d.Trips,
		templates: d.Templates,
		settings:  d.Settings,
		session:   d.Session,
		export:    d.Export,
		health:    d.Health,
		openAPI:   d.OpenAPI,
		validate:  newValidator(),
	}
}

// RegisterRoutes mounts every endpoint on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.listTrips)
		r.Post("/", s.createTrip)
		r.Get("/upcoming", s.listUpcomingTrips)
		r.Get("/past", s.listPastTrips)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getTrip)
			r.Patch("/", s.updateTrip)
			r.Delete("/", s.deleteTrip)
			r.Post("/duplicate", s.duplicateTrip)
			r.Post("/start", s.startTrip)
			r.Post("/complete", s.completeTrip)
			r.Post("/recalculate", s.recalculateTrip)
			r.Put("/costs/planned", s.putPlannedCosts)
			r.Put("/costs/actual", s.putActualCosts)
			r.Get("/summary", s.getTripSummary)
			r.Post("/template", s.saveTemplate)
		})
	})

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", s.listTemplates)
		r.Post("/{id}/trips", s.createTripFromTemplate)
		r.Delete("/{id}", s.deleteTemplate)
	})

	r.Get("/settings", s.getSettings)
	r.Patch("/settings", s.updateSettings)

	r.Get("/session", s.getSession)
	r.Put("/session/trip", s.selectSessionTrip)
	r.Delete("/session/trip", s.clearSessionTrip)
	r.Put("/session/mode", s.setSessionMode)

	r.Get("/reference/currencies", s.listCurrencies)
	r.Get("/reference/trip-types", s.listTripTypes)
	r.Get("/reference/categories", s.listCategories)

	r.Get("/export.csv", s.getExportCSV)
}

// Handler returns a standalone router with every endpoint mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return r
}
