package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type saveTemplateRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type templateTripRequest struct {
	Name string `json:"name,omitempty" validate:"max=200"`
}

// saveTemplate handles POST /trips/{id}/template.
func (s *Server) saveTemplate(w http.ResponseWriter, r *http.Request) {
	var req saveTemplateRequest
	if !s.decodeBody(w, r, &req, false) {
		return
	}
	tpl, err := s.templates.SaveFromTrip(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

// listTemplates handles GET /templates.
func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.templates.List(r.Context()))
}

// createTripFromTemplate handles POST /templates/{id}/trips.
// The body is optional; without a name the template's name is used.
func (s *Server) createTripFromTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateTripRequest
	if !s.decodeBody(w, r, &req, true) {
		return
	}
	trip, err := s.templates.CreateTrip(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		serviceError(w, r, err, "template")
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// deleteTemplate handles DELETE /templates/{id}.
func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serviceError(w, r, err, "template")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
