package handler

import (
	"net/http"

	"github.com/pkordes/tripscout/internal/domain"
)

type categoryResponse struct {
	Key   domain.Category `json:"key"`
	Label string          `json:"label"`
}

func (s *Server) listCurrencies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.Currencies())
}

func (s *Server) listTripTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.TripTypes())
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	cats := domain.Categories()
	out := make([]categoryResponse, len(cats))
	for i, c := range cats {
		out[i] = categoryResponse{Key: c, Label: c.Label()}
	}
	writeJSON(w, http.StatusOK, out)
}
