package handler

import "net/http"

type selectTripRequest struct {
	TripID string `json:"tripId" validate:"required"`
}

type setModeRequest struct {
	Actual *bool `json:"actual" validate:"required"`
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Get(r.Context()))
}

// selectSessionTrip handles PUT /session/trip.
func (s *Server) selectSessionTrip(w http.ResponseWriter, r *http.Request) {
	var req selectTripRequest
	if !s.decodeBody(w, r, &req, false) {
		return
	}
	sess, err := s.session.SelectTrip(r.Context(), req.TripID)
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) clearSessionTrip(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Clear(r.Context()))
}

// setSessionMode handles PUT /session/mode.
func (s *Server) setSessionMode(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if !s.decodeBody(w, r, &req, false) {
		return
	}
	writeJSON(w, http.StatusOK, s.session.SetActualMode(r.Context(), *req.Actual))
}
