package handler

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// getHealth handles GET /healthz.
// It returns 200 {"status":"ok"} while snapshots are being saved and
// 503 {"status":"degraded"} after the most recent save failed.
func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	if s.health != nil {
		if err := s.health.LastSaveError(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Error: err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// getOpenAPI handles GET /openapi.yaml.
func (s *Server) getOpenAPI(w http.ResponseWriter, _ *http.Request) {
	if len(s.openAPI) == 0 {
		notFound(w, "openapi document not bundled")
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(s.openAPI)
}
