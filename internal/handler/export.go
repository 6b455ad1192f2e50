package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"
)

// getExportCSV handles GET /export.csv.
// The CSV is rendered into a buffer first so a failure can still produce a
// JSON error instead of a truncated download.
func (s *Server) getExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.export.WriteCSV(r.Context(), &buf); err != nil {
		serviceError(w, r, err, "export")
		return
	}

	filename := "tripscout-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
