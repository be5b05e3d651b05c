package http

import (
	"net/http"
	"strings"
	"time"
)

type reportRequest struct {
	Month string `json:"month"`
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.svc.Reports.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(reports))
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	monthKey, err := reportMonth(w, r)
	if err != nil {
		return
	}
	report, err := s.svc.Reports.Generate(r.Context(), monthKey)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	monthKey, err := reportMonth(w, r)
	if err != nil {
		return
	}
	report, err := s.svc.Reports.Export(r.Context(), monthKey)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// reportMonth reads the month from the body, defaulting to the current
// month. Errors are already written to w.
func reportMonth(w http.ResponseWriter, r *http.Request) (string, error) {
	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return "", err
	}
	if strings.TrimSpace(req.Month) == "" {
		return time.Now().Format("2006-01"), nil
	}
	return strings.TrimSpace(req.Month), nil
}
