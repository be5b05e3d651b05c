package http

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmin006/fintrack/internal/core"
)

type receiptImportRequest struct {
	// Image is the receipt image, base64-encoded.
	Image string `json:"image"`
	// Date overrides the transaction date; defaults to today.
	Date string `json:"date"`
}

func (s *Server) handleImportReceipt(w http.ResponseWriter, r *http.Request) {
	if s.svc.Receipts == nil {
		writeError(w, http.StatusNotImplemented, errors.New("receipt extraction not configured"))
		return
	}

	var req receiptImportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("image must be base64-encoded"))
		return
	}

	date := core.DateOf(time.Now())
	if strings.TrimSpace(req.Date) != "" {
		date, err = core.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	receipt, err := s.svc.Receipts.ExtractReceipt(r.Context(), image)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	tx, err := s.svc.Transactions.FromReceipt(r.Context(), receipt, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateDashboard(tx.Date.MonthKey())
	writeJSON(w, http.StatusCreated, tx)
}

type paymentsImportRequest struct {
	Since string `json:"since"`
}

type paymentsImportResponse struct {
	Imported int `json:"imported"`
}

func (s *Server) handleImportPayments(w http.ResponseWriter, r *http.Request) {
	if s.svc.Payments == nil {
		writeError(w, http.StatusNotImplemented, errors.New("payment detection not configured"))
		return
	}

	var req paymentsImportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	since, err := core.ParseDate(req.Since)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	imported, err := s.svc.Transactions.ImportDetected(r.Context(), s.svc.Payments, since)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// Detected transactions carry their own dates, so each affected
	// month's dashboard is dropped, not just the current one.
	for _, tx := range imported {
		s.invalidateDashboard(tx.Date.MonthKey())
	}
	writeJSON(w, http.StatusOK, paymentsImportResponse{Imported: len(imported)})
}
