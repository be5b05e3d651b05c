package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmin006/fintrack/internal/core"
)

type transactionRequest struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Note     string  `json:"note"`
	Type     string  `json:"type"`
	IsNeed   bool    `json:"isNeed"`
}

func (req transactionRequest) toTransaction() (core.Transaction, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	txType := core.TransactionType(strings.ToLower(strings.TrimSpace(req.Type)))
	if req.Type == "" {
		txType = core.Expense
	}
	return core.Transaction{
		Title:    strings.TrimSpace(req.Title),
		Amount:   req.Amount,
		Category: strings.TrimSpace(req.Category),
		Date:     date,
		Note:     req.Note,
		Type:     txType,
		IsNeed:   req.IsNeed,
	}, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.svc.Transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(txs))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	tx, err := req.toTransaction()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := s.svc.Transactions.Create(r.Context(), tx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateDashboard(created.Date.MonthKey())
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.svc.Transactions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if tx == nil {
		writeError(w, http.StatusNotFound, errors.New("transaction not found"))
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	tx, err := req.toTransaction()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	tx.ID = r.PathValue("id")

	if err := s.svc.Transactions.Update(r.Context(), tx); err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeDomainError(w, err)
		return
	}
	s.invalidateDashboard(tx.Date.MonthKey())
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Fetch first so the affected month's cache can be dropped.
	tx, err := s.svc.Transactions.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if tx == nil {
		writeError(w, http.StatusNotFound, errors.New("transaction not found"))
		return
	}

	if err := s.svc.Transactions.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateDashboard(tx.Date.MonthKey())
	writeJSON(w, http.StatusNoContent, nil)
}

type overrideRequest struct {
	Label string `json:"label"`
}

func (s *Server) handleOverrideClassification(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	label := core.NeedWantLabel(strings.ToLower(strings.TrimSpace(req.Label)))
	record, err := s.svc.Classify.Override(r.Context(), r.PathValue("id"), label)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleListClassifications(w http.ResponseWriter, r *http.Request) {
	labels, err := s.svc.Classify.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(labels))
}
