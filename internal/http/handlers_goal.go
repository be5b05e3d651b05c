package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/charmin006/fintrack/internal/core"
)

type goalRequest struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Deadline      string  `json:"deadline"`
}

// goalResponse augments a goal with its weekly savings target.
type goalResponse struct {
	core.SavingsGoal
	WeeklyTarget float64 `json:"weeklyTarget"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.svc.Goals.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	now := time.Now()
	resp := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, goalResponse{
			SavingsGoal:  g,
			WeeklyTarget: core.RoundAmount(g.WeeklyTarget(now)),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	deadline, err := core.ParseDate(req.Deadline)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	goal, err := s.svc.Goals.Create(r.Context(), core.SavingsGoal{
		Name:          strings.TrimSpace(req.Name),
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Goals.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type contributeRequest struct {
	Amount float64 `json:"amount"`
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	var req contributeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	goal, err := s.svc.Goals.Contribute(r.Context(), r.PathValue("id"), req.Amount)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}
