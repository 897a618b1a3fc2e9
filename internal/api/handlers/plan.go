package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ysato/planc/internal/allocation"
	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/internal/evaluation"
	"github.com/ysato/planc/internal/external/line"
	"github.com/ysato/planc/internal/rebalance"
	"github.com/ysato/planc/internal/report"
	"github.com/ysato/planc/pkg/config"
	"github.com/ysato/planc/pkg/logger"
)

// PlanHandler handles the investment plan API endpoints.
type PlanHandler struct {
	evalService *evaluation.Service
	engine      *rebalance.Engine
	base        *allocation.BaseAllocator
	notifier    contracts.NotificationSink
	config      *config.Config
	logger      *logger.Logger
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(
	evalService *evaluation.Service,
	engine *rebalance.Engine,
	base *allocation.BaseAllocator,
	notifier contracts.NotificationSink,
	cfg *config.Config,
	log *logger.Logger,
) *PlanHandler {
	return &PlanHandler{
		evalService: evalService,
		engine:      engine,
		base:        base,
		notifier:    notifier,
		config:      cfg,
		logger:      log,
	}
}

// GetAllocation returns the regular monthly allocation for a budget.
// GET /api/allocation?budget=300000
func (h *PlanHandler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	budget := contracts.Money(h.config.BaseBudget)
	if raw := r.URL.Query().Get("budget"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid budget parameter")
			return
		}
		budget = contracts.Money(parsed)
	}

	result, err := h.base.Allocate(budget)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// EvaluateRequest represents an evaluation request.
type EvaluateRequest struct {
	Budget contracts.Money `json:"budget,omitempty"`
	Notify bool            `json:"notify,omitempty"`
}

// EvaluateResponse wraps the evaluation result with delivery status.
type EvaluateResponse struct {
	Result   *contracts.EvaluationResult `json:"result"`
	Notified bool                        `json:"notified"`
}

// Evaluate runs a full evaluation and optionally pushes a notification.
// POST /api/evaluate
func (h *PlanHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req EvaluateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if req.Budget == 0 {
		req.Budget = contracts.Money(h.config.BaseBudget)
	}

	result, err := h.evalService.Evaluate(ctx, req.Budget)
	if err != nil {
		if isBadRequest(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Evaluation failed")
		respondError(w, http.StatusInternalServerError, "Evaluation failed")
		return
	}

	resp := EvaluateResponse{Result: result}
	if req.Notify {
		if err := h.notifier.Send(ctx, report.NotifyMessage(result)); err != nil {
			if !errors.Is(err, line.ErrNotConfigured) {
				h.logger.WithError(err).Error("Notification delivery failed")
			}
		} else {
			resp.Notified = true
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// RebalanceRequest represents a rebalancing request.
type RebalanceRequest struct {
	Holdings     map[string]contracts.Money `json:"holdings"`
	Strategy     string                     `json:"strategy"`
	Budget       contracts.Money            `json:"budget,omitempty"`
	MinPurchase  contracts.Money            `json:"min_purchase,omitempty"`
	ExtraCapital contracts.Money            `json:"extra_capital,omitempty"`
}

// Rebalance computes a rebalancing plan for the submitted holdings.
// POST /api/rebalance
func (h *PlanHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	var req RebalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Budget == 0 {
		req.Budget = contracts.Money(h.config.BaseBudget)
	}
	if req.MinPurchase == 0 {
		req.MinPurchase = contracts.Money(h.config.MinPurchase)
	}

	holdings := make(contracts.Holdings, len(req.Holdings))
	for k, v := range req.Holdings {
		holdings[contracts.FundID(k)] = v
	}

	plan, err := h.engine.Plan(rebalance.Request{
		Holdings:     holdings,
		BaseBudget:   req.Budget,
		Strategy:     contracts.Strategy(req.Strategy),
		MinPurchase:  req.MinPurchase,
		ExtraCapital: req.ExtraCapital,
	})
	if err != nil {
		if isBadRequest(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Rebalance planning failed")
		respondError(w, http.StatusInternalServerError, "Rebalance planning failed")
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// isBadRequest reports whether the error stems from invalid input rather
// than an internal failure.
func isBadRequest(err error) bool {
	for _, target := range []error{
		contracts.ErrInvalidBudget,
		contracts.ErrUnknownFund,
		contracts.ErrNegativeHolding,
		contracts.ErrNegativeFloor,
		contracts.ErrNegativeCapital,
		contracts.ErrInvalidStrategy,
		contracts.ErrNoHoldings,
		contracts.ErrFloorExceedsBudget,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
