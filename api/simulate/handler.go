// Package simulate is the HTTP boundary of the simulation engine. It maps
// the dashboard's human-readable option labels onto engine strategy kinds,
// runs one engine per request and serializes the metrics report.
package simulate

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/registrarlab/regsim/core/allocator"
	"github.com/registrarlab/regsim/core/engine"
	"github.com/registrarlab/regsim/core/logger"
	"github.com/registrarlab/regsim/core/metrics"
	"github.com/registrarlab/regsim/core/scheduler"
	"github.com/registrarlab/regsim/core/workload"
	"github.com/registrarlab/regsim/internal/eventbus"
)

// EngineFactory builds a fresh engine per request; concurrent simulations
// must never share a roster.
type EngineFactory func(sched scheduler.Kind, alloc allocator.Kind) *engine.Engine

// Request is the JSON body of POST /api/simulate.
type Request struct {
	Scheduler       string `json:"scheduler"`
	Allocator       string `json:"allocator"`
	Scenario        string `json:"scenario"`
	DurationMinutes int    `json:"duration_minutes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var schedulerLabels = map[string]scheduler.Kind{
	"FCFS":                    scheduler.KindFCFS,
	"Weighted Priority-Based": scheduler.KindWeighted,
	"fcfs":                    scheduler.KindFCFS,
	"weighted":                scheduler.KindWeighted,
}

var allocatorLabels = map[string]allocator.Kind{
	"College-Based Assignment": allocator.KindCollegeBased,
	"Workload-Based Assignment with College Affiliation": allocator.KindWorkloadBased,
	"Pooled Scheduling":     allocator.KindPooled,
	"Quota-Free Allocation": allocator.KindQuotaFree,
	"college_based":         allocator.KindCollegeBased,
	"workload_based":        allocator.KindWorkloadBased,
	"pooled":                allocator.KindPooled,
	"quota_free":            allocator.KindQuotaFree,
}

var scenarioLabels = map[string]workload.Scenario{
	"Baseline":           workload.ScenarioBaseline,
	"Staff Absence":      workload.ScenarioStaffAbsence,
	"Peak Urgency":       workload.ScenarioPeakUrgency,
	"Workload Imbalance": workload.ScenarioWorkloadImbalance,
	"baseline":           workload.ScenarioBaseline,
	"staff_absence":      workload.ScenarioStaffAbsence,
	"peak_urgency":       workload.ScenarioPeakUrgency,
	"workload_imbalance": workload.ScenarioWorkloadImbalance,
}

// Handler serves POST /api/simulate.
type Handler struct {
	engines          EngineFactory
	bus              *eventbus.Bus[metrics.RunResult]
	log              logger.Logger
	defaultScheduler scheduler.Kind
	defaultAllocator allocator.Kind
}

// NewHandler wires the simulate endpoint. The default kinds apply when a
// request omits or mislabels an option, per the boundary's permissive
// contract.
func NewHandler(engines EngineFactory, bus *eventbus.Bus[metrics.RunResult], log logger.Logger, defaultScheduler scheduler.Kind, defaultAllocator allocator.Kind) *Handler {
	return &Handler{
		engines:          engines,
		bus:              bus,
		log:              log,
		defaultScheduler: defaultScheduler,
		defaultAllocator: defaultAllocator,
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	schedKind, ok := schedulerLabels[req.Scheduler]
	if !ok {
		schedKind = h.defaultScheduler
	}
	allocKind, ok := allocatorLabels[req.Allocator]
	if !ok {
		allocKind = h.defaultAllocator
	}
	scenario, ok := scenarioLabels[req.Scenario]
	if !ok {
		scenario = workload.ScenarioBaseline
	}

	eng := h.engines(schedKind, allocKind)
	started := time.Now()
	rep, err := eng.Run(scenario, req.DurationMinutes)
	if err != nil {
		// Engine errors must never take the service down; report the run as
		// failed and move on.
		h.log.Errorf("simulation failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	if h.bus != nil {
		h.bus.Publish(metrics.RunResult{
			Report:    rep,
			Scheduler: string(schedKind),
			Allocator: string(allocKind),
			Generated: eng.Generated(),
			Elapsed:   time.Since(started),
			Time:      time.Now(),
		})
	}
	writeJSON(w, http.StatusOK, rep)
}

// NewHealthHandler returns the liveness endpoint.
func NewHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "backend is running"})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
