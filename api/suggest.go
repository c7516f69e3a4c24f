package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/techtimes/techtimes/internal/scan"
	"github.com/techtimes/techtimes/internal/suggest"
	"github.com/techtimes/techtimes/pkg/repository"
)

type SuggestHandler struct {
	jobRepo repository.JobRepo
	scanner *scan.Engine
}

func NewSuggestHandler(jr repository.JobRepo, scanner *scan.Engine) *SuggestHandler {
	return &SuggestHandler{jobRepo: jr, scanner: scanner}
}

func (h *SuggestHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	field := suggest.Field(q.Get("field"))
	if field != suggest.FieldWIP && field != suggest.FieldReg {
		http.Error(w, "field must be wip or reg", http.StatusBadRequest)
		return
	}

	history, err := h.jobRepo.ListJobs(r.Context())
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}

	items := suggest.Suggestions(q.Get("q"), field, history)

	// some surfaces show a shorter list
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v < len(items) {
			items = items[:v]
		}
	}
	if items == nil {
		items = []suggest.Suggestion{}
	}

	writeJSON(w, map[string]any{"items": items}, http.StatusOK)
}

type correctionRequest struct {
	WIPNumber  *string `json:"wipNumber,omitempty"`
	VehicleReg *string `json:"vehicleReg,omitempty"`
	AW         *int    `json:"aw,omitempty"`
}

type correctionResponse struct {
	WIPNumber  *suggest.Correction   `json:"wipNumber,omitempty"`
	VehicleReg *suggest.Correction   `json:"vehicleReg,omitempty"`
	AW         *suggest.AWCorrection `json:"aw,omitempty"`
}

// Corrections validates whichever fields the request carries and returns a
// correction per field.
func (h *SuggestHandler) Corrections(w http.ResponseWriter, r *http.Request) {
	var req correctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	var resp correctionResponse
	if req.WIPNumber != nil {
		c := suggest.CorrectWIP(*req.WIPNumber)
		resp.WIPNumber = &c
	}
	if req.VehicleReg != nil {
		history, err := h.jobRepo.ListJobs(r.Context())
		if err != nil {
			http.Error(w, "failed to list jobs", http.StatusInternalServerError)
			return
		}
		c := suggest.CorrectReg(*req.VehicleReg, history)
		resp.VehicleReg = &c
	}
	if req.AW != nil {
		c := suggest.CorrectAW(*req.AW)
		resp.AW = &c
	}

	writeJSON(w, resp, http.StatusOK)
}

type parseRequest struct {
	Text string `json:"text"`
}

func (h *SuggestHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	history, err := h.jobRepo.ListJobs(r.Context())
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, suggest.ParseInput(req.Text, history), http.StatusOK)
}

// Scan is the model-assisted variant of Parse. Offline mode answers 503 with
// a fixed message and is never retried server-side.
func (h *SuggestHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	parsed, err := h.scanner.Extract(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, scan.ErrScanUnavailable) {
			http.Error(w, scan.ErrScanUnavailable.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "scan failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, parsed, http.StatusOK)
}
