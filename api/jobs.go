package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/techtimes/techtimes/internal/calc"
	"github.com/techtimes/techtimes/pkg/models"
	"github.com/techtimes/techtimes/pkg/repository"
)

type JobsHandler struct {
	jobRepo repository.JobRepo
}

func NewJobsHandler(jr repository.JobRepo) *JobsHandler {
	return &JobsHandler{jobRepo: jr}
}

type postJobRequest struct {
	WIPNumber  string           `json:"wipNumber"`
	VehicleReg string           `json:"vehicleReg"`
	AW         int              `json:"aw"`
	Notes      string           `json:"notes,omitempty"`
	VHCStatus  models.VHCStatus `json:"vhcStatus,omitempty"`
	CreatedAt  string           `json:"createdAt,omitempty"`
	ImageURI   string           `json:"imageUri,omitempty"`
}

// CreateJob validates at the input boundary; the storage layer does not
// re-check, so imported history may carry values these checks would reject.
func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req postJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	req.WIPNumber = strings.TrimSpace(req.WIPNumber)
	req.VehicleReg = strings.ToUpper(strings.TrimSpace(req.VehicleReg))
	if !calc.ValidateWIPNumber(req.WIPNumber) {
		http.Error(w, "wipNumber must be exactly 5 digits", http.StatusBadRequest)
		return
	}
	if req.VehicleReg == "" {
		http.Error(w, "vehicleReg is required", http.StatusBadRequest)
		return
	}
	if !calc.ValidateAW(float64(req.AW)) {
		http.Error(w, "aw must be between 0 and 100", http.StatusBadRequest)
		return
	}

	j := &models.Job{
		WIPNumber:  req.WIPNumber,
		VehicleReg: req.VehicleReg,
		AW:         req.AW,
		Notes:      req.Notes,
		VHCStatus:  req.VHCStatus,
		CreatedAt:  req.CreatedAt,
		ImageURI:   req.ImageURI,
	}
	stored, err := h.jobRepo.CreateJob(r.Context(), j)
	if err != nil {
		http.Error(w, "failed to store job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, stored, http.StatusCreated)
}

func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var jobs []models.Job
	var err error
	if month := q.Get("month"); month != "" {
		jobs, err = h.jobRepo.ListJobsByMonth(r.Context(), month)
	} else {
		jobs, err = h.jobRepo.ListJobs(r.Context())
	}
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}

	// pagination: limit and offset params
	limit := 50
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}
	offset := 0
	if o := q.Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	total := len(jobs)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	items := jobs[offset:end]
	if items == nil {
		items = []models.Job{}
	}

	writeJSON(w, map[string]any{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	}, http.StatusOK)
}

func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	j, err := h.jobRepo.GetJob(r.Context(), id)
	if err != nil {
		h.jobError(w, err)
		return
	}
	writeJSON(w, j, http.StatusOK)
}

func (h *JobsHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch models.JobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if patch.WIPNumber != nil && !calc.ValidateWIPNumber(*patch.WIPNumber) {
		http.Error(w, "wipNumber must be exactly 5 digits", http.StatusBadRequest)
		return
	}
	if patch.AW != nil && !calc.ValidateAW(float64(*patch.AW)) {
		http.Error(w, "aw must be between 0 and 100", http.StatusBadRequest)
		return
	}

	j, err := h.jobRepo.UpdateJob(r.Context(), id, patch)
	if err != nil {
		h.jobError(w, err)
		return
	}
	writeJSON(w, j, http.StatusOK)
}

func (h *JobsHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.jobRepo.DeleteJob(r.Context(), id); err != nil {
		h.jobError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"success": true}, http.StatusOK)
}

func (h *JobsHandler) jobError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrJobNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, "storage error", http.StatusInternalServerError)
}
