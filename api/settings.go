package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/techtimes/techtimes/pkg/models"
	"github.com/techtimes/techtimes/pkg/repository"
)

// SettingsHandler serves the singleton records: schedule, settings, profile,
// and the per-month absence list.
type SettingsHandler struct {
	scheduleRepo repository.ScheduleRepo
	absenceRepo  repository.AbsenceRepo
	settingsRepo repository.SettingsRepo
	profileRepo  repository.ProfileRepo
}

func NewSettingsHandler(scr repository.ScheduleRepo, ar repository.AbsenceRepo, ser repository.SettingsRepo, pr repository.ProfileRepo) *SettingsHandler {
	return &SettingsHandler{scheduleRepo: scr, absenceRepo: ar, settingsRepo: ser, profileRepo: pr}
}

func (h *SettingsHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	s, err := h.scheduleRepo.GetSchedule(r.Context())
	if err != nil {
		http.Error(w, "failed to read schedule", http.StatusInternalServerError)
		return
	}
	writeJSON(w, s, http.StatusOK)
}

func (h *SettingsHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var patch models.SchedulePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	s, err := h.scheduleRepo.UpdateSchedule(r.Context(), patch)
	if err != nil {
		http.Error(w, "failed to update schedule", http.StatusInternalServerError)
		return
	}
	writeJSON(w, s, http.StatusOK)
}

func (h *SettingsHandler) ListAbsences(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	absences, err := h.absenceRepo.ListAbsences(r.Context(), month)
	if err != nil {
		http.Error(w, "failed to list absences", http.StatusInternalServerError)
		return
	}
	if absences == nil {
		absences = []models.Absence{}
	}
	writeJSON(w, map[string]any{"month": month, "items": absences}, http.StatusOK)
}

func (h *SettingsHandler) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	var a models.Absence
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if len(a.AbsenceDate) != 10 {
		http.Error(w, "absenceDate must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if a.DeductionType != "" && a.DeductionType != models.DeductTarget && a.DeductionType != models.DeductAvailable {
		http.Error(w, "deductionType must be target or available", http.StatusBadRequest)
		return
	}

	stored, err := h.absenceRepo.CreateAbsence(r.Context(), &a)
	if err != nil {
		http.Error(w, "failed to store absence", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stored, http.StatusCreated)
}

func (h *SettingsHandler) DeleteAbsence(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.absenceRepo.DeleteAbsence(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrAbsenceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]bool{"success": true}, http.StatusOK)
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settingsRepo.GetSettings(r.Context())
	if err != nil {
		http.Error(w, "failed to read settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, s, http.StatusOK)
}

func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch models.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	s, err := h.settingsRepo.UpdateSettings(r.Context(), patch)
	if err != nil {
		http.Error(w, "failed to update settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, s, http.StatusOK)
}

func (h *SettingsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profileRepo.GetProfile(r.Context())
	if err != nil {
		http.Error(w, "failed to read profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, p, http.StatusOK)
}

func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p models.TechnicianProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.profileRepo.UpdateProfile(r.Context(), p); err != nil {
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, p, http.StatusOK)
}
