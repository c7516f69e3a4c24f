package api

import (
	"net/http"
	"time"

	"github.com/techtimes/techtimes/internal/stats"
	"github.com/techtimes/techtimes/internal/streak"
	"github.com/techtimes/techtimes/pkg/repository"
)

type StatsHandler struct {
	stats        *stats.Service
	jobRepo      repository.JobRepo
	settingsRepo repository.SettingsRepo
}

func NewStatsHandler(s *stats.Service, jr repository.JobRepo, sr repository.SettingsRepo) *StatsHandler {
	return &StatsHandler{stats: s, jobRepo: jr, settingsRepo: sr}
}

func monthParam(r *http.Request) string {
	if m := r.URL.Query().Get("month"); m != "" {
		return m
	}
	return time.Now().Format("2006-01")
}

func (h *StatsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	ms, err := h.stats.Monthly(r.Context(), monthParam(r))
	if err != nil {
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, ms, http.StatusOK)
}

func (h *StatsHandler) Target(w http.ResponseWriter, r *http.Request) {
	td, err := h.stats.Target(r.Context(), monthParam(r))
	if err != nil {
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, td, http.StatusOK)
}

func (h *StatsHandler) Efficiency(w http.ResponseWriter, r *http.Request) {
	ed, err := h.stats.Efficiency(r.Context(), monthParam(r))
	if err != nil {
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, ed, http.StatusOK)
}

func (h *StatsHandler) AllTime(w http.ResponseWriter, r *http.Request) {
	at, err := h.stats.AllTime(r.Context())
	if err != nil {
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, at, http.StatusOK)
}

func (h *StatsHandler) Period(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	switch period {
	case "today", "week", "month":
	default:
		http.Error(w, "period must be today, week or month", http.StatusBadRequest)
		return
	}

	ps, err := h.stats.Period(r.Context(), period)
	if err != nil {
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, ps, http.StatusOK)
}

type streaksResponse struct {
	Enabled bool `json:"enabled"`
	streak.StreakData
}

func (h *StatsHandler) Streaks(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsRepo.GetSettings(r.Context())
	if err != nil {
		http.Error(w, "failed to read settings", http.StatusInternalServerError)
		return
	}
	if !settings.StreaksEnabled {
		writeJSON(w, streaksResponse{Enabled: false}, http.StatusOK)
		return
	}

	jobs, err := h.jobRepo.ListJobs(r.Context())
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}

	data := streak.Calculate(time.Now(), jobs, settings.WeeklyStreakTarget)
	writeJSON(w, streaksResponse{Enabled: true, StreakData: data}, http.StatusOK)
}
