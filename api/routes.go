package api

import (
	"github.com/gorilla/mux"

	"github.com/techtimes/techtimes/internal/config"
	"github.com/techtimes/techtimes/internal/db"
	"github.com/techtimes/techtimes/internal/repository/sqlite"
	"github.com/techtimes/techtimes/internal/scan"
	"github.com/techtimes/techtimes/internal/stats"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB, scanner *scan.Engine) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(database, nil)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	jobsHandler := NewJobsHandler(repo)
	settingsHandler := NewSettingsHandler(repo, repo, repo, repo)
	statsHandler := NewStatsHandler(stats.NewService(repo, repo, repo, repo), repo, repo)
	suggestHandler := NewSuggestHandler(repo, scanner)
	exportHandler := NewExportHandler(repo, repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/unlock", authHandler.Unlock).Methods("POST")

	// API v1 protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	apiV1.HandleFunc("/auth/pin", authHandler.SetPIN).Methods("POST")

	// Jobs
	apiV1.HandleFunc("/jobs", jobsHandler.CreateJob).Methods("POST")
	apiV1.HandleFunc("/jobs", jobsHandler.ListJobs).Methods("GET")
	apiV1.HandleFunc("/jobs/{id}", jobsHandler.GetJob).Methods("GET")
	apiV1.HandleFunc("/jobs/{id}", jobsHandler.UpdateJob).Methods("PATCH")
	apiV1.HandleFunc("/jobs/{id}", jobsHandler.DeleteJob).Methods("DELETE")

	// Schedule, absences, settings, profile
	apiV1.HandleFunc("/schedule", settingsHandler.GetSchedule).Methods("GET")
	apiV1.HandleFunc("/schedule", settingsHandler.UpdateSchedule).Methods("PATCH")
	apiV1.HandleFunc("/absences", settingsHandler.ListAbsences).Methods("GET")
	apiV1.HandleFunc("/absences", settingsHandler.CreateAbsence).Methods("POST")
	apiV1.HandleFunc("/absences/{id}", settingsHandler.DeleteAbsence).Methods("DELETE")
	apiV1.HandleFunc("/settings", settingsHandler.GetSettings).Methods("GET")
	apiV1.HandleFunc("/settings", settingsHandler.UpdateSettings).Methods("PATCH")
	apiV1.HandleFunc("/profile", settingsHandler.GetProfile).Methods("GET")
	apiV1.HandleFunc("/profile", settingsHandler.UpdateProfile).Methods("PUT")

	// Stats and streaks
	apiV1.HandleFunc("/stats/monthly", statsHandler.Monthly).Methods("GET")
	apiV1.HandleFunc("/stats/target", statsHandler.Target).Methods("GET")
	apiV1.HandleFunc("/stats/efficiency", statsHandler.Efficiency).Methods("GET")
	apiV1.HandleFunc("/stats/alltime", statsHandler.AllTime).Methods("GET")
	apiV1.HandleFunc("/stats/period", statsHandler.Period).Methods("GET")
	apiV1.HandleFunc("/streaks", statsHandler.Streaks).Methods("GET")

	// Suggestions, corrections, parsing
	apiV1.HandleFunc("/suggestions", suggestHandler.Suggestions).Methods("GET")
	apiV1.HandleFunc("/corrections", suggestHandler.Corrections).Methods("POST")
	apiV1.HandleFunc("/parse", suggestHandler.Parse).Methods("POST")
	apiV1.HandleFunc("/scan", suggestHandler.Scan).Methods("POST")

	// Export and import
	apiV1.HandleFunc("/export/{format}", exportHandler.Export).Methods("GET")
	apiV1.HandleFunc("/import", exportHandler.Import).Methods("POST")

	return r
}
