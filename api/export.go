package api

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/techtimes/techtimes/internal/export"
	"github.com/techtimes/techtimes/pkg/repository"
)

type ExportHandler struct {
	jobRepo     repository.JobRepo
	profileRepo repository.ProfileRepo
}

func NewExportHandler(jr repository.JobRepo, pr repository.ProfileRepo) *ExportHandler {
	return &ExportHandler{jobRepo: jr, profileRepo: pr}
}

// Export streams the job history in the requested format. "pdf" serves the
// printable HTML report the client's print surface turns into a PDF.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := mux.Vars(r)["format"]

	jobs, err := h.jobRepo.ListJobs(r.Context())
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	stamp := now.Format("2006-01-02")

	switch format {
	case "json":
		b, err := export.JSON(jobs, now)
		if err != nil {
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		serve(w, b, "application/json", "techtimes-backup-"+stamp+".json")
	case "csv":
		b, err := export.CSV(jobs)
		if err != nil {
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		serve(w, b, "text/csv", "techtimes-jobs-"+stamp+".csv")
	case "xlsx":
		buf, err := export.XLSX(jobs)
		if err != nil {
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		serve(w, buf.Bytes(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "techtimes-jobs-"+stamp+".xlsx")
	case "pdf":
		profile, err := h.profileRepo.GetProfile(r.Context())
		if err != nil {
			http.Error(w, "failed to read profile", http.StatusInternalServerError)
			return
		}
		b, err := export.HTML(jobs, profile, now)
		if err != nil {
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		serve(w, b, "text/html; charset=utf-8", "techtimes-report-"+stamp+".html")
	default:
		http.Error(w, "format must be json, csv, xlsx or pdf", http.StatusBadRequest)
	}
}

func serve(w http.ResponseWriter, body []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Import replays a JSON backup. Invalid entries are skipped and reported;
// a malformed payload fails the whole request.
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		http.Error(w, "failed to read request", http.StatusBadRequest)
		return
	}

	res, err := export.Import(r.Context(), body, h.jobRepo)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if res.Errors == nil {
		res.Errors = []string{}
	}

	writeJSON(w, res, http.StatusOK)
}
