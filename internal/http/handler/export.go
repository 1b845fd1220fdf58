package handler

import (
	"encoding/csv"
	"net/http"
	"time"

	"jobtrail/internal/auth"
	"jobtrail/internal/job"
)

type ExportHandler struct {
	Svc *job.Service
}

// CSV streams every job the caller owns, newest first, pagination disabled.
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	jobs, err := h.Svc.ExportAll(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="jobs.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "position", "company", "location", "status", "mode", "created_at", "updated_at"})
	for _, j := range jobs {
		_ = cw.Write([]string{
			j.ID,
			j.Position,
			j.Company,
			j.Location,
			j.Status,
			j.Mode,
			j.CreatedAt.Format(time.RFC3339),
			j.UpdatedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
}
