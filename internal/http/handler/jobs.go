package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"jobtrail/internal/auth"
	"jobtrail/internal/job"

	"github.com/go-chi/chi/v5"
)

type JobHandler struct {
	Svc *job.Service
}

type jobReq struct {
	Position string `json:"position"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Status   string `json:"status"`
	Mode     string `json:"mode"`
}

func (r jobReq) fields() job.Fields {
	return job.Fields{
		Position: r.Position,
		Company:  r.Company,
		Location: r.Location,
		Status:   r.Status,
		Mode:     r.Mode,
	}
}

type jobDTO struct {
	ID        string    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Position  string    `json:"position"`
	Company   string    `json:"company"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDTO(j job.Job) jobDTO {
	return jobDTO{
		ID:        j.ID,
		UserID:    j.UserID,
		Position:  j.Position,
		Company:   j.Company,
		Location:  j.Location,
		Status:    j.Status,
		Mode:      j.Mode,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJobErr maps the core's error taxonomy onto status codes. Validation
// failures answer field-level messages; not-found and foreign-owner lookups
// are indistinguishable on purpose.
func writeJobErr(w http.ResponseWriter, err error) {
	var ve *job.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": ve.Fields})
	case errors.Is(err, job.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, job.ErrUnauthenticated):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req jobReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	j, err := h.Svc.Create(r.Context(), uid, req.fields())
	if err != nil {
		writeJobErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDTO(*j))
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req jobReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	j, err := h.Svc.Update(r.Context(), uid, id, req.fields())
	if err != nil {
		writeJobErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDTO(*j))
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	j, err := h.Svc.Delete(r.Context(), uid, id)
	if err != nil {
		writeJobErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDTO(*j))
}

// RepairStatuses runs the deliberate status cleanup for the caller's own
// records and reports how many rows changed.
func (h *JobHandler) RepairStatuses(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	n, err := h.Svc.RepairStatuses(r.Context(), uid)
	if err != nil {
		writeJobErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"repaired": n})
}
