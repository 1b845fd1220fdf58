package handler

import (
	"net/http"
	"strconv"
	"strings"

	"jobtrail/internal/auth"
	"jobtrail/internal/job"

	"github.com/go-chi/chi/v5"
)

type JobReadHandler struct {
	Svc *job.Service
}

type listResponseDTO struct {
	Jobs       []jobDTO `json:"jobs"`
	TotalCount int64    `json:"total_count"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
}

func (h *JobReadHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	q := r.URL.Query()

	page := 1
	if v := strings.TrimSpace(q.Get("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}

	pageSize := job.DefaultPageSize
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			pageSize = n
		}
	}

	res := h.Svc.List(r.Context(), uid, job.ListParams{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Page:     page,
		PageSize: pageSize,
	})

	out := listResponseDTO{
		Jobs:       make([]jobDTO, 0, len(res.Jobs)),
		TotalCount: res.TotalCount,
		Page:       res.Page,
		TotalPages: res.TotalPages,
	}
	for _, j := range res.Jobs {
		out.Jobs = append(out.Jobs, toDTO(j))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *JobReadHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	j, err := h.Svc.Get(r.Context(), uid, id)
	if err != nil {
		writeJobErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDTO(*j))
}

func (h *JobReadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	counts, err := h.Svc.StatusCounts(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *JobReadHandler) MonthlyTrend(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	trend, err := h.Svc.MonthlyTrend(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}
