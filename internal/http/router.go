package http

import (
	"net/http"

	"jobtrail/internal/auth"
	"jobtrail/internal/config"
	"jobtrail/internal/http/handler"
	mw "jobtrail/internal/http/middleware"
	"jobtrail/internal/job"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{}
	r.With(auth.RequireAuth(jwtSvc)).Get("/me", me.Me)

	jobSvc := &job.Service{Store: &job.GormStore{DB: db}}
	jobH := &handler.JobHandler{Svc: jobSvc}
	jobRead := &handler.JobReadHandler{Svc: jobSvc}
	exportH := &handler.ExportHandler{Svc: jobSvc}

	r.Route("/jobs", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Post("/", jobH.Create)
		r.Get("/", jobRead.List)

		r.Get("/stats", jobRead.Stats)
		r.Get("/stats/monthly", jobRead.MonthlyTrend)
		r.Get("/export.csv", exportH.CSV)

		r.Post("/maintenance/normalize-statuses", jobH.RepairStatuses)

		r.Get("/{id}", jobRead.Get)
		r.Put("/{id}", jobH.Update)
		r.Delete("/{id}", jobH.Delete)
	})

	return r
}
