package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// NewRouter mounts the survey analysis API
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", h.HandleUpload)
		r.Post("/upload/departments", h.HandleDepartmentUpload)
		r.Post("/analyze", h.HandleAnalyze)
		r.Get("/results", h.HandleResults)
		r.Get("/distribution", h.HandleDistribution)
		r.Post("/classify", h.HandleClassify)
		r.Put("/questions/category", h.HandleSetCategory)
		r.Put("/comments", h.HandleUpsertComment)
		r.Get("/comments", h.HandleComments)
		r.Delete("/session", h.HandleReset)
	})

	return r
}
