package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/docufill/backend/internal/handler/upload"
	middlewarePkg "github.com/docufill/backend/internal/middleware"
	"github.com/docufill/backend/internal/service/docfill"
	"github.com/docufill/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(docSvc *docfill.Service, maxUploadBytes int64) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	uploadHandler := upload.New(docSvc, maxUploadBytes)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		uploadHandler.RegisterRoutes(api)
	})

	return r
}
