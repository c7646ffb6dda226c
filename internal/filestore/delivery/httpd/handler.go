package httpd

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/filestore/service"
)

type Handler struct {
	storageService service.StorageService
	logger         zerolog.Logger
}

func NewHandler(storageService service.StorageService, logger zerolog.Logger) *Handler {
	return &Handler{
		storageService: storageService,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1/files", func(r chi.Router) {
		r.Post("/", h.UploadFile)
		r.Get("/{file_id}", h.DownloadFile)
	})
}
