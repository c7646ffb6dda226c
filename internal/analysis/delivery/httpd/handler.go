package httpd

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/service"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/service/extract"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/utils"
)

type Handler struct {
	analysisService service.AnalysisService
	logger          zerolog.Logger
}

func NewHandler(analysisService service.AnalysisService, logger zerolog.Logger) *Handler {
	return &Handler{
		analysisService: analysisService,
		logger:          logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Post("/analyze", h.Analyze)
		api.Get("/reports/{report_id}", h.GetReport)
	})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrFileNotFound),
		errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, service.ErrWorkNotFound):
		utils.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, extract.ErrUnsupportedFormat),
		errors.Is(err, service.ErrInvalidWorkID),
		errors.Is(err, service.ErrInvalidFileID):
		utils.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrLedgerUnavailable):
		utils.ErrorResponse(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Service error")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}
