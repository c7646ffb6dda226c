package httpd

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/service"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/utils"
)

type Handler struct {
	gatewayService service.GatewayService
	fileProxy      http.Handler
	maxUploadSize  int64
	logger         zerolog.Logger
}

func NewHandler(gatewayService service.GatewayService, fileProxy http.Handler, maxUploadSize int64, logger zerolog.Logger) *Handler {
	return &Handler{
		gatewayService: gatewayService,
		fileProxy:      fileProxy,
		maxUploadSize:  maxUploadSize,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Post("/submit-work", h.SubmitWork)
		api.Get("/works/{work_id}/reports", h.GetReport)
		api.Handle("/files/*", h.fileProxy)
	})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	var upstreamErr *service.UpstreamError

	switch {
	case errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, service.ErrInvalidStudentID),
		errors.Is(err, service.ErrInvalidAssignment):
		utils.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrWorkNotFound),
		errors.Is(err, service.ErrReportNotFound):
		utils.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.As(err, &upstreamErr):
		h.logger.Error().Err(err).Str("dependency", upstreamErr.Dependency).Msg("Upstream failure")
		utils.ErrorResponse(w, http.StatusBadGateway, "upstream failure: "+upstreamErr.Dependency)
	default:
		h.logger.Error().Err(err).Msg("Service error")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}
