package httpd

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/metadata/service"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/utils"
)

type Handler struct {
	submissionService service.SubmissionService
	logger            zerolog.Logger
}

func NewHandler(submissionService service.SubmissionService, logger zerolog.Logger) *Handler {
	return &Handler{
		submissionService: submissionService,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/submissions", func(r chi.Router) {
			r.Post("/", h.CreateSubmission)
			r.Get("/by-hash/{fingerprint}", h.FindByFingerprint)
		})

		api.Route("/works/{work_id}", func(r chi.Router) {
			r.Get("/", h.GetWork)
			r.Post("/reports", h.AttachReport)
			r.Post("/fingerprint", h.AttachFingerprint)
		})
	})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrWorkNotFound):
		utils.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidStudentID),
		errors.Is(err, service.ErrInvalidAssignment),
		errors.Is(err, service.ErrFileIDRequired),
		errors.Is(err, service.ErrInvalidReportID),
		errors.Is(err, service.ErrInvalidFingerprint):
		utils.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Service error")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}
