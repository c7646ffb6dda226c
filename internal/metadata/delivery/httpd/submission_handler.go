package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/metadata/models"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/utils"
)

func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubmissionRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.submissionService.CreateSubmission(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, response)
}

func (h *Handler) GetWork(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "work_id")
	if workID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "Work ID is required")
		return
	}

	work, err := h.submissionService.GetWork(r.Context(), workID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, work)
}

func (h *Handler) AttachReport(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "work_id")

	var req models.AttachReportRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.submissionService.AttachReport(r.Context(), workID, req.ReportID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"workId": workID, "reportId": req.ReportID})
}

func (h *Handler) AttachFingerprint(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "work_id")

	var req models.AttachFingerprintRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.submissionService.AttachFingerprint(r.Context(), workID, req.Fingerprint); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"workId": workID})
}

func (h *Handler) FindByFingerprint(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")

	matches, err := h.submissionService.FindByFingerprint(r.Context(), fingerprint)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, matches)
}
