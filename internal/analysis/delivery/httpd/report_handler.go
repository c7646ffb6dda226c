package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/utils"
)

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "report_id")
	if reportID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "Report ID is required")
		return
	}

	report, err := h.analysisService.GetReport(r.Context(), reportID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, report)
}
