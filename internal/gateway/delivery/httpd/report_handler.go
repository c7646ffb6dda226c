package httpd

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/models"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/service"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/utils"
)

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "work_id")
	if workID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "Work ID is required")
		return
	}

	view, err := h.gatewayService.GetReport(r.Context(), workID)
	if err != nil {
		// Отчёта ещё нет: это не ошибка, клиент опрашивает дальше.
		if errors.Is(err, service.ErrReportPending) {
			utils.WriteJSON(w, http.StatusAccepted, models.PendingResponse{
				WorkID: workID,
				Status: "pending",
			})
			return
		}
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, view)
}
