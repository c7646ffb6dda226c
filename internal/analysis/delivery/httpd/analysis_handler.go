package httpd

import (
	"context"
	"net/http"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/models"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/utils"
)

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Отключение вызывающей стороны не должно обрывать анализ:
	// прогон идёт на контексте без отмены запроса.
	response, err := h.analysisService.Analyze(context.WithoutCancel(r.Context()), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, response)
}
