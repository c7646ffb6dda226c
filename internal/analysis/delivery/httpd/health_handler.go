package httpd

import (
	"net/http"
	"time"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/utils"
)

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "analysis-service",
		"timestamp": time.Now().UTC(),
	})
}
