package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/utils"
)

func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "file_id")
	if fileID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "File ID is required")
		return
	}

	stored, err := h.storageService.FetchFile(r.Context(), fileID)
	if err != nil {
		h.handleStorageError(w, err)
		return
	}
	defer stored.Content.Close()

	w.Header().Set("Content-Type", stored.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+stored.Name+"\"")

	// ServeContent обрабатывает Range и If-Modified-Since.
	http.ServeContent(w, r, stored.Name, stored.ModTime, stored.Content)
}
