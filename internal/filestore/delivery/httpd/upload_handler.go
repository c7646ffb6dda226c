package httpd

import (
	"errors"
	"io"
	"net/http"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/filestore/service"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/utils"
)

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	response, err := h.storageService.StoreFile(r.Context(), header.Filename, content)
	if err != nil {
		h.handleStorageError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) handleStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyFile):
		utils.ErrorResponse(w, http.StatusBadRequest, "File is empty")
	case errors.Is(err, service.ErrFileTooLarge):
		utils.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrFileNotFound):
		utils.ErrorResponse(w, http.StatusNotFound, "File not found")
	default:
		h.logger.Error().Err(err).Msg("Storage error")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}
