package httpd

import (
	"io"
	"net/http"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/utils"
)

func (h *Handler) SubmitWork(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
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
		utils.ErrorResponse(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	studentID := r.FormValue("studentId")
	assignmentID := r.FormValue("assignmentId")

	response, err := h.gatewayService.SubmitWork(r.Context(), header.Filename, content, studentID, assignmentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, response)
}
