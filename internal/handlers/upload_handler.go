package handlers

import (
	"net/http"
	"strings"

	"github.com/MGabeD/chrysus/internal/errors"
	"github.com/MGabeD/chrysus/internal/views"

	"github.com/labstack/echo/v4"
)

// UploadHandler proxies source statement PDFs to the analysis backend.
// Upload is the only mutating call on the backend contract; its only
// effect visible here is that the refreshed roster may gain a holder.
type UploadHandler struct {
	manager *views.Manager
}

func NewUploadHandler(manager *views.Manager) *UploadHandler {
	return &UploadHandler{manager: manager}
}

// Upload accepts a multipart form with a "file" field, forwards it to
// the backend, and refreshes the roster on success.
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return SendError(c, errors.UploadMissingFile)
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return SendError(c, errors.UploadNotPDF)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return SendSystemError(c, err)
	}
	defer file.Close()

	if err := h.manager.Upload(c.Request().Context(), fileHeader.Filename, file); err != nil {
		return SendError(c, errors.UploadFailed, errors.WithDetails(err.Error()))
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: fileHeader.Filename + " has been processed successfully",
	})
}
