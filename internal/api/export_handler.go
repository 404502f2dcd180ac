package api

import (
	"errors"
	"net/http"

	"ironlog/meso-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler holds the export service dependency.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

type ExportResponse struct {
	DownloadURL string `json:"downloadUrl"`
	ObjectKey   string `json:"objectKey"`
	Records     int    `json:"records"`
}

// Export godoc
// @Summary Export workout history
// @Description Serializes the date range as CSV or JSON, uploads it to object storage, and returns a presigned download URL.
// @Tags Export
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param format query string false "csv or json (default csv)"
// @Success 200 {object} ExportResponse
// @Failure 400 {object} gin.H "Invalid range or format"
// @Failure 404 {object} gin.H "Nothing to export"
// @Router /export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "from must be YYYY-MM-DD")
		return
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "to must be YYYY-MM-DD")
		return
	}

	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	result, err := h.exportService.Export(c.Request.Context(), userID, from, to, format)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRange),
			errors.Is(err, service.ErrRangeTooLarge),
			errors.Is(err, service.ErrInvalidFormat):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNothingToExport):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to export workouts")
		}
		return
	}

	c.JSON(http.StatusOK, ExportResponse{
		DownloadURL: result.DownloadURL,
		ObjectKey:   result.ObjectKey,
		Records:     result.Records,
	})
}
