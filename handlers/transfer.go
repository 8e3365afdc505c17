package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marga/middleware"
	"marga/services/transfer"
	"marga/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportHandler handles POST /api/import: a multipart upload of a caseload
// workbook, field name "importFile".
func (h *Handler) ImportHandler(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required."})
		return
	}

	fileHeader, err := c.FormFile("importFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file uploaded."})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file uploaded."})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		utils.GetLogger().Error("failed to read import upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An internal server error occurred while importing."})
		return
	}

	result, err := h.Importer.Import(c.Request.Context(), data, caller)
	if err != nil {
		utils.GetLogger().Error("import failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An internal server error occurred while importing."})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportHandler handles GET /api/export: the whole practice as an xlsx
// attachment.
func (h *Handler) ExportHandler(c *gin.Context) {
	data, err := h.Exporter.Export(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An internal server error occurred."})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+transfer.ExportFilename()+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
