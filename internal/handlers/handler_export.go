package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/middleware"
	"github.com/SscSPs/bookkeeping_core/internal/utils/export"
	"github.com/gin-gonic/gin"
)

const zipContentType = "application/zip"

// exportHandler serves whole-ledger downloads.
type exportHandler struct {
	exportService portssvc.LedgerExportSvc
	now           func() time.Time
}

// RegisterExportRoutes registers the export and template downloads.
func RegisterExportRoutes(rg *gin.RouterGroup, exportService portssvc.LedgerExportSvc) {
	h := &exportHandler{exportService: exportService, now: time.Now}

	rg.GET("/export", h.exportLedger)
	rg.GET("/template", h.downloadTemplate)
}

// exportLedger handles GET /export.
func (h *exportHandler) exportLedger(c *gin.Context) {
	snapshot, err := h.exportService.ExportLedger(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("ledger_export_%s.zip", h.now().Format("20060102_150405"))
	h.sendArchive(c, filename, snapshot)
}

// downloadTemplate handles GET /template.
func (h *exportHandler) downloadTemplate(c *gin.Context) {
	h.sendArchive(c, "ledger_template.zip", h.exportService.TemplateLedger())
}

func (h *exportHandler) sendArchive(c *gin.Context, filename string, snapshot domain.LedgerSnapshot) {
	logger := middleware.GetLoggerFromContext(c)

	var buf bytes.Buffer
	if err := export.WriteArchive(&buf, snapshot); err != nil {
		logger.Error("Failed to build ledger archive", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, zipContentType, buf.Bytes())
}
