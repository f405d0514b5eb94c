package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"github.com/heybosswtf/heyboss-backend/internal/dto"
	"github.com/heybosswtf/heyboss-backend/internal/service"
)

// ReportHandler принимает жалобы через multipart форму.
type ReportHandler struct {
	svc            *service.ReportService
	maxUploadBytes int64
}

// NewReportHandler создаёт хэндлер отправки жалоб.
func NewReportHandler(svc *service.ReportService, maxUploadMB int64) *ReportHandler {
	return &ReportHandler{
		svc:            svc,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}
}

// SubmitReport обрабатывает POST /api/report-boss.
// Форма: reportData (JSON-строка), pdfFile (опционально), turnstileToken.
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	reportDataStr := c.PostForm("reportData")
	if reportDataStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing report data"})
		return
	}

	var data dto.ReportData
	if err := json.Unmarshal([]byte(reportDataStr), &data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report data"})
		return
	}

	pdfData, ok := h.readPDF(c)
	if !ok {
		return
	}

	files, err := h.svc.Submit(c.Request.Context(), &data, pdfData, c.PostForm("turnstileToken"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitReportResponse{
		Success: true,
		Message: "Report submitted successfully",
		Files:   *files,
	})
}

// readPDF достаёт приложенный PDF, если он есть. Клиент фильтрует тип
// файла сам, но публичной форме верить нельзя: магические байты
// проверяются и здесь. Возвращает (nil, true), когда файла нет.
func (h *ReportHandler) readPDF(c *gin.Context) ([]byte, bool) {
	file, err := c.FormFile("pdfFile")
	if err != nil {
		return nil, true
	}

	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PDF file is empty"})
		return nil, false
	}
	if file.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PDF file is too large"})
		return nil, false
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return nil, false
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read PDF file"})
		return nil, false
	}

	if !filetype.IsType(data, matchers.TypePdf) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Attached file is not a PDF"})
		return nil, false
	}

	return data, true
}
