package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heybosswtf/heyboss-backend/internal/dto"
	"github.com/heybosswtf/heyboss-backend/internal/service"
)

// BossHandler отдаёт детальную карточку жалобы и её артефакты.
// Идентификатор в пути — либо id записи, либо человекочитаемый слаг.
type BossHandler struct {
	svc *service.DetailService
}

func NewBossHandler(svc *service.DetailService) *BossHandler {
	return &BossHandler{svc: svc}
}

// GetBoss обрабатывает GET /api/boss/:id.
func (h *BossHandler) GetBoss(c *gin.Context) {
	report, err := h.svc.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BossResponse{Success: true, Data: report})
}

// GetMarkdown обрабатывает GET /api/boss/:id/markdown.
func (h *BossHandler) GetMarkdown(c *gin.Context) {
	resp, err := h.svc.GetMarkdown(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPDFInfo обрабатывает GET /api/boss/:id/pdf.
func (h *BossHandler) GetPDFInfo(c *gin.Context) {
	resp, err := h.svc.GetPDFInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPDFContent обрабатывает GET /api/boss/:id/pdf-content: проксирует
// байты PDF, чтобы фронтовый просмотрщик не упирался в CORS бакета.
func (h *BossHandler) GetPDFContent(c *gin.Context) {
	content, err := h.svc.GetPDFContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/pdf", content)
}
