package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/heybosswtf/heyboss-backend/internal/dto"
	"github.com/heybosswtf/heyboss-backend/internal/service"
)

// DirectoryHandler отдаёт публичный каталог жалоб.
type DirectoryHandler struct {
	svc *service.DirectoryService
}

func NewDirectoryHandler(svc *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

// ListBosses обрабатывает GET /api/toxic-bosses.
func (h *DirectoryHandler) ListBosses(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Page must be greater than 0"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be between 1 and 100"})
		return
	}

	query := dto.DirectoryQuery{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Company:  c.Query("company"),
		Location: c.Query("location"),
	}

	resp, err := h.svc.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	// verified/published принимаются и эхом возвращаются ради формы API,
	// но на выборку не влияют: гейт видимости всегда включён.
	resp.Filters.Verified = parseBoolParam(c.Query("verified"))
	resp.Filters.Published = parseBoolParam(c.Query("published"))

	c.JSON(http.StatusOK, resp)
}

func parseBoolParam(raw string) *bool {
	if raw == "" {
		return nil
	}
	value := raw == "true"
	return &value
}
