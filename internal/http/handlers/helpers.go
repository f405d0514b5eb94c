package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/heybosswtf/heyboss-backend/internal/pkg/apperror"
)

// respondError сериализует ошибку по таксономии apperror. Внутренние
// причины клиенту не показываются.
func respondError(c *gin.Context, err error) {
	c.JSON(apperror.StatusFor(err), gin.H{"error": apperror.MessageFor(err)})
}
