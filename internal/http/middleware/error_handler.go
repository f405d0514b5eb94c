package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/heybosswtf/heyboss-backend/internal/logger"
	"github.com/heybosswtf/heyboss-backend/internal/pkg/apperror"
)

// ErrorHandler — страховка для ошибок, докатившихся до c.Error без
// собственного ответа. Статус и сообщение берутся из таксономии apperror,
// внутренняя причина остаётся в логах.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{
					"error":  err.Error(),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("Request error")
			}

			c.JSON(apperror.StatusFor(err), gin.H{"error": apperror.MessageFor(err)})
		}
	}
}
