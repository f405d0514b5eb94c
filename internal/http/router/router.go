package router

import (
	"github.com/gin-gonic/gin"

	"github.com/heybosswtf/heyboss-backend/internal/config"
	"github.com/heybosswtf/heyboss-backend/internal/http/handlers"
	"github.com/heybosswtf/heyboss-backend/internal/http/middleware"
)

// SetupRouter собирает все маршруты публичного API.
func SetupRouter(
	cfg *config.Config,
	reportHandler *handlers.ReportHandler,
	directoryHandler *handlers.DirectoryHandler,
	bossHandler *handlers.BossHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// Отправка жалоб: анонимный endpoint, поэтому поверх Turnstile ещё и
	// лимит запросов по IP.
	submitRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.POST("/report-boss", submitRateLimit, reportHandler.SubmitReport)

	// Публичный каталог и карточки.
	api.GET("/toxic-bosses", directoryHandler.ListBosses)
	api.GET("/boss/:id", bossHandler.GetBoss)
	api.GET("/boss/:id/markdown", bossHandler.GetMarkdown)
	api.GET("/boss/:id/pdf", bossHandler.GetPDFInfo)
	api.GET("/boss/:id/pdf-content", bossHandler.GetPDFContent)

	return r
}
