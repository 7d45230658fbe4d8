package router

import (
	"time"

	"mpgspay/config"
	"mpgspay/internal/domain"
	"mpgspay/internal/handler"
	"mpgspay/internal/middleware"
	"mpgspay/internal/repository"
	"mpgspay/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	// Repositories
	settingRepo := repository.NewSettingRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	webhookRepo := repository.NewWebhookRepository(db)

	// Services
	orderSvc := service.NewOrderService(orderRepo, settingRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, adminRepo)
	settingsHandler := handler.NewSettingsHandler(settingRepo)
	checkoutHandler := handler.NewCheckoutHandler(cfg, settingRepo, orderRepo, orderSvc)
	actionsHandler := handler.NewOrderActionsHandler(orderRepo, orderSvc)
	webhookHandler := handler.NewWebhookHandler(settingRepo, orderRepo, webhookRepo)

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/webhook/mpgs", webhookHandler.Handle)

		api.GET("/checkout/options", checkoutHandler.Options)
		api.POST("/checkout/session", checkoutHandler.CreateSession)

		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(&cfg.JWT), middleware.RequireRole(domain.RoleAdmin))
		{
			admin.GET("/settings", settingsHandler.Get)
			admin.PUT("/settings", settingsHandler.Update)

			admin.GET("/orders/:id/actions", actionsHandler.Capabilities)
			admin.POST("/orders/:id/capture", actionsHandler.Capture)
			admin.POST("/orders/:id/void", actionsHandler.Void)
			admin.POST("/orders/:id/refund", actionsHandler.Refund)
		}
	}

	return r
}
