package server

import (
	"fmt"

	"github.com/Srijansendry/Srijan/config"
	"github.com/Srijansendry/Srijan/internal/handlers"
	"github.com/Srijansendry/Srijan/internal/middleware"
	"github.com/Srijansendry/Srijan/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewServices(db *gorm.DB, cfg *config.Config) *services.Services {
	return services.New(db, cfg.JWTSecret, services.PurchaseOptions{
		GatewayTimeout: cfg.GatewayTimeout,
		RestoreLimit:   cfg.RestoreLimit,
	})
}

func Start(cfg *config.Config, db *gorm.DB) error {
	r := gin.Default()

	setupRoutes(r, NewServices(db, cfg), middleware.Options{
		CookieSecure: cfg.CookieSecure,
		UploadDir:    cfg.UploadDir,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to run server: %v", err)
	}
	return nil
}

func NewRouter(svc *services.Services, opts middleware.Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	setupRoutes(r, svc, opts)
	return r
}

func setupRoutes(r *gin.Engine, svc *services.Services, opts middleware.Options) {
	r.Use(middleware.ServicesMiddleware(svc, opts))

	public := r.Group("/")
	{
		orders := public.Group("/orders")
		{
			orders.POST("/upi", handlers.SubmitUPIPayment)
			orders.POST("/gateway", handlers.CreateGatewayOrder)
			orders.POST("/gateway/verify", handlers.VerifyGatewayPayment)
			orders.GET("/gateway/config", handlers.GatewayConfig)
			orders.POST("/check", handlers.CheckPurchases)
		}

		pyqs := public.Group("/pyqs")
		{
			pyqs.GET("/:id/upi-qr", handlers.UPIPaymentQR)
			pyqs.POST("/:id/download", handlers.DownloadPYQ)
		}

		public.POST("/downloads", handlers.LogNoteDownload)
		public.POST("/support", handlers.SubmitSupportRequest)
		public.GET("/reviews", handlers.ListReviews)
		public.POST("/reviews", middleware.OptionalIdentity(svc.Accounts), handlers.SubmitReview)

		public.POST("/admin/login", handlers.AdminLogin)
		public.POST("/admin/logout", handlers.AdminLogout)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(svc.Accounts, opts.CookieSecure))
	{
		admin.GET("/me", handlers.CurrentAdmin)

		admin.GET("/orders", handlers.ListOrders)
		admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus)

		admin.GET("/reviews", handlers.AdminListReviews)
		admin.PATCH("/reviews/:id/status", handlers.UpdateReviewStatus)
		admin.DELETE("/reviews/:id", handlers.DeleteReview)

		admin.GET("/support", handlers.ListSupportRequests)
		admin.PATCH("/support/:id/resolve", handlers.ResolveSupportRequest)
		admin.DELETE("/support/:id", handlers.DeleteSupportRequest)

		admin.GET("/settings", handlers.GetSettings)

		owner := admin.Group("")
		owner.Use(middleware.RequireOwner())
		{
			owner.PATCH("/reviews/:id/featured", handlers.UpdateReviewFeatured)
			owner.PUT("/settings", handlers.UpdateSettings)
			owner.GET("/admins", handlers.ListAdmins)
			owner.POST("/admins", handlers.CreateAdmin)
			owner.POST("/manage-user", handlers.ManageUser)
			owner.GET("/logs", handlers.ActivityLogs)
		}
	}
}
