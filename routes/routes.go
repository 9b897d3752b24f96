package routes

import (
	"net/http"
	"time"

	"partnerhub/handlers"
	"partnerhub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCommercialRoutes registers the partner endpoints. Login is public; the rest
// require the partner's own session token.
func RegisterCommercialRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/commercial/:partnerId")
	{
		api.POST("/login", hb.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.PartnerAuthMiddleware(hb.Tokens))
		protected.GET("/services", hb.ListServicesHandler)
		protected.POST("/vente", hb.RecordSaleHandler)
		protected.POST("/client", hb.RecordClientHandler)
		protected.POST("/transfert", hb.RecordTransferHandler)
		protected.GET("/stats", hb.StatisticsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/commercial/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware(hb.AdminToken))
		adminGroup.POST("/services", hb.CreateServiceHandler)
		adminGroup.GET("/services", hb.ListCatalogueHandler)
		adminGroup.DELETE("/services/:serviceId", hb.DeactivateServiceHandler)
		adminGroup.POST("/assign-service", hb.AssignServiceHandler)
		adminGroup.POST("/unassign-service", hb.UnassignServiceHandler)
		adminGroup.POST("/cadeaux-mensuels", hb.MonthlyGiftsHandler)
		adminGroup.POST("/reconcile-stats", hb.ReconcileStatsHandler)
		adminGroup.DELETE("/partners/:partnerId", hb.DeactivatePartnerHandler)
	}
}

// RegisterEventRoutes registers the trainer calendar endpoints.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/formateur-evenements")
	{
		api.POST("", hb.CreateEventHandler)
		api.GET("", hb.ListEventsHandler)
		api.GET("/:id", hb.GetEventHandler)
		api.PUT("/:id", hb.UpdateEventHandler)
		api.DELETE("/:id", hb.DeleteEventHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", func(c *gin.Context) {
		if hb.Health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		status := hb.Health()
		state := "ok"
		if !status.Healthy() {
			state = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{"status": state, "backends": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Admin-User", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCommercialRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
