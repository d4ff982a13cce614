package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/craftlink/artisan-registry-backend/config"
	"github.com/craftlink/artisan-registry-backend/database"
	"github.com/craftlink/artisan-registry-backend/internal/artisan"
	"github.com/craftlink/artisan-registry-backend/internal/auditlog"
	"github.com/craftlink/artisan-registry-backend/internal/charts"
	"github.com/craftlink/artisan-registry-backend/internal/chat"
	"github.com/craftlink/artisan-registry-backend/internal/inquiry"
	"github.com/craftlink/artisan-registry-backend/internal/lookup"
	"github.com/craftlink/artisan-registry-backend/internal/reports"
	"github.com/craftlink/artisan-registry-backend/internal/subscription"
	"github.com/craftlink/artisan-registry-backend/internal/user"
	"github.com/craftlink/artisan-registry-backend/middleware"
	"github.com/craftlink/artisan-registry-backend/utils"
)

// Setup wires every handler under /api/v1. Reads (charts, artisan lookups,
// reference tables) are public; mutations require a bearer token.
func Setup(r *gin.Engine, cfg *config.Config, db *gorm.DB, store *database.Store, log *zap.Logger, publisher *utils.AuditPublisher) {
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo, publisher, log)
	auditHandler := auditlog.NewHandler(auditSvc)

	artisanRepo := artisan.NewRepository(store)
	artisanSvc := artisan.NewService(artisanRepo, auditSvc)
	artisanHandler := artisan.NewHandler(artisanSvc, cfg)

	chartsHandler := charts.NewHandler(charts.NewService(charts.NewRepository(store)))
	lookupHandler := lookup.NewHandler(lookup.NewRepository(db))
	userHandler := user.NewHandler(user.NewService(user.NewRepository(db), cfg))
	inquiryHandler := inquiry.NewHandler(inquiry.NewRepository(db))
	chatHandler := chat.NewHandler(chat.NewRepository(db))
	subscriptionHandler := subscription.NewHandler(subscription.NewRepository(db), utils.NewMailer(cfg, log))
	reportsHandler := reports.NewHandler(reports.NewRepository(store))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter(cfg))

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", userHandler.Register)
		authGroup.POST("/login", userHandler.Login)
	}

	// Public reads plus the public write surfaces (contact form, chatbot,
	// mailing-list opt-in/out).
	api.GET("/charts", chartsHandler.GetAll)
	api.GET("/charts/stacked/:groupBy", chartsHandler.GetStacked)
	api.GET("/charts/:name", chartsHandler.GetChart)

	api.GET("/artisans", artisanHandler.ListArtisans)
	api.GET("/artisans/:id", artisanHandler.GetArtisan)

	lookups := api.Group("/lookups")
	{
		lookups.GET("/crafts", lookupHandler.ListCrafts)
		lookups.GET("/categories", lookupHandler.ListCategories)
		lookups.GET("/techniques", lookupHandler.ListTechniques)
		lookups.GET("/education-levels", lookupHandler.ListEducationLevels)
		lookups.GET("/employment-types", lookupHandler.ListEmploymentTypes)
		lookups.GET("/geo-levels", lookupHandler.ListGeoLevels)
	}

	api.POST("/inquiries", inquiryHandler.CreateInquiry)

	chatGroup := api.Group("/chat")
	{
		chatGroup.POST("/sessions", chatHandler.CreateSession)
		chatGroup.POST("/conversations", chatHandler.CreateConversation)
		chatGroup.GET("/sessions/:sessionId/conversations", chatHandler.ListConversations)
	}

	api.POST("/subscriptions", subscriptionHandler.Subscribe)
	api.DELETE("/subscriptions", subscriptionHandler.Unsubscribe)

	// Everything below mutates registry data or exposes internal records.
	protected := api.Group("/")
	protected.Use(middleware.Auth(cfg))
	{
		protected.POST("/artisans", artisanHandler.CreateArtisan)
		protected.PUT("/artisans/:id", artisanHandler.UpdateArtisan)
		protected.DELETE("/artisans/:id", artisanHandler.DeleteArtisan)

		protected.POST("/lookups/crafts", lookupHandler.CreateCraft)
		protected.PUT("/lookups/crafts/:id", lookupHandler.UpdateCraft)
		protected.DELETE("/lookups/crafts/:id", lookupHandler.DeleteCraft)
		protected.POST("/lookups/categories", lookupHandler.CreateCategory)
		protected.PUT("/lookups/categories/:id", lookupHandler.UpdateCategory)
		protected.DELETE("/lookups/categories/:id", lookupHandler.DeleteCategory)
		protected.POST("/lookups/techniques", lookupHandler.CreateTechnique)
		protected.PUT("/lookups/techniques/:id", lookupHandler.UpdateTechnique)
		protected.DELETE("/lookups/techniques/:id", lookupHandler.DeleteTechnique)
		protected.POST("/lookups/education-levels", lookupHandler.CreateEducationLevel)
		protected.POST("/lookups/employment-types", lookupHandler.CreateEmploymentType)
		protected.POST("/lookups/geo-levels", lookupHandler.CreateGeoLevel)

		protected.GET("/users", userHandler.ListUsers)
		protected.GET("/users/:id", userHandler.GetUser)
		protected.PUT("/users/:id", userHandler.UpdateUser)
		protected.DELETE("/users/:id", userHandler.DeactivateUser)

		protected.GET("/inquiries", inquiryHandler.ListInquiries)
		protected.GET("/inquiries/:id", inquiryHandler.GetInquiry)
		protected.DELETE("/inquiries/:id", inquiryHandler.DeleteInquiry)

		protected.GET("/chat/sessions", chatHandler.ListSessions)

		protected.GET("/subscriptions", subscriptionHandler.ListSubscriptions)
		protected.POST("/subscriptions/broadcast", subscriptionHandler.Broadcast)

		protected.GET("/reports/artisans", reportsHandler.ExportArtisanDirectory)
		protected.GET("/audit-logs", auditHandler.GetAuditLogs)
	}
}
