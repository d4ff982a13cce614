package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/craftlink/artisan-registry-backend/config"
	"github.com/craftlink/artisan-registry-backend/database"
	"github.com/craftlink/artisan-registry-backend/internal/artisan"
	"github.com/craftlink/artisan-registry-backend/internal/auditlog"
	"github.com/craftlink/artisan-registry-backend/internal/chat"
	"github.com/craftlink/artisan-registry-backend/internal/inquiry"
	"github.com/craftlink/artisan-registry-backend/internal/lookup"
	"github.com/craftlink/artisan-registry-backend/internal/subscription"
	"github.com/craftlink/artisan-registry-backend/internal/user"
	"github.com/craftlink/artisan-registry-backend/routes"
	"github.com/craftlink/artisan-registry-backend/utils"
)

func main() {
	cfg := config.Load()

	logger, err := utils.InitLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	store := database.NewStore(db, logger)

	logger.Info("running database migrations")
	if err := db.AutoMigrate(
		&lookup.Craft{},
		&lookup.Category{},
		&lookup.Technique{},
		&lookup.EducationLevel{},
		&lookup.EmploymentType{},
		&lookup.GeoLevel{},
		&artisan.Artisan{},
		&artisan.Training{},
		&artisan.Loan{},
		&artisan.Machine{},
		&artisan.ProductImage{},
		&artisan.ShopImage{},
		&user.User{},
		&inquiry.InquiryRequest{},
		&chat.ChatSession{},
		&chat.ChatConversation{},
		&subscription.EmailSubscription{},
		&auditlog.AuditLog{},
	); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	publisher := utils.NewAuditPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic, logger)
	if publisher != nil {
		defer publisher.Close()
		auditlog.StartKafkaConsumer(context.Background(), cfg, auditlog.NewRepository(db), logger)
	}

	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		logger.Fatal("failed to create upload directory", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded artisan images are served straight off disk.
	router.Static("/uploads", cfg.UploadDir)

	routes.Setup(router, cfg, db, store, logger, publisher)

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
