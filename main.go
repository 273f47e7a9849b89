package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/simatwa/tailoring-ms-api/config"
	"github.com/simatwa/tailoring-ms-api/controllers"
	"github.com/simatwa/tailoring-ms-api/middleware"
	"github.com/simatwa/tailoring-ms-api/models"
	"github.com/simatwa/tailoring-ms-api/services"
	"github.com/simatwa/tailoring-ms-api/utils"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger may not be initialized yet; fall back to a bare fatal
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	utils.InitLogger(cfg.LogLevel, cfg.IsProduction())
	log.Info().Msg("Starting Tailoring MS API server...")

	// Connect to database
	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	log.Info().Msg("Database migration completed successfully")

	if err := seedDefaults(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default records")
	}

	// Wire the image storage backend
	switch cfg.StorageBackend {
	case "s3":
		s3Service, err := services.InitS3Service(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3")
		}
		services.InitS3ImageService(s3Service)
	default:
		services.InitLocalImageService(cfg.MediaRoot, cfg.MediaBaseURL)
	}

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("Server is running")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

// migrate creates or updates every table the application owns
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Measurement{},
		&models.Service{},
		&models.Order{},
		&models.About{},
		&models.ServiceFeedback{},
		&models.Message{},
		&models.FAQ{},
	)
}

// seedDefaults creates the About singleton and the catalog services when
// missing, mirroring what a fresh back-office install would hold
func seedDefaults(db *gorm.DB) error {
	var aboutCount int64
	if err := db.Model(&models.About{}).Count(&aboutCount).Error; err != nil {
		return err
	}
	if aboutCount == 0 {
		email := "admin@tailoringms.com"
		phone := "0200000000"
		about := models.About{
			Name:        "Tailoring MS",
			ShortName:   "TMS",
			Slogan:      "Experience the art of custom tailoring with precision and style.",
			Details:     "Welcome to Tailoring MS. We are committed to providing the best tailoring services.",
			Address:     "123 Fashion Street, Meru - Kenya",
			Email:       &email,
			PhoneNumber: &phone,
			Logo:        "default/logo.png",
			Wallpaper:   "default/threads-5547529_1920.jpg",
		}
		if err := db.Create(&about).Error; err != nil {
			return err
		}
	}

	descriptions := map[models.ServiceName]string{
		models.ServiceCustomSuits:   "Made-to-measure suits cut and finished by hand.",
		models.ServiceWeddingAttire: "Bespoke gowns and suits for the big day.",
		models.ServiceAlterations:   "Resizing, hemming and repairs for garments of any kind.",
		models.ServiceOther:         "Anything else a needle and thread can solve - just ask.",
	}
	for _, name := range models.ServiceNames() {
		var count int64
		if err := db.Model(&models.Service{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		service := models.Service{
			Name:          name,
			Description:   descriptions[name],
			Picture:       models.DefaultServicePicture,
			StartingPrice: decimal.NewFromInt(1000),
			EndingPrice:   decimal.NewFromInt(15000),
		}
		if err := db.Create(&service).Error; err != nil {
			return err
		}
	}
	return nil
}

// setupRouter wires middleware and the full /v1 surface
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Local blobs are served straight off the media root
	if cfg.StorageBackend == "local" {
		router.Static(trimTrailingSlash(cfg.MediaBaseURL), cfg.MediaRoot)
	}

	v1 := router.Group("/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Public surface
		v1.POST("/token", controllers.FetchToken)
		v1.GET("/user/exists", controllers.UserExists)
		v1.GET("/about", controllers.GetAbout)
		v1.POST("/message", controllers.NewMessage)
		v1.GET("/services-offered", controllers.GetServicesOffered)
		v1.GET("/latest-work", controllers.GetLatestWork)
		v1.GET("/latest-work/:id", controllers.GetLatestWorkDetail)
		v1.GET("/feedbacks", controllers.GetFeedbacks)
		v1.GET("/faqs", controllers.GetFAQs)

		// Authenticated client surface
		authed := v1.Group("", middleware.RequireToken())
		{
			authed.PATCH("/token", controllers.RotateToken)
			authed.GET("/profile", controllers.GetProfile)
			authed.PATCH("/profile", controllers.UpdateProfile)
			authed.GET("/measurements", controllers.GetMeasurements)
			authed.PATCH("/measurements", controllers.UpdateMeasurements)
			authed.POST("/order", controllers.PlaceOrder)
			authed.GET("/orders", controllers.ListOrders)
			authed.GET("/order/:id", controllers.GetOrder)
			authed.PATCH("/order/:id", controllers.UpdateOrder)
			authed.DELETE("/order/:id", controllers.DeleteOrder)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"detail": "Tailoring MS API is running",
	})
}

func trimTrailingSlash(s string) string {
	if len(s) > 1 && s[len(s)-1] == '/' {
		return s[:len(s)-1]
	}
	return s
}
