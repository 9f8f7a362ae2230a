// @title Vastrika Commerce API
// @version 1.0
// @description Vastrika Commerce Backend API Documentation
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/middleware"
	"github.com/Vastrika-Ecommerce/vastrika-backend/routes/cms_routes"
	"github.com/Vastrika-Ecommerce/vastrika-backend/routes/ecommerce_routes"
	"github.com/Vastrika-Ecommerce/vastrika-backend/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// Connect to DB
	config.InitDB()
	// Redis connection
	config.ConnectRedis()

	// ✅ Initialize JWT Service for Admin Auth
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET environment variable not set")
	}
	if err := services.InitJWTService(jwtSecret); err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	log.Println("✅ JWT Service initialized")

	// ✅ Configure CORS properly for all content types including report downloads
	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length"}, // Expose these headers for downloads
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	// Register API routes
	api := router.Group("/api/v1")

	// Admin routes (at /api/v1/admin prefix)
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RateLimiter(100, time.Minute))
	cms_routes.SetupOrderRoutes(adminGroup)
	log.Println("✅ Admin order routes registered")

	// Storefront user routes (cart, checkout, orders, addresses)
	ecommerce_routes.SetupUserRoutes(api)
	log.Println("✅ User routes registered")

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	fmt.Println("🚀 Server is running on http://localhost:8081")
	router.Run(":8081")
}
