package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rentaj/config"
	"rentaj/jobs"
	"rentaj/models"
	"rentaj/routes"
	"rentaj/services"
	"rentaj/services/logger"
)

func migrateTables() {
	if err := config.DB.AutoMigrate(&models.User{}, &models.Car{}, &models.CarImage{}, &models.Booking{}); err != nil {
		panic("Failed to migrate tables: " + err.Error())
	}
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file found, using existing environment: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	reconciler := services.NewReconcilerService(logger.NewDefaultLogger(logger.InfoLevel))
	jobs.SetCarStatusReconciler(reconciler)
	jobs.SetStatusNotifier(services.NotifyStatusReconciled)

	migrateTables()

	if err := jobs.InitCronJobs(c, m); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, config.DB, config.RedisClient, config.Cloudinary, m)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
