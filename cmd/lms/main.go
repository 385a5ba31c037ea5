package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lms-backend/pkg/database"
	"lms-backend/pkg/handlers"
	"lms-backend/pkg/models"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting LMS service")

	db := database.InitDB()
	seedTestData(db, logger)

	server := gin.Default()
	h := handlers.New(db, logger)
	h.RegisterRoutes(server)

	port := database.GetEnv("PORT", "8080")
	logger.Info("LMS service listening", zap.String("port", port))
	if err := server.Run(":" + port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func seedTestData(db *gorm.DB, logger *zap.Logger) {
	books := []models.Book{
		{Title: "The Go Programming Language", Author: "Donovan & Kernighan", Available: 3},
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Available: 1},
	}
	for _, b := range books {
		var existing models.Book
		if err := db.Where("title = ?", b.Title).First(&existing).Error; err != nil {
			if err := db.Create(&b).Error; err != nil {
				logger.Warn("failed to seed book", zap.String("title", b.Title), zap.Error(err))
			}
		}
	}

	users := []models.User{
		{FirstName: "Alice", LastName: "Reader", Email: "alice@example.com"},
		{FirstName: "Bob", LastName: "Browser", Email: "bob@example.com"},
	}
	for _, u := range users {
		var existing models.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err != nil {
			u.ID = uuid.New().String()
			if err := db.Create(&u).Error; err != nil {
				logger.Warn("failed to seed user", zap.String("email", u.Email), zap.Error(err))
			}
		}
	}
	logger.Info("test data seeded")
}
