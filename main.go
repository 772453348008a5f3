package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yeremiapane/facility-booking/config"
	"github.com/yeremiapane/facility-booking/middlewares"
	"github.com/yeremiapane/facility-booking/router"
	"github.com/yeremiapane/facility-booking/session"
	"github.com/yeremiapane/facility-booking/utils"
)

func init() {
	// Load .env di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Set gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Pilih backend session store: db untuk multi-instance, selain itu
	// in-memory.
	var store session.Store
	if os.Getenv("SESSION_BACKEND") == "db" {
		gormStore := session.NewGormStore(db)
		store = gormStore

		// Bersihkan sesi kadaluarsa tiap jam
		go func() {
			for {
				time.Sleep(time.Hour)
				if err := gormStore.PurgeExpired(); err != nil {
					utils.ErrorLogger.Printf("failed to purge sessions: %v", err)
				}
			}
		}()
	} else {
		store = session.NewMemoryStore()
	}

	// Setup rate limiter global (50 request per detik per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	// Setup router
	r := router.SetupRouter(db, store)
	r.Use(rateLimiter.RateLimit())

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
