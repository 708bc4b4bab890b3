package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"barbearia-backend/cache"
	"barbearia-backend/config"
	"barbearia-backend/controllers"
	"barbearia-backend/models"
	"barbearia-backend/routes"
	"barbearia-backend/services"
	"barbearia-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Transaction{},
		&models.Settings{},
	)

	seedSettings()
}

func main() {
	logger := config.GetLogger()

	txStore := store.NewGormStore(config.DB)
	controllers.Setup(txStore, identityCache())

	summaries := services.NewSummaryService(txStore, logger)
	summaries.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

// identityCache wires Redis when REDIS_ADDR is set and falls back to the
// no-op cache otherwise, so local setups run without a Redis instance.
func identityCache() cache.IdentityCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return cache.NoopIdentityCache{}
	}

	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			db = parsed
		}
	}

	redisCache := cache.NewRedisIdentityCache(addr, os.Getenv("REDIS_PASSWORD"), db)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Printf("Redis unavailable (%v), identity cache disabled", err)
		return cache.NoopIdentityCache{}
	}
	return redisCache
}

func seedSettings() {
	config.DB.Where("id = ?", models.SettingsRowID).
		Attrs(models.Settings{ID: models.SettingsRowID, CommissionRate: decimal.NewFromFloat(0.40)}).
		FirstOrCreate(&models.Settings{})
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
