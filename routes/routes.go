package routes

import (
	"os"
	"strings"

	"barbearia-backend/config"
	"barbearia-backend/controllers"
	"barbearia-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := allowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Sale recording and history
		transactions := api.Group("/transactions")
		{
			transactions.POST("", controllers.CreateTransaction)
			transactions.GET("", controllers.GetTransactions)
			transactions.PUT("/:id", utils.AdminOnly(), controllers.UpdateTransaction)
			transactions.DELETE("/:id", utils.AdminOnly(), controllers.DeleteTransaction)
		}

		// Barbers see their own commission; everything else under /reports
		// is the owner's.
		api.GET("/commissions", controllers.GetCommissionReport)

		// Catalog: readable by staff, managed by the owner
		services := api.Group("/services")
		{
			services.GET("", controllers.GetServices)
			services.POST("", utils.AdminOnly(), controllers.CreateService)
			services.PUT("/:id", utils.AdminOnly(), controllers.UpdateService)
			services.DELETE("/:id", utils.AdminOnly(), controllers.DeleteService)
		}

		// Roster: readable by staff (the sale form needs it), managed by
		// the owner
		barbers := api.Group("/barbers")
		{
			barbers.GET("", controllers.GetBarbers)
			barbers.POST("", utils.AdminOnly(), controllers.AddBarber)
			barbers.PUT("/:id", utils.AdminOnly(), controllers.UpdateBarber)
			barbers.DELETE("/:id", utils.AdminOnly(), controllers.DeleteBarber)
		}

		admin := api.Group("", utils.AdminOnly())
		{
			admin.GET("/dashboard", controllers.GetDashboard)
			admin.GET("/revenue", controllers.GetMonthlyRevenue)
			admin.GET("/revenue/export", controllers.ExportMonthlyRevenue)
			admin.GET("/settings", controllers.GetSettings)
			admin.PUT("/settings", controllers.UpdateSettings)
		}
	}

	return r
}

func allowedOrigins() []string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000", "http://localhost:5173"}
	}
	origins := strings.Split(raw, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}
