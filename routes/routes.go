package routes

import (
	"github.com/hyunvinlim-art/habit-tracker/config"
	"github.com/hyunvinlim-art/habit-tracker/controllers"
	"github.com/hyunvinlim-art/habit-tracker/middlewares"
	"github.com/hyunvinlim-art/habit-tracker/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// shared services
	rt := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		push = nil // push is optional; alerts still hit DB + websocket
	}
	services.InitAlertDeps(config.DB, rt, push)

	analyticsCtl := controllers.NewAnalyticsController(services.NewAnalyticsService(config.DB))
	reportCtl := controllers.NewReportController(
		services.NewReportService(),
		services.NewWeatherService(),
		services.NewDogService(),
	)
	realtimeCtl := controllers.NewRealtimeController(rt)
	deviceCtl := controllers.NewDeviceController(push)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.DELETE("/profile", controllers.DeleteProfile)
		user.POST("/notifications/toggle", controllers.ToggleNotifications)
	}

	// Habits + logs
	habits := r.Group("/habits")
	habits.Use(middlewares.AuthMiddleware())
	{
		habits.GET("", controllers.ListHabits)
		habits.POST("", controllers.CreateHabit)
		habits.DELETE("/:id", controllers.DeleteHabit)
		habits.POST("/:id/archive", controllers.ArchiveHabit)
		habits.POST("/:id/log", controllers.LogHabit)
		habits.GET("/:id/streak", analyticsCtl.GetHabitStreak)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/logs", controllers.ListLogs)

		protected.POST("/checkin", controllers.SaveCheckin)
		protected.GET("/checkin/history", controllers.CheckinHistory)

		protected.GET("/analytics/summary", analyticsCtl.GetAnalyticsSummary)
		protected.GET("/analytics/weekly", analyticsCtl.GetWeeklyOverview)

		protected.POST("/report", reportCtl.Generate)
		protected.GET("/report/latest", reportCtl.Latest)
		protected.GET("/report/:id/share", reportCtl.Share)

		protected.GET("/alerts/ws", realtimeCtl.AlertsWS)
		protected.POST("/devices", deviceCtl.Register)
	}

	return r
}
