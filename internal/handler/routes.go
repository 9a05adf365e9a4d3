package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/foresightmx/foresight/internal/service"
)

// RegisterRoutes mounts the API on an echo instance.
func RegisterRoutes(e *echo.Echo, tracker *service.ExpenseTracker, sessions *SessionManager) {
	authHandler := NewAuthHandler(tracker, sessions)
	txHandler := NewTransactionHandler(tracker)
	reportHandler := NewReportHandler(tracker)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signin", authHandler.SignIn)
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/resend-verification", authHandler.ResendVerification)
	auth.POST("/signout", authHandler.SignOut, sessions.Middleware)

	app := api.Group("", sessions.Middleware)
	app.GET("/summary", txHandler.Summary)
	app.GET("/transactions", txHandler.List)
	app.PUT("/transactions", txHandler.Save)
	app.DELETE("/transactions/:id", txHandler.Delete)
	app.PUT("/budget", txHandler.SetBudget)
	app.GET("/reports/pdf", reportHandler.PDF)
	app.GET("/reports/xlsx", reportHandler.XLSX)
	app.GET("/reports/chart", reportHandler.Chart)
	app.POST("/reports/email", reportHandler.Email)
}
