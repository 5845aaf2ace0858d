package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/app"
	"github.com/BruksfildServices01/salon-manager/internal/handlers"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(a.Cfg.CORSOrigins))

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(a.DB, a.Cfg, a.Audit)
	meHandler := handlers.NewMeHandler(a.DB)
	settingsHandler := handlers.NewSettingsHandler(a.DB, a.Logos)

	clientHandler := handlers.NewClientHandler(a.DB, a.Loc)
	serviceHandler := handlers.NewServiceHandler(a.DB)
	professionalHandler := handlers.NewProfessionalHandler(a.DB)

	appointmentHandler := handlers.NewAppointmentHandler(
		a.Appointments,
		a.Audit,
		a.Messenger,
		a.Loc,
	)

	financeHandler := handlers.NewFinanceHandler(a.Finance, a.Audit, a.Links, a.Loc)
	cashHandler := handlers.NewCashHandler(a.Finance, a.Audit, a.Loc)
	reportHandler := handlers.NewReportHandler(a.Reports, a.Loc)

	messageHandler := handlers.NewMessageHandler(a.DB, a.Messages, a.Messenger)
	automationHandler := handlers.NewAutomationHandler(a.Runner, a.Loc)

	auditLogsHandler := handlers.NewAuditLogsHandler(a.DB, a.Loc)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(a.Cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// SETTINGS
			// ------------------------------
			secured.GET("/settings", settingsHandler.Get)
			secured.PUT("/settings", settingsHandler.Update)
			secured.POST("/settings/logo", settingsHandler.UploadLogo)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/birthdays", clientHandler.BirthdaysToday)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)
			secured.GET("/clients/:id/messages", messageHandler.History)
			secured.POST("/clients/:id/messages", messageHandler.Send)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)
			secured.GET("/service-categories", serviceHandler.Categories)
			secured.PUT("/service-categories/:name", serviceHandler.RenameCategory)
			secured.DELETE("/service-categories/:name", serviceHandler.DeleteCategory)

			// ------------------------------
			// PROFESSIONALS
			// ------------------------------
			secured.GET("/professionals", professionalHandler.List)
			secured.POST("/professionals", professionalHandler.Create)
			secured.PUT("/professionals/:id", professionalHandler.Update)
			secured.DELETE("/professionals/:id", professionalHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/payment-methods", appointmentHandler.PaymentMethods)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.POST("/appointments/:id/payment", appointmentHandler.ReceivePayment)

			// ------------------------------
			// FINANCE
			// ------------------------------
			secured.GET("/finance/overview", financeHandler.Overview)
			secured.GET("/finance/receivables", financeHandler.ListReceivables)
			secured.POST("/finance/receivables", financeHandler.CreateReceivable)
			secured.POST("/finance/receivables/:id/settle", financeHandler.SettleReceivable)
			secured.POST("/finance/receivables/:id/payment-link", financeHandler.PaymentLink)
			secured.GET("/finance/payables", financeHandler.ListPayables)
			secured.POST("/finance/payables", financeHandler.CreatePayable)
			secured.POST("/finance/payables/:id/pay", financeHandler.PayPayable)

			secured.GET("/cash", cashHandler.List)
			secured.GET("/cash/current", cashHandler.Current)
			secured.POST("/cash/open", cashHandler.Open)
			secured.POST("/cash/current/close", cashHandler.Close)
			secured.POST("/cash/:id/close", cashHandler.Close)

			// ------------------------------
			// REPORTS
			// ------------------------------
			secured.GET("/dashboard", reportHandler.Dashboard)
			secured.GET("/reports", reportHandler.Period)

			// ------------------------------
			// AUTOMATION
			// ------------------------------
			secured.POST("/automation/run", automationHandler.RunDaily)
			secured.POST("/automation/run/:scan", automationHandler.RunScan)

			// ------------------------------
			// SOMENTE OWNER
			// ------------------------------
			owner := secured.Group("/")
			owner.Use(middleware.RequireRole(models.RoleOwner))
			{
				owner.POST("/users", authHandler.Register)
				owner.POST("/settings/reset", settingsHandler.Reset)
				owner.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
