package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/audit"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/config"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/handlers"
	infraRepo "github.com/Guustavoou/barbearia-dash-insights-sub004/internal/infra/repository"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/middleware"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/payments"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/resources"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/stats"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/tenant"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/uploads"
	ucAppointment "github.com/Guustavoou/barbearia-dash-insights-sub004/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	registry := resources.NewRegistry(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	resolver := tenant.NewResolver(infraRepo.NewUserGormSource(db))

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	statsService := stats.NewService(db, rdb)
	uploader := uploads.NewUploader(cfg)
	paymentsClient := payments.New(cfg)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo)
	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(appointmentRepo)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, resolver)
	barbershopHandler := handlers.NewBarbershopHandler(db, auditDispatcher)

	clientHandler := handlers.NewClientHandler(registry, auditDispatcher)
	professionalHandler := handlers.NewProfessionalHandler(registry, auditDispatcher, uploader)
	serviceHandler := handlers.NewServiceHandler(registry, auditDispatcher)
	productHandler := handlers.NewProductHandler(registry, auditDispatcher)
	transactionHandler := handlers.NewTransactionHandler(db, registry, auditDispatcher, paymentsClient)

	appointmentHandler := handlers.NewAppointmentHandler(
		registry,
		auditDispatcher,
		createAppointmentUC,
		confirmAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
	)

	dashboardHandler := handlers.NewDashboardHandler(db, statsService)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

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
		// 🔔 WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/mercadopago", transactionHandler.MercadoPagoWebhook)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)

			secured.GET("/me/dashboard/stats", dashboardHandler.Stats)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.DELETE("/me/clients/:id", clientHandler.Delete)

			// ------------------------------
			// PROFESSIONALS
			// ------------------------------
			secured.GET("/me/professionals", professionalHandler.List)
			secured.POST("/me/professionals", professionalHandler.Create)
			secured.PATCH("/me/professionals/:id", professionalHandler.Update)
			secured.DELETE("/me/professionals/:id", professionalHandler.Delete)
			secured.POST("/me/professionals/:id/photo", professionalHandler.UploadPhoto)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			// ------------------------------
			// PRODUCTS
			// ------------------------------
			secured.GET("/me/products", productHandler.List)
			secured.POST("/me/products", productHandler.Create)
			secured.PATCH("/me/products/:id", productHandler.Update)
			secured.DELETE("/me/products/:id", productHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.List)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)

			// ------------------------------
			// TRANSACTIONS
			// ------------------------------
			secured.GET("/me/transactions", transactionHandler.List)
			secured.POST("/me/transactions", transactionHandler.Create)
			secured.PATCH("/me/transactions/:id", transactionHandler.Update)
			secured.DELETE("/me/transactions/:id", transactionHandler.Delete)
			secured.POST("/me/transactions/:id/payment-link", transactionHandler.PaymentLink)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
