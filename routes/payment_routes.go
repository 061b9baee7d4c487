package routes

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/sebiten/padel-app/clients"
	"github.com/sebiten/padel-app/config/db"
	"github.com/sebiten/padel-app/controllers/payment_controller"
	"github.com/sebiten/padel-app/controllers/webhook_controller"
	middleware "github.com/sebiten/padel-app/middlewares"
	"github.com/sebiten/padel-app/middlewares/auth"
	"github.com/sebiten/padel-app/store"
	"github.com/sebiten/padel-app/utils"
	"github.com/sebiten/padel-app/utils/mail"
)

// RegisterPaymentRoutes registers checkout and gateway webhook routes
func RegisterPaymentRoutes(router *gin.Engine) {
	mpClient := clients.NewMercadoPagoClient(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	pgStore := store.NewPostgres(db.DB)

	paymentService := payment_controller.NewPaymentService(pgStore, mpClient, utils.GetSiteURL())

	var mailer webhook_controller.Mailer
	if m := mail.NewSMTPMailerFromEnv(); m != nil {
		mailer = m
	}
	webhookService := webhook_controller.NewWebhookService(pgStore, mpClient, mailer)

	// Public route for gateway notifications
	router.POST("/api/webhook",
		middleware.NewRateLimiter("60-1m", "mp-webhook"),
		webhookService.HandleWebhook)

	// Protected routes - require authentication
	protected := router.Group("/payments")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/checkout",
			middleware.CombinedRateLimiter("create-checkout", "5-1m", "20-10m"),
			paymentService.CreatePayment)
	}
}
