package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/billing"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/checkout"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/ordersync"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/config"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/jwt"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/logger"
)

// RouterDeps dipendenze per il router.
type RouterDeps struct {
	CheckoutUC *checkout.UseCase
	SyncUC     *ordersync.UseCase
	GenerateUC *billing.GenerateInvoiceUseCase
	LinkUC     *billing.InvoiceLinkUseCase
	InfoUC     *billing.ReferenceDataUseCase
	Woo        config.WooConfig
	FIC        config.FICConfig
	JWTSecret  string
	Log        *logger.Logger
}

// Router registra le rotte dell'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Checkout (pubblico: chiamato dal frontend dello store)
	checkoutGroup := api.Group("/checkout")
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	checkoutGroup.Post("/validate", checkoutHandler.ValidateFields)
	checkoutGroup.Post("/fiscal-code", checkoutHandler.FiscalCode)

	// Webhook store (autenticato con firma HMAC, non con JWT)
	webhookHandler := NewWebhookHandler(deps.SyncUC, deps.GenerateUC, deps.Woo, deps.FIC, deps.Log)
	api.Post("/webhooks/woocommerce", webhookHandler.Receive)

	// Rotte protette (richiedono Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	invoiceHandler := NewInvoiceHandler(deps.GenerateUC, deps.LinkUC, deps.InfoUC)

	// Generazione fattura e dati di riferimento: solo manager
	protected.Post("/orders/:id/invoice", RequireRole(jwt.RoleManager), invoiceHandler.Generate)
	protected.Get("/fattureincloud/info", RequireRole(jwt.RoleManager), invoiceHandler.Info)

	// Download: manager e clienti, l'autorizzazione per ordine sta nel caso d'uso
	protected.Get("/orders/:id/invoice/link", RequireRole(jwt.RoleManager, jwt.RoleCustomer), invoiceHandler.DownloadLink)
}
