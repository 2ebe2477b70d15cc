package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/billing"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/checkout"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/ordersync"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/infrastructure/fattureincloud"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/infrastructure/postgres"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/infrastructure/transient"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/infrastructure/woocommerce"
	httpRouter "github.com/silverbackstudio/woocommerce-fattureincloud/internal/interfaces/http"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/config"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("caricamento configurazione: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("avvio applicazione")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connessione a PostgreSQL")
	}
	defer pool.Close()

	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ficClient := fattureincloud.NewClient(cfg.FIC.APIUID, cfg.FIC.APIKey, cfg.FIC.BaseURL, log)

	// Client REST verso lo store: opzionale, serve solo per i trigger manuali
	// su ordini mai arrivati via webhook.
	var fetcher billing.StoreOrderFetcher
	if cfg.Woo.StoreURL != "" {
		wooClient, err := woocommerce.NewClient(woocommerce.Config{
			StoreURL:       cfg.Woo.StoreURL,
			ConsumerKey:    cfg.Woo.ConsumerKey,
			ConsumerSecret: cfg.Woo.ConsumerSecret,
			CodIVADefault:  cfg.FIC.CodIVADefault,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("client WooCommerce")
		}
		fetcher = wooClient
	}

	cache := transient.NewStore()

	syncUC := ordersync.NewUseCase(txRunner, log)
	generateUC := billing.NewGenerateInvoiceUseCase(orderRepo, fetcher, ficClient, cfg.FIC, log)
	linkUC := billing.NewInvoiceLinkUseCase(generateUC, ficClient, cache, cfg.FIC, log)
	infoUC := billing.NewReferenceDataUseCase(ficClient, cache, cfg.FIC, log)
	checkoutUC := checkout.NewUseCase()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in locale: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "WooCommerce Fatture in Cloud API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CheckoutUC: checkoutUC,
		SyncUC:     syncUC,
		GenerateUC: generateUC,
		LinkUC:     linkUC,
		InfoUC:     infoUC,
		Woo:        cfg.Woo,
		FIC:        cfg.FIC,
		JWTSecret:  cfg.JWT.Secret,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("server HTTP terminato")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("segnale di arresto ricevuto, chiusura del server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arresto del server")
	}

	log.Info().Msg("applicazione arrestata")
}
