package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/kdadks/billing-api/internal/application/billing"
	infraemail "github.com/kdadks/billing-api/internal/infrastructure/email"
	infrapayment "github.com/kdadks/billing-api/internal/infrastructure/payment"
	infrapdf "github.com/kdadks/billing-api/internal/infrastructure/pdf"
	"github.com/kdadks/billing-api/internal/infrastructure/postgres"
	httpRouter "github.com/kdadks/billing-api/internal/interfaces/http"
	"github.com/kdadks/billing-api/pkg/config"
	"github.com/kdadks/billing-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	settingsRepo := postgres.NewInvoiceSettingsRepository(pool)
	companyRepo := postgres.NewCompanySettingsRepository(pool)
	termsRepo := postgres.NewTermsTemplateRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	countryRepo := postgres.NewCountryRepository(pool)

	numbering := billing.NewNumberingService(settingsRepo, invoiceRepo)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, customerRepo, countryRepo, numbering, log)
	settingsUC := billing.NewSettingsUseCase(settingsRepo, termsRepo)

	renderer := infrapdf.NewRenderer()
	documentUC := billing.NewDocumentUseCase(invoiceRepo, customerRepo, countryRepo, companyRepo, renderer)

	sender := infraemail.NewSender(cfg.SMTP)
	emailUC := billing.NewEmailUseCase(documentUC, invoiceRepo, sender, log)

	gateway := infrapayment.NewClient(cfg.Payment)
	paymentUC := billing.NewPaymentUseCase(invoiceRepo, customerRepo, gateway, cfg.Payment.ExpiresInHours)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // PDF responses can be large
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC:  invoiceUC,
		DocumentUC: documentUC,
		EmailUC:    emailUC,
		PaymentUC:  paymentUC,
		SettingsUC: settingsUC,
		Numbering:  numbering,
		Customers:  customerRepo,
		Products:   productRepo,
		Countries:  countryRepo,
		Company:    companyRepo,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
