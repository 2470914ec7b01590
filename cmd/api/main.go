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

	"github.com/jhoicas/PharmGest-api/internal/application/auth"
	"github.com/jhoicas/PharmGest-api/internal/application/billing"
	"github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/application/reports"
	"github.com/jhoicas/PharmGest-api/internal/application/sales"
	"github.com/jhoicas/PharmGest-api/internal/application/seed"
	"github.com/jhoicas/PharmGest-api/internal/application/usecase"
	"github.com/jhoicas/PharmGest-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/PharmGest-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/PharmGest-api/internal/interfaces/http"
	"github.com/jhoicas/PharmGest-api/pkg/config"
	"github.com/jhoicas/PharmGest-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	zl := log.Zerolog()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	st, err := openStorage(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer st.close()

	settings := usecase.StockSettings{
		Critical:   cfg.Pharmacy.StockCritical,
		Low:        cfg.Pharmacy.StockLow,
		MaxResults: cfg.Pharmacy.MaxResults,
	}
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(st.products, st.categories, st.tx, settings)
	categoryUC := usecase.NewCategoryUseCase(st.categories)
	batchUC := inventory.NewBatchUseCase(st.tx, st.products, st.batches, cfg.Pharmacy.ExpiryWarningDays, log.Component("batches"))

	// PDF de la factura: se genera al liquidar y se puede volver a descargar.
	invoiceUC := billing.NewInvoiceUseCase(st.sales, st.products, infrapdf.NewMarotoPDFGenerator(), billing.PharmacyInfo{
		Name:    cfg.Pharmacy.Name,
		Address: cfg.Pharmacy.Address,
		RNC:     cfg.Pharmacy.RNC,
		Phone:   cfg.Pharmacy.Phone,
	}, cfg.Pharmacy.InvoiceDir, log.Component("invoices"))
	settleUC := sales.NewSettleUseCase(st.tx, inventory.NewAllocator(log.Component("allocator")), invoiceUC, zl)
	historyUC := sales.NewHistoryUseCase(st.sales, st.products)
	reportUC := reports.NewReportUseCase(historyUC, batchUC, st.products, excel.WriteSalesHistory, excel.ParseBatchRows, log.Component("reports"))

	// En memoria no hay datos previos: sin seed no habría con quién hacer login.
	if cfg.DB.Driver == config.DriverMemory {
		if _, err := seed.Run(ctx, seed.Deps{
			Auth: authUC, Products: productUC, Batches: batchUC, ProductRepo: st.products,
		}, time.Now(), zl); err != nil {
			log.Fatal().Err(err).Msg("seed en memoria")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PharmGest API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "driver": cfg.DB.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		ProductUC:         productUC,
		CategoryUC:        categoryUC,
		BatchUC:           batchUC,
		SettleUC:          settleUC,
		HistoryUC:         historyUC,
		InvoiceUC:         invoiceUC,
		ReportUC:          reportUC,
		ExpiryWarningDays: cfg.Pharmacy.ExpiryWarningDays,
		JWTSecret:         cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
