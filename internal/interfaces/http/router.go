package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PharmGest-api/internal/application/auth"
	"github.com/jhoicas/PharmGest-api/internal/application/billing"
	"github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/application/reports"
	"github.com/jhoicas/PharmGest-api/internal/application/sales"
	"github.com/jhoicas/PharmGest-api/internal/application/usecase"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	ProductUC         *usecase.ProductUseCase
	CategoryUC        *usecase.CategoryUseCase
	BatchUC           *inventory.BatchUseCase
	SettleUC          *sales.SettleUseCase
	HistoryUC         *sales.HistoryUseCase
	InvoiceUC         *billing.InvoiceUseCase
	ReportUC          *reports.ReportUseCase
	ExpiryWarningDays int
	JWTSecret         string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	productHandler := NewProductHandler(deps.ProductUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	batchHandler := NewBatchHandler(deps.BatchUC, deps.ReportUC, deps.ExpiryWarningDays)
	saleHandler := NewSaleHandler(deps.SettleUC, deps.HistoryUC, deps.InvoiceUC)
	reportHandler := NewReportHandler(deps.ReportUC)

	// Auth (login público)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/auth/register", adminOnly, authHandler.Register)

	// Products: búsqueda para mostrador, mutaciones sólo admin
	protected.Get("/products", anyRole, productHandler.Search)
	protected.Post("/products", adminOnly, productHandler.Create)
	protected.Get("/products/:id", anyRole, productHandler.GetByID)
	protected.Put("/products/:id", adminOnly, productHandler.Update)
	protected.Delete("/products/:id", adminOnly, productHandler.Delete)
	protected.Put("/products/:id/stock", adminOnly, productHandler.SetStock)
	protected.Get("/products/:id/batches", anyRole, batchHandler.ListByProduct)
	protected.Post("/products/:id/batches", adminOnly, batchHandler.Add)

	// Batches (registrar rutas fijas antes de :id)
	protected.Get("/batches/expiring", anyRole, batchHandler.Expiring)
	protected.Post("/batches/import", adminOnly, batchHandler.Import)
	protected.Delete("/batches/:id", adminOnly, batchHandler.Delete)

	// Sales
	protected.Post("/sales", anyRole, saleHandler.Settle)
	protected.Get("/sales", adminOnly, saleHandler.List)
	protected.Get("/sales/:id", adminOnly, saleHandler.Get)
	protected.Get("/sales/:id/invoice", anyRole, saleHandler.Invoice)

	// Reports
	protected.Get("/reports/sales.xlsx", adminOnly, reportHandler.SalesXLSX)

	// Categories
	protected.Get("/categories", anyRole, categoryHandler.List)
	protected.Post("/categories", adminOnly, categoryHandler.Create)
}
