package billing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jhoicas/PharmGest-api/internal/application/sales"
	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

var _ sales.InvoiceRenderer = (*InvoiceUseCase)(nil)

// InvoiceUseCase arma la factura de una venta y la genera en PDF.
type InvoiceUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	generator   InvoicePDFGenerator
	pharmacy    PharmacyInfo
	dir         string
	log         zerolog.Logger
}

// NewInvoiceUseCase construye el caso de uso. dir es la carpeta donde Render guarda los PDF.
func NewInvoiceUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
	pharmacy PharmacyInfo,
	dir string,
	log zerolog.Logger,
) *InvoiceUseCase {
	if dir == "" {
		dir = "facturas"
	}
	return &InvoiceUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		generator:   generator,
		pharmacy:    pharmacy,
		dir:         dir,
		log:         log,
	}
}

// FileName nombre del PDF de una venta: factura_000042.pdf
func FileName(number int64) string {
	return fmt.Sprintf("factura_%s.pdf", sales.InvoiceNumber(number))
}

// Build carga la venta y sus detalles; los productos borrados salen como "Producto eliminado".
func (uc *InvoiceUseCase) Build(ctx context.Context, saleID string) (*InvoiceDocument, string, error) {
	sale, err := uc.loadSale(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	return uc.build(ctx, sale)
}

func (uc *InvoiceUseCase) loadSale(ctx context.Context, saleID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("factura: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

func (uc *InvoiceUseCase) build(ctx context.Context, sale *entity.Sale) (*InvoiceDocument, string, error) {
	details, err := uc.saleRepo.GetDetailsBySaleID(ctx, sale.ID)
	if err != nil {
		return nil, "", fmt.Errorf("factura: obtener detalles: %w", err)
	}
	ids := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, "", fmt.Errorf("factura: obtener productos: %w", err)
	}

	doc := &InvoiceDocument{
		Pharmacy:      uc.pharmacy,
		Number:        sales.InvoiceNumber(sale.Number),
		Date:          sale.Date,
		CashierName:   sale.CashierName,
		PaymentMethod: sale.PaymentMethod,
		NCF:           sale.NCF,
		Total:         sale.Total,
		Lines:         make([]InvoiceLine, 0, len(details)),
	}
	for _, d := range details {
		doc.Lines = append(doc.Lines, InvoiceLine{
			Quantity:    d.Quantity,
			Description: sales.LineDescription(products[d.ProductID], d.IsBoxSale),
			UnitPrice:   d.UnitPrice,
			Subtotal:    d.Subtotal,
		})
	}
	return doc, FileName(sale.Number), nil
}

// Download genera el PDF en memoria para viewer. Un vendedor que pide una venta
// ajena recibe ErrForbidden.
func (uc *InvoiceUseCase) Download(ctx context.Context, saleID string, viewer Viewer) ([]byte, string, error) {
	sale, err := uc.loadSale(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	if !viewer.CanView(sale) {
		uc.log.Warn().Str("sale_id", saleID).Str("user_id", viewer.UserID).Msg("factura ajena denegada")
		return nil, "", domain.ErrForbidden
	}
	return uc.generate(ctx, sale)
}

func (uc *InvoiceUseCase) generate(ctx context.Context, sale *entity.Sale) ([]byte, string, error) {
	doc, filename, err := uc.build(ctx, sale)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("factura: generación fallida: %w", err)
	}
	return pdf, filename, nil
}

// Render genera el PDF y lo guarda en la carpeta de facturas. Devuelve la ruta.
func (uc *InvoiceUseCase) Render(ctx context.Context, saleID string) (string, error) {
	sale, err := uc.loadSale(ctx, saleID)
	if err != nil {
		return "", err
	}
	pdf, filename, err := uc.generate(ctx, sale)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(uc.dir, 0o755); err != nil {
		return "", fmt.Errorf("factura: crear carpeta: %w", err)
	}
	path := filepath.Join(uc.dir, filename)
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("factura: escribir archivo: %w", err)
	}
	uc.log.Debug().Str("sale_id", saleID).Str("path", path).Msg("factura generada")
	return path, nil
}
