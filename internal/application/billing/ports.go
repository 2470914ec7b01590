package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
)

// Viewer quien pide la factura (tomado del token).
type Viewer struct {
	UserID   string
	Username string
	Role     string
}

// CanView el admin ve todas; el vendedor solo las que liquidó.
// Ventas sin CashierID (anteriores a guardarlo) se comparan por nombre de cajero.
func (v Viewer) CanView(sale *entity.Sale) bool {
	if v.Role == entity.RoleAdmin {
		return true
	}
	if sale.CashierID != "" {
		return v.UserID != "" && sale.CashierID == v.UserID
	}
	return v.Username != "" && sale.CashierName == v.Username
}

// PharmacyInfo datos fijos del encabezado de la factura.
type PharmacyInfo struct {
	Name    string
	Address string
	RNC     string
	Phone   string
}

// InvoiceLine línea impresa: cantidad, descripción con modo de venta, precio y total.
type InvoiceLine struct {
	Quantity    int
	Description string
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// InvoiceDocument todo lo que necesita el generador para imprimir una venta.
type InvoiceDocument struct {
	Pharmacy      PharmacyInfo
	Number        string // 000042
	Date          time.Time
	CashierName   string
	PaymentMethod string
	NCF           string
	Lines         []InvoiceLine
	Total         decimal.Decimal
}

// InvoicePDFGenerator puerto de generación del PDF de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}
