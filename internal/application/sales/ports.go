package sales

import "context"

// InvoiceRenderer genera el comprobante de una venta ya confirmada y devuelve la ruta del archivo.
type InvoiceRenderer interface {
	Render(ctx context.Context, saleID string) (string, error)
}
