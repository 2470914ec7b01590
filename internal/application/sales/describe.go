package sales

import (
	"fmt"

	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
)

// RemovedProductName se muestra cuando el detalle apunta a un producto borrado.
const RemovedProductName = "Producto eliminado"

// InvoiceNumber formatea el consecutivo de la venta (000042).
func InvoiceNumber(number int64) string {
	return fmt.Sprintf("%06d", number)
}

// LineDescription nombre de la línea con el modo de venta para fraccionables.
func LineDescription(product *entity.Product, isBoxSale bool) string {
	if product == nil {
		return RemovedProductName
	}
	if !product.IsFractionable {
		return product.Name
	}
	if isBoxSale {
		return product.Name + " (CAJA)"
	}
	return product.Name + " (UNIDAD)"
}
