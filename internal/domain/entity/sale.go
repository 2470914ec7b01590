package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash     = "EFECTIVO"
	PaymentCard     = "TARJETA"
	PaymentTransfer = "TRANSFERENCIA"
)

// Sale es la cabecera inmutable de una venta liquidada.
type Sale struct {
	ID            string
	Number        int64 // consecutivo de factura, asignado al persistir
	Date          time.Time
	Total         decimal.Decimal
	PaymentMethod string
	NCF           string // comprobante fiscal, opcional
	CashierID     string // usuario que liquidó; vacío en ventas previas al registro del cajero
	CashierName   string
}
