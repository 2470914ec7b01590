package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineRequest línea del carrito. IsBoxSale solo aplica a fraccionables.
type CartLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	IsBoxSale bool   `json:"is_box_sale"`
}

// SettleSaleRequest body para POST /api/sales.
// AmountPaid es opcional; si viene debe cubrir el total.
type SettleSaleRequest struct {
	Lines         []CartLineRequest `json:"lines"`
	PaymentMethod string            `json:"payment_method"`
	AmountPaid    *decimal.Decimal  `json:"amount_paid,omitempty"`
	NCF           string            `json:"ncf,omitempty"`
	CashierID     string            `json:"-"`
	CashierName   string            `json:"-"`
}

// SaleLineResponse línea de una venta (factura o historial).
type SaleLineResponse struct {
	LineNo      int             `json:"line_no"`
	ProductID   string          `json:"product_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	IsBoxSale   bool            `json:"is_box_sale"`
	Profit      decimal.Decimal `json:"profit"`
	CostSet     bool            `json:"cost_configured"`
}

// SaleReceiptResponse comprobante devuelto al liquidar una venta.
type SaleReceiptResponse struct {
	SaleID        string             `json:"sale_id"`
	Number        int64              `json:"number"`
	InvoiceNumber string             `json:"invoice_number"`
	Date          time.Time          `json:"date"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	AmountPaid    *decimal.Decimal   `json:"amount_paid,omitempty"`
	Change        *decimal.Decimal   `json:"change,omitempty"`
	CashierName   string             `json:"cashier_name"`
	Lines         []SaleLineResponse `json:"lines"`
	InvoicePath   string             `json:"invoice_path,omitempty"`
}

// SaleHistoryFilter filtros de GET /api/sales.
type SaleHistoryFilter struct {
	From *time.Time
	To   *time.Time
	Page PageRequest
}

// SaleSummaryResponse venta del historial con su ganancia estimada.
type SaleSummaryResponse struct {
	SaleID        string             `json:"sale_id"`
	Number        int64              `json:"number"`
	InvoiceNumber string             `json:"invoice_number"`
	Date          time.Time          `json:"date"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CashierName   string             `json:"cashier_name"`
	ItemsSummary  string             `json:"items_summary"`
	Profit        decimal.Decimal    `json:"profit"`
	ProfitTone    string             `json:"profit_tone"`
	Lines         []SaleLineResponse `json:"lines"`
}

// SaleHistoryResponse historial con las tarjetas de totales.
type SaleHistoryResponse struct {
	Items       []SaleSummaryResponse `json:"items"`
	TotalSold   decimal.Decimal       `json:"total_sold"`
	TotalProfit decimal.Decimal       `json:"total_profit"`
	SaleCount   int                   `json:"sale_count"`
	Page        PageResponse          `json:"page"`
}
