package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddBatchRequest body para POST /api/products/:id/batches.
// Quantity va en cajas para productos fraccionables y en unidades para el resto.
// ExpiryDate en formato YYYY-MM-DD.
type AddBatchRequest struct {
	BatchCode  string           `json:"batch_code"`
	ExpiryDate string           `json:"expiry_date"`
	Quantity   int              `json:"quantity"`
	BoxCost    *decimal.Decimal `json:"box_cost,omitempty"`
}

// BatchResponse lote con su semáforo de vencimiento.
type BatchResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	BatchCode  string    `json:"batch_code"`
	Stock      int       `json:"stock"`
	ExpiryDate time.Time `json:"expiry_date"`
	EntryDate  time.Time `json:"entry_date"`
	Tier       string    `json:"tier"`
	DaysLeft   int       `json:"days_left"`
}

// ProductBatchesResponse lotes de un producto en orden FEFO.
type ProductBatchesResponse struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	TotalStock   int             `json:"total_stock"`
	StockDisplay string          `json:"stock_display"`
	Batches      []BatchResponse `json:"batches"`
}

// ExpiringBatchResponse lote próximo a vencer (o vencido) con datos del producto.
type ExpiringBatchResponse struct {
	BatchResponse
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
}

// BatchImportRow fila leída de una planilla de lotes.
type BatchImportRow struct {
	Row        int
	SKU        string
	BatchCode  string
	Quantity   int
	ExpiryDate time.Time
}

// BatchImportError error de una fila de la importación.
type BatchImportError struct {
	Row     int    `json:"row"`
	SKU     string `json:"sku,omitempty"`
	Message string `json:"message"`
}

// BatchImportResponse resumen de la importación de lotes.
type BatchImportResponse struct {
	Imported int                `json:"imported"`
	Failed   int                `json:"failed"`
	Errors   []BatchImportError `json:"errors,omitempty"`
}
