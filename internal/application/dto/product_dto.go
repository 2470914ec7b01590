package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Para no fraccionables units_per_box se fuerza a 1.
type CreateProductRequest struct {
	SKU            string          `json:"sku" validate:"required,min=1,max=100"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID     string          `json:"category_id"`
	Price          decimal.Decimal `json:"price"`
	BoxPrice       decimal.Decimal `json:"box_price"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Cost           decimal.Decimal `json:"cost"`
	IsFractionable bool            `json:"is_fractionable"`
	UnitsPerBox    int             `json:"units_per_box"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
type UpdateProductRequest struct {
	SKU            *string          `json:"sku"`
	Name           *string          `json:"name"`
	CategoryID     *string          `json:"category_id"`
	Price          *decimal.Decimal `json:"price"`
	BoxPrice       *decimal.Decimal `json:"box_price"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	Cost           *decimal.Decimal `json:"cost"`
	IsFractionable *bool            `json:"is_fractionable"`
	UnitsPerBox    *int             `json:"units_per_box"`
}

// SetStockRequest body para PUT /api/products/:id/stock (solo sin lotes).
type SetStockRequest struct {
	TotalStock int `json:"total_stock"`
}

// ProductResponse salida de un producto con su stock ya formateado.
type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	CategoryID     string          `json:"category_id,omitempty"`
	Price          decimal.Decimal `json:"price"`
	BoxPrice       decimal.Decimal `json:"box_price"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Cost           decimal.Decimal `json:"cost"`
	TotalStock     int             `json:"total_stock"`
	StockDisplay   string          `json:"stock_display"`
	StockLevel     string          `json:"stock_level"`
	IsFractionable bool            `json:"is_fractionable"`
	UnitsPerBox    int             `json:"units_per_box"`
	MaxBoxes       int             `json:"max_boxes"`
	MaxUnits       int             `json:"max_units"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos de una búsqueda.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
