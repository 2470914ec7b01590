package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUsernameTaken         = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrDuplicateSKU          = fmt.Errorf("sku ya registrado: %w", ErrDuplicate)
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInsufficientPayment   = errors.New("pago insuficiente")
	ErrStockManagedByBatches = errors.New("el stock del producto se calcula desde sus lotes")
	ErrPersistence           = errors.New("fallo de persistencia")
)

// InsufficientStockError detalla qué producto no alcanzó en una venta.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (tienes %d, pides %d)", e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
