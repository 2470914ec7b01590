package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PharmGest-api/internal/application/dto"
	appinventory "github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/inventory"
)

// SettleUseCase liquida un carrito: crea la venta, descuenta lotes FEFO y registra los
// detalles en una única transacción. La factura se genera después del commit.
type SettleUseCase struct {
	txRunner  appinventory.TxRunner
	allocator *appinventory.Allocator
	renderer  InvoiceRenderer
	now       func() time.Time
	log       zerolog.Logger
}

// NewSettleUseCase construye el caso de uso. renderer puede ser nil (sin factura).
func NewSettleUseCase(
	txRunner appinventory.TxRunner,
	allocator *appinventory.Allocator,
	renderer InvoiceRenderer,
	log zerolog.Logger,
) *SettleUseCase {
	return &SettleUseCase{
		txRunner:  txRunner,
		allocator: allocator,
		renderer:  renderer,
		now:       time.Now,
		log:       log.With().Str("component", "settle").Logger(),
	}
}

// SetClock reemplaza el reloj (tests).
func (uc *SettleUseCase) SetClock(now func() time.Time) { uc.now = now }

type pricedLine struct {
	product   *entity.Product
	quantity  int
	isBoxSale bool
	unitPrice decimal.Decimal
	subtotal  decimal.Decimal
	units     int
}

// Settle valida el carrito, calcula el total y confirma la venta.
//
// Retorna:
//   - domain.ErrInvalidInput        carrito vacío, cantidad <= 0 o método de pago desconocido.
//   - domain.ErrNotFound            algún producto no existe.
//   - *domain.InsufficientStockError (errors.Is ErrInsufficientStock) si una línea no alcanza.
//   - domain.ErrInsufficientPayment si AmountPaid no cubre el total.
//
// Cualquier error deshace la venta completa.
func (uc *SettleUseCase) Settle(ctx context.Context, in dto.SettleSaleRequest) (*dto.SaleReceiptResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if strings.TrimSpace(l.ProductID) == "" || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	method := strings.ToUpper(strings.TrimSpace(in.PaymentMethod))
	switch method {
	case "":
		method = entity.PaymentCash
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentTransfer:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.AmountPaid != nil && in.AmountPaid.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var (
		sale  *entity.Sale
		lines []pricedLine
	)
	err := uc.txRunner.Run(ctx, func(repos appinventory.Repos) error {
		// 1. Precios y total antes de mutar nada
		products := make(map[string]*entity.Product, len(in.Lines))
		lines = make([]pricedLine, 0, len(in.Lines))
		total := decimal.Zero
		for _, l := range in.Lines {
			product, ok := products[l.ProductID]
			if !ok {
				p, err := repos.Products.GetByIDForUpdate(ctx, l.ProductID)
				if err != nil {
					return err
				}
				if p == nil {
					return domain.ErrNotFound
				}
				p.NormalizeUnits()
				products[l.ProductID] = p
				product = p
			}
			isBox := l.IsBoxSale || !product.IsFractionable
			price := inventory.LinePrice(product, isBox)
			subtotal := price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			lines = append(lines, pricedLine{
				product:   product,
				quantity:  l.Quantity,
				isBoxSale: isBox,
				unitPrice: price,
				subtotal:  subtotal,
				units:     inventory.UnitsToDeduct(product, l.Quantity, isBox),
			})
			total = total.Add(subtotal)
		}
		if in.AmountPaid != nil && in.AmountPaid.LessThan(total) {
			return domain.ErrInsufficientPayment
		}

		// 2. Cabecera
		sale = &entity.Sale{
			ID:            uuid.New().String(),
			Date:          uc.now(),
			Total:         total,
			PaymentMethod: method,
			NCF:           strings.TrimSpace(in.NCF),
			CashierID:     in.CashierID,
			CashierName:   in.CashierName,
		}
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}

		// 3. Por línea: verificar stock, FEFO, recálculo, detalle
		for i, l := range lines {
			if l.product.TotalStock < l.units {
				return &domain.InsufficientStockError{
					ProductID:   l.product.ID,
					ProductName: l.product.Name,
					Requested:   l.units,
					Available:   l.product.TotalStock,
				}
			}
			remaining, err := uc.allocator.Consume(ctx, repos, l.product, l.units)
			if err != nil {
				return err
			}
			// varias líneas del mismo producto comparten el puntero
			l.product.TotalStock = remaining

			detail := &entity.SaleDetail{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				LineNo:    i + 1,
				ProductID: l.product.ID,
				Quantity:  l.quantity,
				UnitPrice: l.unitPrice,
				Subtotal:  l.subtotal,
				IsBoxSale: l.isBoxSale,
			}
			if err := repos.Sales.CreateDetail(ctx, detail); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	receipt := &dto.SaleReceiptResponse{
		SaleID:        sale.ID,
		Number:        sale.Number,
		InvoiceNumber: InvoiceNumber(sale.Number),
		Date:          sale.Date,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		CashierName:   sale.CashierName,
		Lines:         make([]dto.SaleLineResponse, 0, len(lines)),
	}
	if in.AmountPaid != nil {
		paid := *in.AmountPaid
		change := paid.Sub(sale.Total)
		receipt.AmountPaid = &paid
		receipt.Change = &change
	}
	for i, l := range lines {
		receipt.Lines = append(receipt.Lines, dto.SaleLineResponse{
			LineNo:      i + 1,
			ProductID:   l.product.ID,
			Description: LineDescription(l.product, l.isBoxSale),
			Quantity:    l.quantity,
			UnitPrice:   l.unitPrice,
			Subtotal:    l.subtotal,
			IsBoxSale:   l.isBoxSale,
		})
	}
	uc.log.Info().Str("sale_id", sale.ID).Int64("number", sale.Number).Str("total", sale.Total.StringFixed(2)).Msg("venta registrada")

	// La venta ya es definitiva: un fallo al generar la factura solo se registra.
	if uc.renderer != nil {
		path, rErr := uc.renderer.Render(ctx, sale.ID)
		if rErr != nil {
			uc.log.Error().Err(rErr).Str("sale_id", sale.ID).Msg("no se pudo generar la factura")
		} else {
			receipt.InvoicePath = path
		}
	}
	return receipt, nil
}
