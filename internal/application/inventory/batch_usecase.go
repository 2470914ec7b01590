package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/PharmGest-api/internal/application/dto"
	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/inventory"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

// DateLayout formato de fecha de vencimiento en la API y en las planillas.
const DateLayout = "2006-01-02"

// BatchUseCase alta, baja y consulta de lotes. Toda mutación recalcula el stock
// total del producto en la misma transacción.
type BatchUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	warningDays int
	now         func() time.Time
	log         zerolog.Logger
}

// NewBatchUseCase construye el caso de uso. warningDays <= 0 usa la ventana por defecto.
func NewBatchUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	warningDays int,
	log zerolog.Logger,
) *BatchUseCase {
	if warningDays <= 0 {
		warningDays = inventory.DefaultWarningWindowDays
	}
	return &BatchUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		batchRepo:   batchRepo,
		warningDays: warningDays,
		now:         time.Now,
		log:         log,
	}
}

// SetClock reemplaza el reloj (tests).
func (uc *BatchUseCase) SetClock(now func() time.Time) { uc.now = now }

// AddBatch registra un lote. Para fraccionables Quantity son cajas y se guarda en
// unidades base. Con BoxCost el costo por caja pasa a ser el promedio ponderado.
func (uc *BatchUseCase) AddBatch(ctx context.Context, productID string, in dto.AddBatchRequest) (*dto.BatchResponse, error) {
	code := strings.TrimSpace(in.BatchCode)
	if productID == "" || code == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	expiry, err := time.Parse(DateLayout, strings.TrimSpace(in.ExpiryDate))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.BoxCost != nil && in.BoxCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var batch *entity.ProductBatch
	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		product, err := repos.Products.GetByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		product.NormalizeUnits()

		if in.BoxCost != nil {
			cost := inventory.CostCalculator(product.TotalStock, product.UnitsPerBox, product.Cost, in.Quantity, *in.BoxCost)
			if err := repos.Products.UpdateCost(ctx, product.ID, cost); err != nil {
				return err
			}
		}

		units := in.Quantity
		if product.IsFractionable {
			units = in.Quantity * product.UnitsPerBox
		}
		batch = &entity.ProductBatch{
			ID:         uuid.New().String(),
			ProductID:  product.ID,
			BatchCode:  code,
			Stock:      units,
			ExpiryDate: expiry,
			EntryDate:  uc.now(),
		}
		if err := repos.Batches.Create(ctx, batch); err != nil {
			return err
		}
		_, err = RecomputeTotalStock(ctx, repos, product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", productID).Str("batch_code", code).Int("units", batch.Stock).Msg("lote registrado")
	resp := uc.toBatchResponse(batch)
	return &resp, nil
}

// DeleteBatch elimina un lote y recalcula el stock del producto.
func (uc *BatchUseCase) DeleteBatch(ctx context.Context, batchID string) error {
	return uc.txRunner.Run(ctx, func(repos Repos) error {
		batch, err := repos.Batches.GetByID(ctx, batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if err := repos.Batches.Delete(ctx, batchID); err != nil {
			return err
		}
		_, err = RecomputeTotalStock(ctx, repos, batch.ProductID)
		return err
	})
}

// ListBatches lotes del producto en orden FEFO con su semáforo.
func (uc *BatchUseCase) ListBatches(ctx context.Context, productID string) (*dto.ProductBatchesResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	batches, err := uc.batchRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	inventory.SortFEFO(batches)
	items := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, uc.toBatchResponse(b))
	}
	return &dto.ProductBatchesResponse{
		ProductID:    product.ID,
		ProductName:  product.Name,
		TotalStock:   product.TotalStock,
		StockDisplay: inventory.FormatStock(product.TotalStock, product.IsFractionable, product.UnitsPerBox),
		Batches:      items,
	}, nil
}

// ExpiringBatches lotes con stock que vencen dentro de withinDays (incluye vencidos).
// withinDays <= 0 usa la ventana configurada.
func (uc *BatchUseCase) ExpiringBatches(ctx context.Context, withinDays int) ([]dto.ExpiringBatchResponse, error) {
	if withinDays <= 0 {
		withinDays = uc.warningDays
	}
	today := uc.now()
	limit := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, withinDays)
	batches, err := uc.batchRepo.ListExpiringBefore(ctx, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(batches))
	for _, b := range batches {
		ids = append(ids, b.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ExpiringBatchResponse, 0, len(batches))
	for _, b := range batches {
		item := dto.ExpiringBatchResponse{BatchResponse: uc.toBatchResponse(b)}
		if p := products[b.ProductID]; p != nil {
			item.ProductName = p.Name
			item.ProductSKU = p.SKU
		}
		out = append(out, item)
	}
	return out, nil
}

func (uc *BatchUseCase) toBatchResponse(b *entity.ProductBatch) dto.BatchResponse {
	tier, days := inventory.Classify(b.ExpiryDate, uc.now(), uc.warningDays)
	return dto.BatchResponse{
		ID:         b.ID,
		ProductID:  b.ProductID,
		BatchCode:  b.BatchCode,
		Stock:      b.Stock,
		ExpiryDate: b.ExpiryDate,
		EntryDate:  b.EntryDate,
		Tier:       string(tier),
		DaysLeft:   days,
	}
}
