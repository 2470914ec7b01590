package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/PharmGest-api/internal/application/dto"
	appinventory "github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/inventory"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

// StockSettings umbrales del semáforo de stock y tope de resultados de búsqueda.
type StockSettings struct {
	Critical   int
	Low        int
	MaxResults int
}

// DefaultStockSettings valores por defecto de la farmacia.
var DefaultStockSettings = StockSettings{Critical: 20, Low: 50, MaxResults: 100}

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía lotes
// (o manualmente mientras el producto no tenga lotes).
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	txRunner     appinventory.TxRunner
	settings     StockSettings
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	txRunner appinventory.TxRunner,
	settings StockSettings,
) *ProductUseCase {
	if settings.MaxResults <= 0 {
		settings.MaxResults = DefaultStockSettings.MaxResults
	}
	return &ProductUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		txRunner:     txRunner,
		settings:     settings,
	}
}

// Create crea un nuevo producto con stock 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		SKU:            strings.TrimSpace(in.SKU),
		Name:           strings.TrimSpace(in.Name),
		CategoryID:     strings.TrimSpace(in.CategoryID),
		Price:          in.Price,
		BoxPrice:       in.BoxPrice,
		UnitPrice:      in.UnitPrice,
		Cost:           in.Cost,
		IsFractionable: in.IsFractionable,
		UnitsPerBox:    in.UnitsPerBox,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.validate(ctx, product); err != nil {
		return nil, err
	}
	err := uc.txRunner.Run(ctx, func(repos appinventory.Repos) error {
		existing, err := repos.Products.GetBySKU(ctx, product.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateSKU
		}
		return repos.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return uc.toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toProductResponse(product), nil
}

// Update actualiza un producto (incluido el costo por caja). No permite modificar el stock.
// Lectura, chequeo de SKU y escritura van en la misma transacción.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(repos appinventory.Repos) error {
		p, err := repos.Products.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		applyUpdate(p, in)
		if err := uc.validate(ctx, p); err != nil {
			return err
		}
		if in.SKU != nil {
			other, err := repos.Products.GetBySKU(ctx, p.SKU)
			if err != nil {
				return err
			}
			if other != nil && other.ID != p.ID {
				return domain.ErrDuplicateSKU
			}
		}
		p.UpdatedAt = time.Now()
		if err := repos.Products.Update(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toProductResponse(product), nil
}

func applyUpdate(p *entity.Product, in dto.UpdateProductRequest) {
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.CategoryID != nil {
		p.CategoryID = strings.TrimSpace(*in.CategoryID)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.BoxPrice != nil {
		p.BoxPrice = *in.BoxPrice
	}
	if in.UnitPrice != nil {
		p.UnitPrice = *in.UnitPrice
	}
	if in.Cost != nil {
		p.Cost = *in.Cost
	}
	if in.IsFractionable != nil {
		p.IsFractionable = *in.IsFractionable
	}
	if in.UnitsPerBox != nil {
		p.UnitsPerBox = *in.UnitsPerBox
	}
}

// Search busca por nombre o SKU. limit se acota a MaxResults.
func (uc *ProductUseCase) Search(ctx context.Context, query string, limit int) (*dto.ProductListResponse, error) {
	if limit <= 0 || limit > uc.settings.MaxResults {
		limit = uc.settings.MaxResults
	}
	list, err := uc.repo.Search(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Total: len(items)},
	}, nil
}

// SetManualStock fija el stock de un producto sin lotes.
// Con lotes el stock se deriva de ellos y se devuelve ErrStockManagedByBatches.
func (uc *ProductUseCase) SetManualStock(ctx context.Context, id string, stock int) (*dto.ProductResponse, error) {
	if stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(repos appinventory.Repos) error {
		p, err := repos.Products.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		batches, err := repos.Batches.ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		if len(batches) > 0 {
			return domain.ErrStockManagedByBatches
		}
		if err := repos.Products.UpdateTotalStock(ctx, id, stock); err != nil {
			return err
		}
		p.TotalStock = stock
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toProductResponse(product), nil
}

// Delete elimina un producto y sus lotes. Las ventas conservan la referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos appinventory.Repos) error {
		return repos.Products.Delete(ctx, id)
	})
}

func (uc *ProductUseCase) validate(ctx context.Context, p *entity.Product) error {
	if p.SKU == "" || p.Name == "" {
		return domain.ErrInvalidInput
	}
	if p.Price.IsNegative() || p.BoxPrice.IsNegative() || p.UnitPrice.IsNegative() || p.Cost.IsNegative() {
		return domain.ErrInvalidInput
	}
	if p.IsFractionable {
		if p.UnitsPerBox < 1 {
			return domain.ErrInvalidInput
		}
		if p.BoxPrice.IsZero() {
			p.BoxPrice = p.Price
		}
	}
	p.NormalizeUnits()
	if p.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(ctx, p.CategoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func (uc *ProductUseCase) toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		CategoryID:     p.CategoryID,
		Price:          p.Price,
		BoxPrice:       p.BoxPrice,
		UnitPrice:      p.UnitPrice,
		Cost:           p.Cost,
		TotalStock:     p.TotalStock,
		StockDisplay:   inventory.FormatStock(p.TotalStock, p.IsFractionable, p.UnitsPerBox),
		StockLevel:     string(inventory.ClassifyStock(p.TotalStock, uc.settings.Critical, uc.settings.Low)),
		IsFractionable: p.IsFractionable,
		UnitsPerBox:    p.UnitsPerBox,
		MaxBoxes:       inventory.MaxSellable(p, true),
		MaxUnits:       inventory.MaxSellable(p, false),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
