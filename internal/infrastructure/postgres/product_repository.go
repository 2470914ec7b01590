package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{
	"id", "sku", "name", "category_id", "price", "box_price", "unit_price", "cost",
	"total_stock", "is_fractionable", "units_per_box", "created_at", "updated_at",
}

type productRow struct {
	ID             string          `db:"id"`
	SKU            string          `db:"sku"`
	Name           string          `db:"name"`
	CategoryID     *string         `db:"category_id"`
	Price          decimal.Decimal `db:"price"`
	BoxPrice       decimal.Decimal `db:"box_price"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	Cost           decimal.Decimal `db:"cost"`
	TotalStock     int             `db:"total_stock"`
	IsFractionable bool            `db:"is_fractionable"`
	UnitsPerBox    int             `db:"units_per_box"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (r productRow) toEntity() *entity.Product {
	p := &entity.Product{
		ID:             r.ID,
		SKU:            r.SKU,
		Name:           r.Name,
		Price:          r.Price,
		BoxPrice:       r.BoxPrice,
		UnitPrice:      r.UnitPrice,
		Cost:           r.Cost,
		TotalStock:     r.TotalStock,
		IsFractionable: r.IsFractionable,
		UnitsPerBox:    r.UnitsPerBox,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.CategoryID != nil {
		p.CategoryID = *r.CategoryID
	}
	return p
}

func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	sql, args, err := psql.Insert("products").
		Columns(productColumns...).
		Values(p.ID, p.SKU, p.Name, nullableID(p.CategoryID), p.Price, p.BoxPrice, p.UnitPrice, p.Cost,
			p.TotalStock, p.IsFractionable, p.UnitsPerBox, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert product: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, b squirrel.SelectBuilder) (*entity.Product, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select product: %w", err)
	}
	var row productRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toEntity(), nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, psql.Select(productColumns...).From("products").Where(squirrel.Eq{"id": id}))
}

// GetByIDForUpdate obtiene el producto con SELECT ... FOR UPDATE.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, psql.Select(productColumns...).From("products").
		Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

// GetBySKU busca por SKU sin distinguir mayúsculas.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, psql.Select(productColumns...).From("products").
		Where(squirrel.Expr("lower(sku) = lower(?)", sku)))
}

// GetByIDs devuelve los productos existentes indexados por ID.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product)
	ids = validIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	sql, args, err := psql.Select(productColumns...).From("products").Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select products: %w", err)
	}
	var rows []productRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	for _, row := range rows {
		out[row.ID] = row.toEntity()
	}
	return out, nil
}

// Update actualiza datos del catálogo y el costo por caja. No toca total_stock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	sql, args, err := psql.Update("products").SetMap(map[string]any{
		"sku":             p.SKU,
		"name":            p.Name,
		"category_id":     nullableID(p.CategoryID),
		"price":           p.Price,
		"box_price":       p.BoxPrice,
		"unit_price":      p.UnitPrice,
		"cost":            p.Cost,
		"is_fractionable": p.IsFractionable,
		"units_per_box":   p.UnitsPerBox,
		"updated_at":      p.UpdatedAt,
	}).Where(squirrel.Eq{"id": p.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("build update product: %w", err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTotalStock fija el stock total en unidades base.
func (r *ProductRepo) UpdateTotalStock(ctx context.Context, productID string, total int) error {
	return r.setColumn(ctx, productID, "total_stock", total)
}

// UpdateCost fija el costo por caja.
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	return r.setColumn(ctx, productID, "cost", cost)
}

func (r *ProductRepo) setColumn(ctx context.Context, productID, column string, value any) error {
	if !validID(productID) {
		return domain.ErrNotFound
	}
	sql, args, err := psql.Update("products").
		Set(column, value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": productID}).ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", column, err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update product %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search busca por nombre o SKU (ILIKE), ordenado por nombre.
func (r *ProductRepo) Search(ctx context.Context, query string, limit int) ([]*entity.Product, error) {
	b := psql.Select(productColumns...).From("products").OrderBy("lower(name)", "id")
	if query != "" {
		like := "%" + escapeLike(query) + "%"
		b = b.Where(squirrel.Or{squirrel.ILike{"name": like}, squirrel.ILike{"sku": like}})
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search products: %w", err)
	}
	var rows []productRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// Delete elimina el producto; los lotes caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
