package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

var batchColumns = []string{"id", "product_id", "batch_code", "stock", "expiry_date", "entry_date"}

// Orden FEFO: vence primero, entró primero, id como desempate estable.
var fefoOrder = []string{"expiry_date", "entry_date", "id"}

type batchRow struct {
	ID         string    `db:"id"`
	ProductID  string    `db:"product_id"`
	BatchCode  string    `db:"batch_code"`
	Stock      int       `db:"stock"`
	ExpiryDate time.Time `db:"expiry_date"`
	EntryDate  time.Time `db:"entry_date"`
}

func (r batchRow) toEntity() *entity.ProductBatch {
	return &entity.ProductBatch{
		ID:         r.ID,
		ProductID:  r.ProductID,
		BatchCode:  r.BatchCode,
		Stock:      r.Stock,
		ExpiryDate: r.ExpiryDate,
		EntryDate:  r.EntryDate,
	}
}

// BatchRepo implementación de BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx.
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

func (r *BatchRepo) Create(ctx context.Context, b *entity.ProductBatch) error {
	sql, args, err := psql.Insert("product_batches").
		Columns(batchColumns...).
		Values(b.ID, b.ProductID, b.BatchCode, b.Stock, b.ExpiryDate, b.EntryDate).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert batch: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.ProductBatch, error) {
	if !validID(id) {
		return nil, nil
	}
	sql, args, err := psql.Select(batchColumns...).From("product_batches").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select batch: %w", err)
	}
	var row batchRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return row.toEntity(), nil
}

func (r *BatchRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductBatch, error) {
	if !validID(productID) {
		return nil, nil
	}
	return r.list(ctx, psql.Select(batchColumns...).From("product_batches").
		Where(squirrel.Eq{"product_id": productID}).OrderBy(fefoOrder...))
}

// ListAvailableForUpdate bloquea con FOR UPDATE los lotes con stock del producto.
func (r *BatchRepo) ListAvailableForUpdate(ctx context.Context, productID string) ([]*entity.ProductBatch, error) {
	if !validID(productID) {
		return nil, nil
	}
	return r.list(ctx, psql.Select(batchColumns...).From("product_batches").
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Gt{"stock": 0}).
		OrderBy(fefoOrder...).
		Suffix("FOR UPDATE"))
}

func (r *BatchRepo) ListExpiringBefore(ctx context.Context, limit time.Time) ([]*entity.ProductBatch, error) {
	return r.list(ctx, psql.Select(batchColumns...).From("product_batches").
		Where(squirrel.Gt{"stock": 0}).
		Where(squirrel.Lt{"expiry_date": limit}).
		OrderBy(fefoOrder...))
}

func (r *BatchRepo) list(ctx context.Context, b squirrel.SelectBuilder) ([]*entity.ProductBatch, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list batches: %w", err)
	}
	var rows []batchRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	out := make([]*entity.ProductBatch, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *BatchRepo) UpdateStock(ctx context.Context, batchID string, stock int) error {
	if !validID(batchID) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, "UPDATE product_batches SET stock = $2 WHERE id = $1", batchID, stock)
	if err != nil {
		return fmt.Errorf("update batch stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, "DELETE FROM product_batches WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
