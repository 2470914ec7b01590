package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

var (
	saleColumns   = []string{"id", "number", "date", "total", "payment_method", "ncf", "cashier_id", "cashier_name"}
	detailColumns = []string{"id", "sale_id", "line_no", "product_id", "quantity", "unit_price", "subtotal", "is_box_sale"}
)

type saleRow struct {
	ID            string          `db:"id"`
	Number        int64           `db:"number"`
	Date          time.Time       `db:"date"`
	Total         decimal.Decimal `db:"total"`
	PaymentMethod string          `db:"payment_method"`
	NCF           string          `db:"ncf"`
	CashierID     string          `db:"cashier_id"`
	CashierName   string          `db:"cashier_name"`
}

func (r saleRow) toEntity() *entity.Sale {
	return &entity.Sale{
		ID:            r.ID,
		Number:        r.Number,
		Date:          r.Date,
		Total:         r.Total,
		PaymentMethod: r.PaymentMethod,
		NCF:           r.NCF,
		CashierID:     r.CashierID,
		CashierName:   r.CashierName,
	}
}

type detailRow struct {
	ID        string          `db:"id"`
	SaleID    string          `db:"sale_id"`
	LineNo    int             `db:"line_no"`
	ProductID string          `db:"product_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Subtotal  decimal.Decimal `db:"subtotal"`
	IsBoxSale bool            `db:"is_box_sale"`
}

func (r detailRow) toEntity() *entity.SaleDetail {
	return &entity.SaleDetail{
		ID:        r.ID,
		SaleID:    r.SaleID,
		LineNo:    r.LineNo,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		Subtotal:  r.Subtotal,
		IsBoxSale: r.IsBoxSale,
	}
}

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera; el consecutivo sale de sale_number_seq.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	sql, args, err := psql.Insert("sales").
		Columns("id", "date", "total", "payment_method", "ncf", "cashier_id", "cashier_name").
		Values(s.ID, s.Date, s.Total, s.PaymentMethod, s.NCF, s.CashierID, s.CashierName).
		Suffix("RETURNING number").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert sale: %w", err)
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&s.Number); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) CreateDetail(ctx context.Context, d *entity.SaleDetail) error {
	sql, args, err := psql.Insert("sale_details").
		Columns(detailColumns...).
		Values(d.ID, d.SaleID, d.LineNo, d.ProductID, d.Quantity, d.UnitPrice, d.Subtotal, d.IsBoxSale).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert sale detail: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale detail: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if !validID(id) {
		return nil, nil
	}
	sql, args, err := psql.Select(saleColumns...).From("sales").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select sale: %w", err)
	}
	var row saleRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return row.toEntity(), nil
}

func (r *SaleRepo) GetDetailsBySaleID(ctx context.Context, saleID string) ([]*entity.SaleDetail, error) {
	bySale, err := r.ListDetailsBySaleIDs(ctx, []string{saleID})
	if err != nil {
		return nil, err
	}
	return bySale[saleID], nil
}

// List devuelve ventas de la más reciente a la más antigua.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	b := psql.Select(saleColumns...).From("sales").OrderBy("date DESC", "number DESC")
	if f.From != nil {
		b = b.Where(squirrel.GtOrEq{"date": *f.From})
	}
	if f.To != nil {
		b = b.Where(squirrel.LtOrEq{"date": *f.To})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sales: %w", err)
	}
	var rows []saleRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	out := make([]*entity.Sale, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// ListDetailsBySaleIDs agrupa los detalles por venta, en orden de línea.
func (r *SaleRepo) ListDetailsBySaleIDs(ctx context.Context, saleIDs []string) (map[string][]*entity.SaleDetail, error) {
	out := make(map[string][]*entity.SaleDetail)
	saleIDs = validIDs(saleIDs)
	if len(saleIDs) == 0 {
		return out, nil
	}
	sql, args, err := psql.Select(detailColumns...).From("sale_details").
		Where(squirrel.Eq{"sale_id": saleIDs}).
		OrderBy("sale_id", "line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sale details: %w", err)
	}
	var rows []detailRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list sale details: %w", err)
	}
	for _, row := range rows {
		out[row.SaleID] = append(out[row.SaleID], row.toEntity())
	}
	return out, nil
}
