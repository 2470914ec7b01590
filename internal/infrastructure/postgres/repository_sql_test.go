package postgres

import (
	"context"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
)

// recordingQuerier guarda el SQL y los argumentos; Exec reporta una fila afectada.
type recordingQuerier struct {
	sql  string
	args []any
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql, q.args = sql, args
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("Query no esperado")
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql, q.args = sql, args
	return numberRow(7)
}

type numberRow int64

func (n numberRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = int64(n)
	return nil
}

// argFor devuelve el argumento ligado a "column = $N" en un UPDATE.
func argFor(t *testing.T, sql string, args []any, column string) any {
	t.Helper()
	m := regexp.MustCompile(`\b` + column + ` = \$(\d+)`).FindStringSubmatch(sql)
	require.Len(t, m, 2, "columna %s ausente en %q", column, sql)
	n, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	require.LessOrEqual(t, n, len(args))
	return args[n-1]
}

func TestProductUpdate_PersisteCosto(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewProductRepository(q)

	err := repo.Update(context.Background(), &entity.Product{
		ID: "8f14e45f-ceea-467f-a0e6-5f7a1f1e0b3c", SKU: "IBU-600", Name: "Ibuprofeno",
		Price: decimal.NewFromInt(250), Cost: decimal.NewFromInt(100), UnitsPerBox: 1,
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Contains(t, q.sql, "cost = $")
	assert.NotContains(t, q.sql, "total_stock")
	cost, ok := argFor(t, q.sql, q.args, "cost").(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, cost.Equal(decimal.NewFromInt(100)), cost.String())
}

func TestSaleCreate_GuardaCajero(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewSaleRepository(q)
	sale := &entity.Sale{
		ID: "8f14e45f-ceea-467f-a0e6-5f7a1f1e0b3c", Date: time.Now(), Total: decimal.NewFromInt(80),
		PaymentMethod: entity.PaymentCash, CashierID: "u-caja1", CashierName: "caja1",
	}

	require.NoError(t, repo.Create(context.Background(), sale))
	assert.Contains(t, q.sql, "cashier_id")
	assert.Contains(t, q.args, "u-caja1")
	assert.Equal(t, int64(7), sale.Number)
}
