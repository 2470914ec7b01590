package billing_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PharmGest-api/internal/application/billing"
	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/infrastructure/memory"
)

type fakeGenerator struct {
	last *billing.InvoiceDocument
}

func (g *fakeGenerator) GenerateInvoicePDF(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	g.last = doc
	return []byte("%PDF-fake"), nil
}

func seedSale(t *testing.T, store *memory.Store) *entity.Sale {
	t.Helper()
	ctx := context.Background()
	products := store.ProductRepository()
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: "p-frac", SKU: "AMOX", Name: "Amoxicilina 500mg", IsFractionable: true, UnitsPerBox: 10,
	}))
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: "p-gone", SKU: "OLD", Name: "Jarabe", UnitsPerBox: 1,
	}))

	sale := &entity.Sale{
		ID: "s1", Date: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		Total: decimal.NewFromInt(700), PaymentMethod: entity.PaymentCash,
		CashierID: "u-caja1", CashierName: "caja1",
	}
	salesRepo := store.SaleRepository()
	require.NoError(t, salesRepo.Create(ctx, sale))
	require.NoError(t, salesRepo.CreateDetail(ctx, &entity.SaleDetail{
		ID: "d1", SaleID: "s1", LineNo: 1, ProductID: "p-frac", Quantity: 2,
		UnitPrice: decimal.NewFromInt(300), Subtotal: decimal.NewFromInt(600), IsBoxSale: true,
	}))
	require.NoError(t, salesRepo.CreateDetail(ctx, &entity.SaleDetail{
		ID: "d2", SaleID: "s1", LineNo: 2, ProductID: "p-gone", Quantity: 1,
		UnitPrice: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(100), IsBoxSale: true,
	}))
	require.NoError(t, products.Delete(ctx, "p-gone"))
	return sale
}

func TestBuild_DescripcionesYProductoEliminado(t *testing.T) {
	store := memory.NewStore()
	sale := seedSale(t, store)
	uc := billing.NewInvoiceUseCase(store.SaleRepository(), store.ProductRepository(), &fakeGenerator{},
		billing.PharmacyInfo{Name: "Farmacia Test"}, t.TempDir(), zerolog.Nop())

	doc, filename, err := uc.Build(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "factura_000001.pdf", filename)
	assert.Equal(t, "000001", doc.Number)
	assert.Equal(t, "Farmacia Test", doc.Pharmacy.Name)
	require.Len(t, doc.Lines, 2)
	assert.Equal(t, "Amoxicilina 500mg (CAJA)", doc.Lines[0].Description)
	assert.Equal(t, "Producto eliminado", doc.Lines[1].Description)
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(700)))
}

func TestRender_EscribeArchivo(t *testing.T) {
	store := memory.NewStore()
	sale := seedSale(t, store)
	dir := filepath.Join(t.TempDir(), "facturas")
	gen := &fakeGenerator{}
	uc := billing.NewInvoiceUseCase(store.SaleRepository(), store.ProductRepository(), gen,
		billing.PharmacyInfo{}, dir, zerolog.Nop())

	path, err := uc.Render(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "factura_000001.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(data))
	assert.Equal(t, "caja1", gen.last.CashierName)
}

func TestDownload_VentaInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := billing.NewInvoiceUseCase(store.SaleRepository(), store.ProductRepository(), &fakeGenerator{},
		billing.PharmacyInfo{}, t.TempDir(), zerolog.Nop())

	_, _, err := uc.Download(context.Background(), "nope", billing.Viewer{Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownload_VendedorSoloSusVentas(t *testing.T) {
	store := memory.NewStore()
	sale := seedSale(t, store)
	legacy := &entity.Sale{ID: "s-legacy", Date: sale.Date, Total: decimal.NewFromInt(50), CashierName: "caja1"}
	require.NoError(t, store.SaleRepository().Create(context.Background(), legacy))
	uc := billing.NewInvoiceUseCase(store.SaleRepository(), store.ProductRepository(), &fakeGenerator{},
		billing.PharmacyInfo{}, t.TempDir(), zerolog.Nop())

	cases := []struct {
		name   string
		saleID string
		viewer billing.Viewer
		err    error
	}{
		{"cajero de la venta", sale.ID, billing.Viewer{UserID: "u-caja1", Username: "caja1", Role: entity.RoleVendedor}, nil},
		{"admin ve todas", sale.ID, billing.Viewer{UserID: "u-admin", Username: "admin", Role: entity.RoleAdmin}, nil},
		{"otro vendedor", sale.ID, billing.Viewer{UserID: "u-caja2", Username: "caja2", Role: entity.RoleVendedor}, domain.ErrForbidden},
		{"mismo nombre, otro usuario", sale.ID, billing.Viewer{UserID: "u-otro", Username: "caja1", Role: entity.RoleVendedor}, domain.ErrForbidden},
		{"venta sin cajero_id por nombre", legacy.ID, billing.Viewer{UserID: "u-caja1", Username: "caja1", Role: entity.RoleVendedor}, nil},
		{"venta sin cajero_id ajena", legacy.ID, billing.Viewer{UserID: "u-caja2", Username: "caja2", Role: entity.RoleVendedor}, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pdf, _, err := uc.Download(context.Background(), tc.saleID, tc.viewer)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.Nil(t, pdf)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "%PDF-fake", string(pdf))
		})
	}
}
