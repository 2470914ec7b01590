package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/PharmGest-api/internal/application/billing"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", formatMoney(decimal.Zero))
	assert.Equal(t, "$250.00", formatMoney(decimal.NewFromInt(250)))
	assert.Equal(t, "$25,000.50", formatMoney(decimal.RequireFromString("25000.5")))
	assert.Equal(t, "$1,000,000.00", formatMoney(decimal.NewFromInt(1_000_000)))
}

func TestGenerateInvoicePDF(t *testing.T) {
	doc := &appbilling.InvoiceDocument{
		Pharmacy:    appbilling.PharmacyInfo{Name: "Farmacia PharmGest", Address: "Av. Principal #123, Ciudad", RNC: "1-23-45678-9", Phone: "(809) 555-0101"},
		Number:      "000001",
		Date:        time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		CashierName: "vendedor",
		Lines: []appbilling.InvoiceLine{
			{Quantity: 2, Description: "Ibuprofeno 600mg (Caja x 10) (CAJA)", UnitPrice: decimal.NewFromInt(250), Subtotal: decimal.NewFromInt(500)},
		},
		Total: decimal.NewFromInt(500),
	}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
