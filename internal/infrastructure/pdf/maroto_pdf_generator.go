// Package pdf genera la factura de venta de la farmacia.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Farmacia + dirección  │  N° Factura + Fecha          │
//	│  RNC / Tel                     │  Cajero / Pago               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: CANT | DESCRIPCIÓN | PRECIO | TOTAL                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	│  FOOTER: agradecimiento                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/PharmGest-api/internal/application/billing"
)

// FooterText leyenda al pie de cada factura.
const FooterText = "¡Gracias por su compra! - Sistema PharmGest ERP"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 80}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc *appbilling.InvoiceDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+doc.Number, true).
		WithAuthor(doc.Pharmacy.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(doc.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(doc.Total))

	m.AddRows(line.NewRow(6))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(FooterText, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
	)))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: farmacia (izq) y número, fecha, cajero (der).
func headerRow(doc *appbilling.InvoiceDocument) core.Row {
	left := col.New(7).Add(
		text.New(strings.ToUpper(doc.Pharmacy.Name), props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
		text.New(doc.Pharmacy.Address, props.Text{Size: 8, Top: 8, Color: colorGray}),
		text.New(fmt.Sprintf("RNC: %s   |   Tel: %s", nonEmpty(doc.Pharmacy.RNC, "—"), nonEmpty(doc.Pharmacy.Phone, "—")),
			props.Text{Size: 8, Top: 13, Color: colorGray}),
	)
	right := col.New(5).Add(
		text.New("FACTURA N° "+doc.Number, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
		}),
		text.New("Fecha: "+doc.Date.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 8, Color: colorGray,
		}),
		text.New("Cajero: "+nonEmpty(doc.CashierName, "—"), props.Text{
			Size: 8, Align: align.Right, Top: 13, Color: colorGray,
		}),
		text.New(paymentLine(doc), props.Text{
			Size: 8, Align: align.Right, Top: 18, Color: colorGray,
		}),
	)
	return row.New(24).Add(left, right)
}

func paymentLine(doc *appbilling.InvoiceDocument) string {
	s := "Pago: " + nonEmpty(doc.PaymentMethod, "EFECTIVO")
	if doc.NCF != "" {
		s += "   |   NCF: " + doc.NCF
	}
	return s
}

// tableHeaderRow: cabecera de la tabla de detalles.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("CANT", 1, align.Center),
		h("DESCRIPCIÓN", 6, align.Left),
		h("PRECIO", 2, align.Right),
		h("TOTAL", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea de la venta.
func tableDetailRows(lines []appbilling.InvoiceLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(l.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatMoney(l.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalRow: total alineado a la derecha.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney monto con separador de miles y dos decimales.
// Ej: 25000 → "$25,000.00"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "." + frac
}
