package sales

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PharmGest-api/internal/application/dto"
	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/inventory"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

// HistoryUseCase historial de ventas con ganancia estimada (vista de administrador).
type HistoryUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *HistoryUseCase {
	return &HistoryUseCase{saleRepo: saleRepo, productRepo: productRepo}
}

// List ventas más recientes primero con sus detalles, ganancia por venta y tarjetas de totales.
// Las tarjetas suman solo la página devuelta.
func (uc *HistoryUseCase) List(ctx context.Context, f dto.SaleHistoryFilter) (*dto.SaleHistoryResponse, error) {
	f.Page.DefaultPage()
	sales, err := uc.saleRepo.List(ctx, repository.SaleFilter{
		From:   f.From,
		To:     f.To,
		Limit:  f.Page.Limit,
		Offset: f.Page.Offset,
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	detailsBySale, err := uc.saleRepo.ListDetailsBySaleIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.GetByIDs(ctx, productIDs(detailsBySale))
	if err != nil {
		return nil, err
	}

	out := &dto.SaleHistoryResponse{
		Items:       make([]dto.SaleSummaryResponse, 0, len(sales)),
		TotalSold:   decimal.Zero,
		TotalProfit: decimal.Zero,
		Page:        dto.PageResponse{Limit: f.Page.Limit, Offset: f.Page.Offset},
	}
	for _, s := range sales {
		item := summarize(s, detailsBySale[s.ID], products)
		out.Items = append(out.Items, item)
		out.TotalSold = out.TotalSold.Add(s.Total)
		out.TotalProfit = out.TotalProfit.Add(item.Profit)
	}
	out.SaleCount = len(out.Items)
	return out, nil
}

// Get una venta con detalles y ganancia.
func (uc *HistoryUseCase) Get(ctx context.Context, saleID string) (*dto.SaleSummaryResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	details, err := uc.saleRepo.GetDetailsBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.GetByIDs(ctx, productIDs(map[string][]*entity.SaleDetail{saleID: details}))
	if err != nil {
		return nil, err
	}
	item := summarize(sale, details, products)
	return &item, nil
}

func summarize(s *entity.Sale, details []*entity.SaleDetail, products map[string]*entity.Product) dto.SaleSummaryResponse {
	profit := inventory.EstimateProfit(details, products)
	lines := make([]dto.SaleLineResponse, 0, len(details))
	names := make([]string, 0, len(details))
	for i, d := range details {
		desc := LineDescription(products[d.ProductID], d.IsBoxSale)
		lines = append(lines, dto.SaleLineResponse{
			LineNo:      d.LineNo,
			ProductID:   d.ProductID,
			Description: desc,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Subtotal:    d.Subtotal,
			IsBoxSale:   d.IsBoxSale,
			Profit:      profit.Lines[i].Profit,
			CostSet:     profit.Lines[i].CostConfigured,
		})
		names = append(names, desc+" x"+strconv.Itoa(d.Quantity))
	}
	return dto.SaleSummaryResponse{
		SaleID:        s.ID,
		Number:        s.Number,
		InvoiceNumber: InvoiceNumber(s.Number),
		Date:          s.Date,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		CashierName:   s.CashierName,
		ItemsSummary:  strings.Join(names, ", "),
		Profit:        profit.Total,
		ProfitTone:    string(profit.Tone()),
		Lines:         lines,
	}
}

func productIDs(details map[string][]*entity.SaleDetail) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, ds := range details {
		for _, d := range ds {
			if _, ok := seen[d.ProductID]; ok {
				continue
			}
			seen[d.ProductID] = struct{}{}
			out = append(out, d.ProductID)
		}
	}
	return out
}
