package reports

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PharmGest-api/internal/application/dto"
	appinventory "github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/application/sales"
	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

// exportPageSize tamaño de página al recorrer el historial completo.
const exportPageSize = 500

// SalesWorkbookWriter arma el .xlsx del historial.
type SalesWorkbookWriter func(history *dto.SaleHistoryResponse) ([]byte, error)

// BatchSheetParser lee las filas de una planilla de lotes.
type BatchSheetParser func(r io.Reader) ([]dto.BatchImportRow, error)

// ReportUseCase exportación del historial de ventas e importación masiva de lotes.
type ReportUseCase struct {
	history     *sales.HistoryUseCase
	batches     *appinventory.BatchUseCase
	productRepo repository.ProductRepository
	writeSales  SalesWorkbookWriter
	parseBatch  BatchSheetParser
	log         zerolog.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	history *sales.HistoryUseCase,
	batches *appinventory.BatchUseCase,
	productRepo repository.ProductRepository,
	writeSales SalesWorkbookWriter,
	parseBatch BatchSheetParser,
	log zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		history:     history,
		batches:     batches,
		productRepo: productRepo,
		writeSales:  writeSales,
		parseBatch:  parseBatch,
		log:         log,
	}
}

// ExportSalesHistory genera el .xlsx con todas las ventas del rango (sin paginar).
func (uc *ReportUseCase) ExportSalesHistory(ctx context.Context, f dto.SaleHistoryFilter) ([]byte, error) {
	all := &dto.SaleHistoryResponse{TotalSold: decimal.Zero, TotalProfit: decimal.Zero}
	offset := 0
	for {
		page, err := uc.history.List(ctx, dto.SaleHistoryFilter{
			From: f.From,
			To:   f.To,
			Page: dto.PageRequest{Limit: exportPageSize, Offset: offset},
		})
		if err != nil {
			return nil, err
		}
		all.Items = append(all.Items, page.Items...)
		all.TotalSold = all.TotalSold.Add(page.TotalSold)
		all.TotalProfit = all.TotalProfit.Add(page.TotalProfit)
		if len(page.Items) < exportPageSize {
			break
		}
		offset += exportPageSize
	}
	all.SaleCount = len(all.Items)
	return uc.writeSales(all)
}

// ImportBatches registra un lote por fila. Cada fila va en su propia transacción:
// los errores se acumulan en la respuesta y no detienen el resto.
// Un archivo ilegible devuelve ErrInvalidInput.
func (uc *ReportUseCase) ImportBatches(ctx context.Context, r io.Reader) (*dto.BatchImportResponse, error) {
	rows, err := uc.parseBatch(r)
	if err != nil {
		uc.log.Debug().Err(err).Msg("planilla de lotes inválida")
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}
	resp := &dto.BatchImportResponse{}
	for _, row := range rows {
		if err := uc.importRow(ctx, row); err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.BatchImportError{Row: row.Row, SKU: row.SKU, Message: rowMessage(err)})
			continue
		}
		resp.Imported++
	}
	uc.log.Info().Int("imported", resp.Imported).Int("failed", resp.Failed).Msg("importación de lotes")
	return resp, nil
}

func (uc *ReportUseCase) importRow(ctx context.Context, row dto.BatchImportRow) error {
	product, err := uc.productRepo.GetBySKU(ctx, row.SKU)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	_, err = uc.batches.AddBatch(ctx, product.ID, dto.AddBatchRequest{
		BatchCode:  row.BatchCode,
		ExpiryDate: row.ExpiryDate.Format(appinventory.DateLayout),
		Quantity:   row.Quantity,
	})
	return err
}

func rowMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "producto no encontrado"
	case errors.Is(err, domain.ErrInvalidInput):
		return "datos inválidos (código de lote, cantidad o fecha)"
	default:
		return "error interno"
	}
}
