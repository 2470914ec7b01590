package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PharmGest-api/internal/application/billing"
	"github.com/jhoicas/PharmGest-api/internal/application/dto"
	"github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/application/sales"
)

// SaleHandler maneja liquidación, historial y factura de ventas.
type SaleHandler struct {
	settle   *sales.SettleUseCase
	history  *sales.HistoryUseCase
	invoices *billing.InvoiceUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(settle *sales.SettleUseCase, history *sales.HistoryUseCase, invoices *billing.InvoiceUseCase) *SaleHandler {
	return &SaleHandler{settle: settle, history: history, invoices: invoices}
}

// Settle godoc
// @Summary      Liquidar venta
// @Description  Valida stock, descuenta lotes en orden FEFO y registra la venta en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SettleSaleRequest  true  "Carrito"
// @Success      201   {object}  dto.SaleReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Settle(c *fiber.Ctx) error {
	var in dto.SettleSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.CashierID = GetUserID(c)
	in.CashierName = GetUsername(c)
	out, err := h.settle.Settle(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de ventas con ganancia estimada
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200     {object}  dto.SaleHistoryResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	f, err := parseHistoryFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.history.List(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/sales/:id
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	out, err := h.history.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Invoice GET /api/sales/:id/invoice → PDF. El vendedor solo descarga sus propias ventas.
func (h *SaleHandler) Invoice(c *fiber.Ctx) error {
	viewer := billing.Viewer{UserID: GetUserID(c), Username: GetUsername(c), Role: GetRole(c)}
	pdf, filename, err := h.invoices.Download(c.Context(), c.Params("id"), viewer)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}

// parseHistoryFilter lee from/to (día completo, hora local) y la paginación.
func parseHistoryFilter(c *fiber.Ctx) (dto.SaleHistoryFilter, error) {
	f := dto.SaleHistoryFilter{
		Page: dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)},
	}
	if s := c.Query("from"); s != "" {
		from, err := time.ParseInLocation(inventory.DateLayout, s, time.Local)
		if err != nil {
			return f, fmt.Errorf("from debe tener formato YYYY-MM-DD")
		}
		f.From = &from
	}
	if s := c.Query("to"); s != "" {
		to, err := time.ParseInLocation(inventory.DateLayout, s, time.Local)
		if err != nil {
			return f, fmt.Errorf("to debe tener formato YYYY-MM-DD")
		}
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.To = &end
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, fmt.Errorf("from no puede ser posterior a to")
	}
	return f, nil
}
