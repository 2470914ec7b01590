package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PharmGest-api/internal/application/dto"
	"github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/application/reports"
)

// BatchHandler maneja lotes: alta, baja, listado FEFO, vencimientos e importación.
type BatchHandler struct {
	uc          *inventory.BatchUseCase
	reports     *reports.ReportUseCase
	warningDays int
}

// NewBatchHandler construye el handler. warningDays es el default de GET /batches/expiring.
func NewBatchHandler(uc *inventory.BatchUseCase, reportUC *reports.ReportUseCase, warningDays int) *BatchHandler {
	return &BatchHandler{uc: uc, reports: reportUC, warningDays: warningDays}
}

// Add godoc
// @Summary      Registrar lote de un producto
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del producto"
// @Param        body  body  dto.AddBatchRequest  true  "Lote"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/batches [post]
func (h *BatchHandler) Add(c *fiber.Ctx) error {
	var in dto.AddBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddBatch(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProduct GET /api/products/:id/batches (orden FEFO con semáforo).
func (h *BatchHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListBatches(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/batches/:id
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteBatch(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Expiring GET /api/batches/expiring?days=N
func (h *BatchHandler) Expiring(c *fiber.Ctx) error {
	days := c.QueryInt("days", h.warningDays)
	if days < 0 {
		return badRequest(c, "days no puede ser negativo")
	}
	out, err := h.uc.ExpiringBatches(c.Context(), days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar lotes desde .xlsx
// @Tags         batches
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "planilla con sku, lote, cantidad, vencimiento"
// @Success      200   {object}  dto.BatchImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batches/import [post]
func (h *BatchHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "archivo requerido en el campo 'file'")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "no se pudo leer el archivo")
	}
	defer f.Close()

	out, err := h.reports.ImportBatches(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
