package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PharmGest-api/internal/application/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	uc *reports.ReportUseCase
}

func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesXLSX godoc
// @Summary      Exportar historial de ventas a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200
// @Router       /api/reports/sales.xlsx [get]
func (h *ReportHandler) SalesXLSX(c *fiber.Ctx) error {
	f, err := parseHistoryFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	data, err := h.uc.ExportSalesHistory(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("ventas_%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
