package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
)

// AnalyticsHandler estadísticas de estantes y dashboard.
type AnalyticsHandler struct {
	shelves   *appanalytics.ShelfAnalyticsUseCase
	dashboard *appanalytics.DashboardUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(shelves *appanalytics.ShelfAnalyticsUseCase, dashboard *appanalytics.DashboardUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{shelves: shelves, dashboard: dashboard}
}

// ShelfReport godoc
// @Summary      Estadísticas de estantes
// @Tags         analytics
// @Produce      json
// @Param        period      query  string  false  "day | week | month | quarter | year | custom"  default(month)
// @Param        start_date  query  string  false  "AAAA-MM-DD (custom)"
// @Param        end_date    query  string  false  "AAAA-MM-DD inclusive (custom)"
// @Param        shelf_id    query  string  false  "Estante de origen"
// @Param        item_id     query  string  false  "Medicamento"
// @Param        kind        query  string  false  "all | stock_to_shelf | shelf_to_stock | shelf_to_shelf"
// @Success      200  {object}  dto.ShelfReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/shelves [get]
func (h *AnalyticsHandler) ShelfReport(c *fiber.Ctx) error {
	var f dto.ShelfReportFilter
	if err := c.QueryParser(&f); err != nil {
		return invalidBody(c)
	}
	out, err := h.shelves.Report(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportShelfReport godoc
// @Summary      Exportar estadísticas de estantes
// @Tags         analytics
// @Produce      text/csv
// @Produce      json
// @Param        format  query  string  false  "csv | json"  default(csv)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/shelves/export [get]
func (h *AnalyticsHandler) ExportShelfReport(c *fiber.Ctx) error {
	var f dto.ShelfReportFilter
	if err := c.QueryParser(&f); err != nil {
		return invalidBody(c)
	}
	name := "estadisticas-estantes-" + time.Now().Format("2006-01-02")
	switch format := c.Query("format", "csv"); format {
	case "csv":
		out, err := h.shelves.ExportCSV(c.Context(), f)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, name))
		return c.SendString(out)
	case "json":
		out, err := h.shelves.ExportJSON(c.Context(), f)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.json"`, name))
		return c.Send(out)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "formato desconocido", Details: []string{"format debe ser csv o json"},
		})
	}
}

// Dashboard godoc
// @Summary      Resumen de ventas, stock y alertas
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummary
// @Router       /api/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
