package comparison

import (
	"dbcompare/core/compare"
	"dbcompare/core/database"
	"dbcompare/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the comparison routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compare")
	group.Get("/", h.HandleRun)
	group.Get("/last", h.HandleLast)
	group.Get("/tables", h.HandleTables)
	group.Get("/:schema/:table", h.HandleCompareTable)
}

// HandleRun runs a full comparison.
// @Summary Compare Databases
// @Description Compares every non-excluded table of the old database against the new one. Concurrent requests share the run in flight. This operation may take a long time.
// @Tags compare
// @Produce json
// @Success 200 {object} compare.Summary "Run Summary"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare [get]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering comparison run")

	summary, shared, err := h.service.Run(c.Context())
	if err != nil {
		l.Error("Comparison run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Comparison run completed",
		zap.String("run_id", summary.RunID),
		zap.Int64("total_mismatches", summary.TotalMismatches),
		zap.Bool("shared", shared))

	return c.JSON(summary)
}

// HandleLast returns the most recent run.
// @Summary Last Comparison
// @Description Returns the summary of the most recent completed run.
// @Tags compare
// @Produce json
// @Success 200 {object} compare.Summary "Run Summary"
// @Failure 404 {object} map[string]string "No run yet"
// @Router /compare/last [get]
func (h *Handler) HandleLast(c *fiber.Ctx) error {
	summary := h.service.Last()
	if summary == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no comparison has run yet"})
	}
	return c.JSON(summary)
}

// HandleTables lists the enumerated tables.
// @Summary List Tables
// @Description Lists the user tables of the new database and the exclusion pattern matching each, if any.
// @Tags compare
// @Produce json
// @Success 200 {array} compare.TableStatus "Tables"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare/tables [get]
func (h *Handler) HandleTables(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	tables, err := h.service.Tables(c.Context())
	if err != nil {
		l.Error("Table enumeration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(tables)
}

// HandleCompareTable compares a single table.
// @Summary Compare Table
// @Description Compares one table regardless of the exclusion patterns.
// @Tags compare
// @Produce json
// @Param schema path string true "Schema name"
// @Param table path string true "Table name"
// @Success 200 {object} compare.Result "Table Result"
// @Failure 502 {object} compare.Result "Comparison failed"
// @Router /compare/{schema}/{table} [get]
func (h *Handler) HandleCompareTable(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	table := database.Table{Schema: c.Params("schema"), Name: c.Params("table")}
	l.Info("Comparing table", zap.String("table", table.FullName()))

	res := h.service.CompareTable(c.Context(), table)
	if res.Failed() {
		l.Error("Table comparison failed",
			zap.String("table", table.FullName()),
			zap.String("kind", string(res.Kind)),
			zap.Error(res.Err))
		return c.Status(statusFor(res.Kind)).JSON(res)
	}
	return c.JSON(res)
}

func statusFor(kind compare.ErrorKind) int {
	switch kind {
	case compare.KindConnection:
		return fiber.StatusBadGateway
	case compare.KindStorage:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusUnprocessableEntity
	}
}
