package bom

import (
	"errors"
	"fmt"

	"pedalbuild/core/logger"
	"pedalbuild/feature/bom/models"
	inventory "pedalbuild/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for circuit BOMs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the BOM routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/bom")
	group.Get("/:circuit_id", h.HandleGetBOM)
	group.Get("/:circuit_id/by-type", h.HandleGetBOMByType)
	group.Post("/:circuit_id/items", h.HandleAddItem)
	group.Get("/:circuit_id/validate", h.HandleValidate)
	group.Get("/:circuit_id/shopping-list", h.HandleShoppingList)
	group.Get("/:circuit_id/stats", h.HandleStats)
	group.Get("/:circuit_id/export", h.HandleExportCSV)
}

// BOMResponse wraps a circuit's BOM items with their count.
type BOMResponse struct {
	CircuitID string                  `json:"circuit_id"`
	Items     []models.CircuitBOMItem `json:"items"`
	Total     int                     `json:"total"`
}

// BOMByTypeResponse wraps the grouped BOM.
type BOMByTypeResponse struct {
	CircuitID string             `json:"circuit_id"`
	ByType    []models.TypeGroup `json:"by_type"`
	Total     int                `json:"total"`
}

// AddItemRequest is the body for adding a BOM line.
// ConfidenceScore defaults to 1.0 when omitted.
type AddItemRequest struct {
	ComponentType       string   `json:"component_type"`
	ComponentValue      string   `json:"component_value"`
	Quantity            int      `json:"quantity"`
	ReferenceDesignator string   `json:"reference_designator"`
	SubstitutionAllowed bool     `json:"substitution_allowed"`
	SubstitutionNotes   string   `json:"substitution_notes"`
	IsCritical          bool     `json:"is_critical"`
	PositionX           *float64 `json:"position_x"`
	PositionY           *float64 `json:"position_y"`
	ConfidenceScore     *float64 `json:"confidence_score"`
}

// AddItemResponse reports the inserted item's generated id.
type AddItemResponse struct {
	Success   bool   `json:"success"`
	CircuitID string `json:"circuit_id"`
	ItemID    string `json:"item_id"`
}

// HandleGetBOM returns the complete BOM for a circuit.
// @Summary Get BOM
// @Description Get all BOM items for a circuit, ordered by type and value.
// @Tags bom
// @Produce json
// @Param circuit_id path string true "Circuit ID"
// @Success 200 {object} BOMResponse "BOM"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/bom/{circuit_id} [get]
func (h *Handler) HandleGetBOM(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	circuitID := c.Params("circuit_id")

	items, err := h.service.GetBOM(c.Context(), circuitID)
	if err != nil {
		l.Error("BOM fetch failed", zap.String("circuit_id", circuitID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(BOMResponse{CircuitID: circuitID, Items: items, Total: len(items)})
}

// HandleGetBOMByType returns the BOM grouped by component type.
// @Summary Get BOM By Type
// @Description Get the circuit's BOM grouped by component type, in first-occurrence order.
// @Tags bom
// @Produce json
// @Param circuit_id path string true "Circuit ID"
// @Success 200 {object} BOMByTypeResponse "Grouped BOM"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/bom/{circuit_id}/by-type [get]
func (h *Handler) HandleGetBOMByType(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	circuitID := c.Params("circuit_id")

	groups, err := h.service.GetBOMByType(c.Context(), circuitID)
	if err != nil {
		l.Error("BOM grouping failed", zap.String("circuit_id", circuitID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	total := 0
	for _, g := range groups {
		total += len(g.Items)
	}

	return c.JSON(BOMByTypeResponse{CircuitID: circuitID, ByType: groups, Total: total})
}

// HandleAddItem adds a line to the circuit's BOM.
// @Summary Add BOM Item
// @Description Validate and insert a BOM line with a generated surrogate id.
// @Tags bom
// @Accept json
// @Produce json
// @Param circuit_id path string true "Circuit ID"
// @Param request body AddItemRequest true "BOM item"
// @Success 200 {object} AddItemResponse "Inserted"
// @Failure 400 {object} map[string]string "Validation Failure"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/bom/{circuit_id}/items [post]
func (h *Handler) HandleAddItem(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	circuitID := c.Params("circuit_id")

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	confidence := 1.0
	if req.ConfidenceScore != nil {
		confidence = *req.ConfidenceScore
	}

	item := models.CircuitBOMItem{
		ComponentType:       inventory.ComponentType(req.ComponentType),
		ComponentValue:      req.ComponentValue,
		Quantity:            req.Quantity,
		ReferenceDesignator: req.ReferenceDesignator,
		SubstitutionAllowed: req.SubstitutionAllowed,
		SubstitutionNotes:   req.SubstitutionNotes,
		IsCritical:          req.IsCritical,
		PositionX:           req.PositionX,
		PositionY:           req.PositionY,
		ConfidenceScore:     confidence,
	}

	inserted, err := h.service.AddItem(c.Context(), circuitID, item)
	if errors.Is(err, ErrInvalidItem) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("BOM insert failed", zap.String("circuit_id", circuitID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(AddItemResponse{Success: true, CircuitID: circuitID, ItemID: inserted.ID})
}

// HandleValidate reconciles the BOM against current inventory.
// @Summary Validate BOM
// @Description Check which BOM lines are satisfiable from stock and compute completeness.
// @Tags bom
// @Produce json
// @Param circuit_id path string true "Circuit ID"
// @Success 200 {object} models.ValidationReport "Validation Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/bom/{circuit_id}/validate [get]
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	circuitID := c.Params("circuit_id")

	report, err := h.service.Validate(c.Context(), circuitID)
	if err != nil {
		l.Error("BOM validation failed", zap.String("circuit_id", circuitID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleShoppingList derives the shopping list of missing components.
// @Summary Shopping List
// @Description List only the BOM lines not satisfiable from current stock.
// @Tags bom
// @Produce json
// @Param circuit_id path string true "Circuit ID"
// @Success 200 {object} models.ShoppingList "Shopping List"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/bom/{circuit_id}/shopping-list [get]
func (h *Handler) HandleShoppingList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	circuitID := c.Params("circuit_id")

	list, err := h.service.ShoppingList(c.Context(), circuitID)
	if err != nil {
		l.Error("Shopping list failed", zap.String("circuit_id", circuitID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(list)
}

// HandleStats returns aggregate statistics for the circuit's BOM.
// @Summary BOM Statistics
// @Description Item counts per type, critical lines, and low-confidence lines.
// @Tags bom
// @Produce json
// @Param circuit_id path string true "Circuit ID"
// @Success 200 {object} models.Stats "Statistics"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/bom/{circuit_id}/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	circuitID := c.Params("circuit_id")

	stats, err := h.service.Statistics(c.Context(), circuitID)
	if err != nil {
		l.Error("BOM statistics failed", zap.String("circuit_id", circuitID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(stats)
}

// HandleExportCSV renders the BOM as a downloadable CSV document.
// @Summary Export BOM CSV
// @Description Export the circuit's BOM as CSV text. Empty BOMs return 404.
// @Tags bom
// @Produce plain
// @Param circuit_id path string true "Circuit ID"
// @Success 200 {string} string "CSV document"
// @Failure 404 {object} map[string]string "No BOM"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/bom/{circuit_id}/export [get]
func (h *Handler) HandleExportCSV(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	circuitID := c.Params("circuit_id")

	items, err := h.service.GetBOM(c.Context(), circuitID)
	if err != nil {
		l.Error("BOM export failed", zap.String("circuit_id", circuitID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(items) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no BOM found for circuit: " + circuitID})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=bom_%s.csv", circuitID))
	return c.SendString(RenderCSV(items))
}
