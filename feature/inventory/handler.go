package inventory

import (
	"errors"

	"pedalbuild/core/logger"
	"pedalbuild/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the component inventory.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
// Static paths must come before the :id wildcard.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Get("/", h.HandleList)
	group.Get("/search", h.HandleSearch)
	group.Get("/low-stock", h.HandleLowStock)
	group.Get("/stats", h.HandleStats)
	group.Get("/:id", h.HandleGet)
	group.Patch("/:id/quantity", h.HandleUpdateQuantity)
}

// ListResponse wraps a component list with its count.
type ListResponse struct {
	Components []models.Component `json:"components"`
	Total      int                `json:"total"`
}

// UpdateQuantityRequest is the body for a quantity delta update.
type UpdateQuantityRequest struct {
	// Delta is the quantity change (positive to add, negative to subtract).
	Delta int `json:"delta"`
}

// UpdateQuantityResponse reports the result of a quantity update.
type UpdateQuantityResponse struct {
	Success     bool   `json:"success"`
	ComponentID string `json:"component_id"`
	NewQuantity int    `json:"new_quantity"`
}

// HandleList lists components, optionally filtered by type.
// @Summary List Components
// @Description List all inventory components, optionally filtered to one type.
// @Tags inventory
// @Produce json
// @Param type query string false "Component type filter (resistor, capacitor, ...)"
// @Success 200 {object} ListResponse "Components"
// @Failure 400 {object} map[string]string "Invalid type"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/inventory [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	compType := models.ComponentType(c.Query("type"))
	if compType != "" && !compType.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid component type: " + string(compType),
		})
	}

	components, err := h.service.List(c.Context(), compType)
	if err != nil {
		l.Error("Listing components failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(ListResponse{Components: components, Total: len(components)})
}

// HandleSearch searches components by value, name, or part number.
// @Summary Search Components
// @Description Substring search over value, name and part number, ranked by match strength.
// @Tags inventory
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} ListResponse "Ranked matches"
// @Failure 400 {object} map[string]string "Missing query"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/inventory/search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query parameter 'q' is required"})
	}

	components, err := h.service.Search(c.Context(), query)
	if err != nil {
		l.Error("Component search failed", zap.String("query", query), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(ListResponse{Components: components, Total: len(components)})
}

// HandleLowStock lists components at or below their reorder threshold.
// @Summary Low Stock Components
// @Description List components where quantity_in_stock <= minimum_quantity.
// @Tags inventory
// @Produce json
// @Success 200 {object} ListResponse "Low stock components"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/inventory/low-stock [get]
func (h *Handler) HandleLowStock(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	components, err := h.service.LowStock(c.Context())
	if err != nil {
		l.Error("Low stock query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(ListResponse{Components: components, Total: len(components)})
}

// HandleStats returns aggregate inventory statistics.
// @Summary Inventory Statistics
// @Description Per-type counts, unit totals, low-stock and out-of-stock counts.
// @Tags inventory
// @Produce json
// @Success 200 {object} models.InventoryStats "Statistics"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/inventory/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.Statistics(c.Context())
	if err != nil {
		l.Error("Inventory statistics failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(stats)
}

// HandleGet returns a single component by id.
// @Summary Get Component
// @Description Get a single component by its id.
// @Tags inventory
// @Produce json
// @Param id path string true "Component ID"
// @Success 200 {object} models.Component "Component"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/inventory/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	component, err := h.service.Get(c.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "component not found: " + id})
	}
	if err != nil {
		l.Error("Component lookup failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(component)
}

// HandleUpdateQuantity applies a quantity delta to a component.
// @Summary Update Component Quantity
// @Description Add or subtract stock. Deltas that would drive stock negative are rejected.
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Component ID"
// @Param request body UpdateQuantityRequest true "Quantity delta"
// @Success 200 {object} UpdateQuantityResponse "New quantity"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Insufficient Stock"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/inventory/{id}/quantity [patch]
func (h *Handler) HandleUpdateQuantity(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	newQuantity, err := h.service.UpdateQuantity(c.Context(), id, req.Delta)
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "component not found: " + id})
	case errors.Is(err, ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Quantity update failed", zap.String("id", id), zap.Int("delta", req.Delta), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(UpdateQuantityResponse{
		Success:     true,
		ComponentID: id,
		NewQuantity: newQuantity,
	})
}
