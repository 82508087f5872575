package importer

import (
	"errors"
	"strings"

	"pedalbuild/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for CSV imports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/import")
	group.Post("/inventory", h.HandleImport)
	group.Get("/template", h.HandleTemplate)
	group.Get("/format", h.HandleFormat)
	group.Get("/archive", h.HandleListArchive)
	group.Get("/archive/*", h.HandleFetchArchived)
}

// templateCSV is served as a starting point for hand-built import files.
const templateCSV = `Category,SubType,HumanReadableValue,Quantity,Footprint,MfrPartNumber,Vendor,VendorSKU,ReorderLevel,Voltage,KeyNotes
RESISTOR,Metal Film,10k,100,THT 1/4W,MF25-10K,Tayda,A-2115,20,,1% tolerance
CAPACITOR,Film,100nF,50,Box Film 5mm,B32529C104,Mouser,871-B32529C104K,10,63V,
IC,Op-Amp,TL072,10,DIP-8,TL072CP,Tayda,A-004,5,,Dual low-noise JFET
`

// HandleImport ingests an uploaded CSV into the components table.
// @Summary Import Inventory CSV
// @Description Parse an uploaded CSV and insert new components. Existing ids are skipped. Pass preview=true to parse without writing.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param preview query bool false "Parse only, no writes"
// @Success 200 {object} Result "Import summary"
// @Failure 400 {object} map[string]string "Bad Upload"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/import/inventory [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file upload"})
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file must be a CSV"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		l.Error("upload open failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	defer file.Close()

	preview := c.QueryBool("preview")

	result, err := h.service.Import(c.Context(), file, fileHeader.Filename, preview)
	if err != nil {
		// parse failures are the caller's problem, storage failures ours
		if strings.HasPrefix(err.Error(), "invalid csv") || strings.HasPrefix(err.Error(), "missing required column") || strings.HasPrefix(err.Error(), "csv has no header") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("import failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// HandleTemplate serves a starter CSV with the expected columns.
// @Summary Import Template
// @Description Download a CSV template with the expected header and example rows.
// @Tags import
// @Produce plain
// @Success 200 {string} string "CSV template"
// @Router /api/import/template [get]
func (h *Handler) HandleTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=inventory_template.csv")
	return c.SendString(templateCSV)
}

// HandleFormat describes the import format.
// @Summary Import Format
// @Description Describe the required and optional CSV columns and the category mapping.
// @Tags import
// @Produce json
// @Success 200 {object} map[string]interface{} "Format description"
// @Router /api/import/format [get]
func (h *Handler) HandleFormat(c *fiber.Ctx) error {
	categories := make(map[string]string, len(categoryTable))
	for raw, t := range categoryTable {
		categories[raw] = string(t)
	}

	return c.JSON(fiber.Map{
		"required_columns": RequiredColumns,
		"optional_columns": []string{
			"SubType", "Footprint", "MfrPartNumber", "Vendor", "VendorSKU",
			"ReorderLevel", "Voltage", "KeyNotes", "RelatedPart",
			"NumericBaseValue", "UnitType",
		},
		"categories":       categories,
		"unknown_category": "other",
		"duplicate_policy": "components whose derived id already exists are skipped",
	})
}

// HandleListArchive lists archived import files.
// @Summary List Archived Imports
// @Description List the object names of archived import files.
// @Tags import
// @Produce json
// @Success 200 {object} map[string]interface{} "Archive listing"
// @Failure 404 {object} map[string]string "Archive Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/import/archive [get]
func (h *Handler) HandleListArchive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	names, err := h.service.ListArchive(c.Context())
	if errors.Is(err, ErrArchiveDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("archive listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"objects": names, "total": len(names)})
}

// HandleFetchArchived streams one archived import file back.
// @Summary Fetch Archived Import
// @Description Download a previously archived import file by object name.
// @Tags import
// @Produce plain
// @Param object path string true "Object name"
// @Success 200 {string} string "CSV document"
// @Failure 404 {object} map[string]string "Archive Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/import/archive/{object} [get]
func (h *Handler) HandleFetchArchived(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	object := c.Params("*")

	reader, err := h.service.FetchArchived(c.Context(), object)
	if errors.Is(err, ErrArchiveDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("archive fetch failed", zap.String("object", object), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	return c.SendStream(reader)
}
