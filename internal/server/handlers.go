package server

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/piwi3910/tabbedbox/internal/engine"
	"github.com/piwi3910/tabbedbox/internal/export"
	"github.com/piwi3910/tabbedbox/internal/gcode"
	"github.com/piwi3910/tabbedbox/internal/model"
)

var contentTypes = map[export.Format]string{
	export.FormatSVG:    "image/svg+xml",
	export.FormatDXF:    "application/dxf",
	export.FormatPDF:    "application/pdf",
	export.FormatLabels: "application/pdf",
	export.FormatXLSX:   "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	export.FormatSTL:    "model/stl",
	export.FormatJSON:   "application/json",
}

var fileExtensions = map[export.Format]string{
	export.FormatLabels: "pdf",
}

// BoxHandler serves box generation and its outputs.
type BoxHandler struct {
	inventory model.Inventory
	machine   model.MachineSettings
}

// NewBoxHandler creates a handler that nests onto the inventory's stock
// when a request names none and cuts G-code with the given machine
// settings when a request carries none.
func NewBoxHandler(inv model.Inventory, machine model.MachineSettings) *BoxHandler {
	return &BoxHandler{inventory: inv, machine: machine}
}

// generate decodes, validates and generates the box of a request.
func (h *BoxHandler) generate(c fiber.Ctx) (boxRequest, model.BoxResult, error) {
	req, err := decodeBoxRequest(c.Body())
	if err != nil {
		return req, model.BoxResult{}, err
	}
	opts, err := req.options()
	if err != nil {
		return req, model.BoxResult{}, err
	}
	settings, err := opts.Resolve()
	if err != nil {
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			return req, model.BoxResult{}, &requestError{status: fiber.StatusUnprocessableEntity, errors: verrs}
		}
		return req, model.BoxResult{}, &requestError{status: fiber.StatusUnprocessableEntity, errors: []string{err.Error()}}
	}
	res, err := engine.New(settings).Generate(c.Context())
	return req, res, err
}

// fail writes an error response.
func fail(c fiber.Ctx, err error) error {
	var rerr *requestError
	if errors.As(err, &rerr) {
		return c.Status(rerr.status).JSON(fiber.Map{"errors": rerr.errors})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// Generate returns the generated pieces as JSON.
func (h *BoxHandler) Generate(c fiber.Ctx) error {
	_, res, err := h.generate(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

// Export renders the generated box in the format named by the route.
func (h *BoxHandler) Export(c fiber.Ctx) error {
	f, err := export.ParseFormat(c.Params("format"))
	if err != nil || f == export.FormatGCode {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown format"})
	}
	_, res, err := h.generate(c)
	if err != nil {
		return fail(c, err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, f, res); err != nil {
		return fail(c, err)
	}
	ext, ok := fileExtensions[f]
	if !ok {
		ext = string(f)
	}
	c.Set("Content-Type", contentTypes[f])
	c.Set("Content-Disposition", `attachment; filename="box.`+ext+`"`)
	return c.Send(buf.Bytes())
}

// GCode returns the toolpaths for the generated box. Clamp collisions are
// counted in the X-Clamp-Collisions header.
func (h *BoxHandler) GCode(c fiber.Ctx) error {
	req, res, err := h.generate(c)
	if err != nil {
		return fail(c, err)
	}
	machine := h.machine
	if req.Machine != nil {
		machine = *req.Machine
	}

	code, err := gcode.New(machine).Generate(res)
	if err != nil {
		return fail(c, &requestError{status: fiber.StatusUnprocessableEntity, errors: []string{err.Error()}})
	}
	collisions, err := gcode.CheckClampCollisions(res, machine)
	if err != nil {
		return fail(c, err)
	}

	c.Set("Content-Type", "text/plain; charset=utf-8")
	c.Set("X-Clamp-Collisions", strconv.Itoa(len(collisions)))
	return c.SendString(code)
}

type nestResponse struct {
	Nest     model.NestResult        `json:"nest"`
	Estimate *model.MaterialEstimate `json:"estimate,omitempty"`
}

// Nest packs the generated pieces onto stock sheets and estimates the
// material for the first sheet used.
func (h *BoxHandler) Nest(c fiber.Ctx) error {
	req, res, err := h.generate(c)
	if err != nil {
		return fail(c, err)
	}
	stocks := req.Stocks
	if len(stocks) == 0 {
		stocks = h.inventory.Stocks
	}

	nest := engine.NewNester(res.Settings.Kerf, req.EdgeTrim).NestBox(res, stocks)
	out := nestResponse{Nest: nest}
	if len(nest.Sheets) > 0 {
		est := model.EstimateMaterial(res, nest.Sheets[0].Stock, req.WastePercent)
		out.Estimate = &est
	}
	return c.JSON(out)
}

// Enums lists the accepted enum values, output formats and G-code
// profiles.
func Enums(c fiber.Ctx) error {
	formats := []export.Format{
		export.FormatSVG, export.FormatDXF, export.FormatPDF, export.FormatLabels,
		export.FormatXLSX, export.FormatSTL, export.FormatJSON, export.FormatGCode,
	}
	return c.JSON(fiber.Map{
		"enums":    model.EnumChoices(),
		"formats":  formats,
		"profiles": model.GetProfileNames(),
	})
}
