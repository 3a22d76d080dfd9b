package api

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/fedwatch/fedwatch/internal/macro"
)

// MacroHandler serves published macroeconomic indicators and the macro
// health score computed from them.
type MacroHandler struct {
	provider *macro.Provider
}

// NewMacroHandler creates a macro handler backed by the given provider.
func NewMacroHandler(provider *macro.Provider) *MacroHandler {
	return &MacroHandler{provider: provider}
}

// Employment returns the employment indicator group.
func (h *MacroHandler) Employment(c fiber.Ctx) error {
	data := h.provider.Load()
	return jsonSuccess(c, fiber.Map{
		"employment": data.Employment,
		"timestamp":  time.Now().UTC(),
	})
}

// Inflation returns the inflation indicator group.
func (h *MacroHandler) Inflation(c fiber.Ctx) error {
	data := h.provider.Load()
	return jsonSuccess(c, fiber.Map{
		"inflation": data.Inflation,
		"timestamp": time.Now().UTC(),
	})
}

// Metrics returns all indicator groups.
func (h *MacroHandler) Metrics(c fiber.Ctx) error {
	return jsonSuccess(c, h.provider.Load())
}

// Health computes and returns the macro health score on demand.
func (h *MacroHandler) Health(c fiber.Ctx) error {
	score := macro.Score(h.provider.Statistics())
	return jsonSuccess(c, score)
}
