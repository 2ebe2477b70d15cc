package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/checkout"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/dto"
)

// CheckoutHandler espone le API pubbliche del checkout: validazione dei campi
// fiscali e calcolo del codice fiscale.
type CheckoutHandler struct {
	uc *checkout.UseCase
}

// NewCheckoutHandler costruisce l'handler.
func NewCheckoutHandler(uc *checkout.UseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// ValidateFields valida i campi fiscali extra del checkout.
// POST /api/checkout/validate
func (h *CheckoutHandler) ValidateFields(c *fiber.Ctx) error {
	var in dto.ValidateFieldsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	return c.JSON(h.uc.ValidaCampi(in))
}

// FiscalCode calcola il codice fiscale dai dati anagrafici.
// POST /api/checkout/fiscal-code
func (h *CheckoutHandler) FiscalCode(c *fiber.Ctx) error {
	var in dto.FiscalCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	out := h.uc.CalcolaCodiceFiscale(in)
	if out.CodiceFiscale == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	}
	return c.JSON(out)
}
