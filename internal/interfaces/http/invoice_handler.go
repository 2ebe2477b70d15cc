package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/billing"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/dto"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain"
)

// InvoiceHandler gestisce generazione e download fattura (protetto).
type InvoiceHandler struct {
	genUC  *billing.GenerateInvoiceUseCase
	linkUC *billing.InvoiceLinkUseCase
	infoUC *billing.ReferenceDataUseCase
}

// NewInvoiceHandler costruisce l'handler.
func NewInvoiceHandler(genUC *billing.GenerateInvoiceUseCase, linkUC *billing.InvoiceLinkUseCase, infoUC *billing.ReferenceDataUseCase) *InvoiceHandler {
	return &InvoiceHandler{genUC: genUC, linkUC: linkUC, infoUC: infoUC}
}

// Generate crea (o recupera) la fattura dell'ordine. Solo manager.
// POST /api/orders/:id/invoice
func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	wooID, err := parseOrderID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id ordine non valido"})
	}
	out, err := h.genUC.Genera(c.Context(), wooID)
	if err != nil {
		return mapInvoiceError(c, err)
	}
	status := fiber.StatusOK
	if out.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// DownloadLink reindirizza al PDF della fattura. Il manager scarica tutto,
// il cliente solo i propri ordini.
// GET /api/orders/:id/invoice/link
func (h *InvoiceHandler) DownloadLink(c *fiber.Ctx) error {
	wooID, err := parseOrderID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id ordine non valido"})
	}
	who := billing.Richiedente{Role: GetRole(c), CustomerID: GetCustomerID(c)}
	out, err := h.linkUC.Link(c.Context(), wooID, who)
	if err != nil {
		return mapInvoiceError(c, err)
	}
	return c.Redirect(out.Link, fiber.StatusFound)
}

// Info espone i dati di riferimento dell'account (aliquote, conti, paesi).
// Solo manager.
// GET /api/fattureincloud/info
func (h *InvoiceHandler) Info(c *fiber.Ctx) error {
	out, err := h.infoUC.Info(c.Context())
	if err != nil {
		return mapInvoiceError(c, err)
	}
	return c.JSON(out)
}

func parseOrderID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// mapInvoiceError traduce gli errori di dominio in risposte HTTP. I dettagli
// dei guasti del provider restano nei log, mai nel corpo della risposta.
func mapInvoiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dati ordine non validi"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ordine non trovato"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "accesso negato all'ordine"})
	case errors.Is(err, domain.ErrInvoiceNotReady):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVOICE_NOT_READY", Message: "fattura non ancora disponibile"})
	case errors.Is(err, domain.ErrProviderUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SERVICE_UNAVAILABLE", Message: "servizio di fatturazione non disponibile"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
